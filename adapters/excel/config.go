package excel

// ReaderConfig selects where the sample lives inside tabular input
type ReaderConfig struct {
	Sheet  string `json:"sheet"`  // xlsx sheet name; empty means the first sheet
	Column string `json:"column"` // header name; empty means the first numeric column
}

// DefaultReaderConfig returns the first numeric column of the first sheet
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{}
}
