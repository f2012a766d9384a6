package ports

import (
	"context"
	"io"
)

// SampleReader loads a one-dimensional numeric sample
type SampleReader interface {
	// ReadFile reads observations from a file; the format follows the extension
	ReadFile(ctx context.Context, path string) ([]float64, error)

	// ReadStream reads whitespace- or newline-separated numbers
	ReadStream(ctx context.Context, r io.Reader) ([]float64, error)
}
