package excel

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"distfit/internal"
	"distfit/internal/errors"
	"distfit/ports"
)

var _ ports.SampleReader = (*DataReader)(nil)

// DataReader loads a numeric sample from xlsx, csv or plain text
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger.Named("DataReader")}
}

// ReadFile reads observations from path. .xlsx/.xlsm and .csv are read as
// tables; anything else as whitespace-separated numbers.
func (r *DataReader) ReadFile(ctx context.Context, path string) ([]float64, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.ReadFailed(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return r.readExcel(ctx, path)
	case ".csv":
		return r.readCSV(ctx, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	defer file.Close()
	return r.ReadStream(ctx, file)
}

// ReadStream reads whitespace- or newline-separated numbers
func (r *DataReader) ReadStream(ctx context.Context, in io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	var values []float64
	for token := 0; scanner.Scan(); token++ {
		if token%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		word := scanner.Text()
		v, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("token %d (%q) is not a number", token+1, word))
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.ReadFailed("input stream", err)
	}

	r.logger.Debug("read %d values from stream", len(values))
	return values, nil
}

// readExcel reads the configured sheet (default: the first one)
func (r *DataReader) readExcel(ctx context.Context, path string) ([]float64, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.InvalidInput(fmt.Sprintf("%s has no sheets", path))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.ReadFailed(fmt.Sprintf("%s sheet %q", path, sheet), err)
	}
	r.logger.Debug("%s sheet %q read in %.2fms (%d rows)", path, sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(ctx, rows)
}

// readCSV reads a comma-separated table
func (r *DataReader) readCSV(ctx context.Context, path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	r.logger.Debug("%s read (%d rows)", path, len(rows))

	return r.processRows(ctx, rows)
}

// processRows extracts the sample column. Blank and non-numeric cells (such
// as a header) are skipped.
func (r *DataReader) processRows(ctx context.Context, rows [][]string) ([]float64, error) {
	col, err := r.selectColumn(rows)
	if err != nil {
		return nil, err
	}

	var values []float64
	skipped := 0
	for i, row := range rows {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			skipped++
			continue
		}
		values = append(values, v)
	}

	if skipped > 0 {
		r.logger.Debug("skipped %d non-numeric cells in column %d", skipped, col+1)
	}
	return values, nil
}

// selectColumn finds the configured header, or the first column holding a number
func (r *DataReader) selectColumn(rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, errors.InvalidInput("table has no rows")
	}

	if r.config.Column != "" {
		for j, header := range rows[0] {
			if strings.EqualFold(strings.TrimSpace(header), r.config.Column) {
				return j, nil
			}
		}
		return 0, errors.InvalidInput(fmt.Sprintf("column %q not found in header", r.config.Column))
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for j := 0; j < width; j++ {
		for _, row := range rows {
			if j < len(row) {
				if _, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64); err == nil {
					return j, nil
				}
			}
		}
	}
	return 0, errors.InvalidInput("no numeric column found")
}
