package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"distfit/internal"
	"distfit/internal/errors"
)

var quietLogger = internal.NewLogger(internal.LogLevelError)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadStream(t *testing.T) {
	r := NewDataReader(DefaultReaderConfig(), quietLogger)

	values, err := r.ReadStream(context.Background(), strings.NewReader("1.5\n-2 3e2\n\n  4\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 300, 4}, values)

	_, err = r.ReadStream(context.Background(), strings.NewReader("1\nabc\n"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestReadFile_Text(t *testing.T) {
	path := writeFile(t, "sample.txt", "0.25 0.5\n0.75\n")

	values, err := NewDataReader(DefaultReaderConfig(), quietLogger).ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, values)
}

func TestReadFile_CSV(t *testing.T) {
	path := writeFile(t, "sample.csv", "id,label,value\n1,a,2.5\n2,b,\n3,c,n/a\n4,d,7\n")

	// first numeric column is id
	values, err := NewDataReader(DefaultReaderConfig(), quietLogger).ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, values)

	values, err = NewDataReader(ReaderConfig{Column: "VALUE"}, quietLogger).ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 7}, values)

	_, err = NewDataReader(ReaderConfig{Column: "missing"}, quietLogger).ReadFile(context.Background(), path)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestReadFile_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "duration"))
	for i, v := range []float64{1.25, 2.5, 5} {
		nameCell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		valueCell, err := excelize.CoordinatesToCellName(2, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", nameCell, "run"))
		require.NoError(t, f.SetCellValue("Sheet1", valueCell, v))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	values, err := NewDataReader(DefaultReaderConfig(), quietLogger).ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25, 2.5, 5}, values)

	_, err = NewDataReader(ReaderConfig{Sheet: "Nope"}, quietLogger).ReadFile(context.Background(), path)
	assert.Equal(t, errors.CodeReadFailed, errors.GetCode(err))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := NewDataReader(DefaultReaderConfig(), quietLogger).ReadFile(context.Background(), filepath.Join(t.TempDir(), "none.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeReadFailed, errors.GetCode(err))
}

func TestReadStream_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader(DefaultReaderConfig(), quietLogger).ReadStream(ctx, strings.NewReader("1 2 3"))
	assert.ErrorIs(t, err, context.Canceled)
}
