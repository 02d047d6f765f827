package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"
)

const (
	DataFolder = "data"
	DataFile   = "financial_data.csv"
	HomeEnv    = "FINSIGHT_HOME"
)

// ExpectedColumns is the transactions schema. It is documented for the
// analyst prompt and checked by Validate, never enforced by Load.
var ExpectedColumns = []string{"Date", "Description", "Category", "Amount", "Type"}

// InstallRoot returns the directory data and chart paths are resolved against:
// $FINSIGHT_HOME when set, otherwise the directory holding the executable.
func InstallRoot() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}

	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	cwd, _ := os.Getwd()
	return cwd
}

// DefaultPath returns root/data/financial_data.csv
func DefaultPath(root string) string {
	return filepath.Join(root, DataFolder, DataFile)
}

// Load reads the transactions CSV at path. Any failure is logged with the
// path and an empty Frame is returned so callers keep working in a degraded
// state.
func Load(path string, log *zap.Logger) *Frame {
	file, err := os.Open(path)
	if err != nil {
		log.Warn("dataset not loaded, using empty table",
			zap.String("path", path),
			zap.Error(err),
		)
		return Empty()
	}
	defer file.Close()

	frame, err := Read(file)
	if err != nil {
		log.Warn("dataset not parsed, using empty table",
			zap.String("path", path),
			zap.Error(err),
		)
		return Empty()
	}

	log.Debug("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", frame.Len()),
		zap.Strings("columns", frame.Columns()),
	)
	return frame
}

// columnTypes pins the transactions schema. Other columns keep whatever type
// gota detects.
var columnTypes = map[string]series.Type{
	"Date":        series.String,
	"Description": series.String,
	"Category":    series.String,
	"Amount":      series.Float,
	"Type":        series.String,
}

// Read parses CSV with a header row. Only empty cells are treated as missing,
// so text such as "NA" is kept as written. A header with no rows yields an
// empty table with those columns.
func Read(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}
	if len(records) == 1 {
		return headerOnly(records[0])
	}

	df := dataframe.LoadRecords(records,
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues([]string{""}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	return &Frame{df: df}, nil
}

func headerOnly(header []string) (*Frame, error) {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		typ, ok := columnTypes[name]
		if !ok {
			typ = series.String
		}
		cols[i] = series.New([]string{}, typ, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	return &Frame{df: df}, nil
}
