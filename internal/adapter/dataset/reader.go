package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/accident-eda/internal/observability"
)

// ReadTable reads the header and at most maxRows data rows of the CSV file
// at path. A maxRows of zero or less reads the whole file.
func ReadTable(path string, maxRows int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := readRecords(f, maxRows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewTable(records)
}

func readRecords(r io.Reader, maxRows int) ([][]string, error) {
	cr := csv.NewReader(r)
	var records [][]string
	for maxRows <= 0 || len(records) <= maxRows {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) < 2 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

// Reader loads the configured dataset file and records load metrics.
type Reader struct {
	path    string
	maxRows int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReader creates a Reader for the CSV file at path.
func NewReader(path string, maxRows int, logger *slog.Logger, metrics *observability.Metrics) *Reader {
	return &Reader{path: path, maxRows: maxRows, logger: logger, metrics: metrics}
}

// Source returns the dataset path.
func (r *Reader) Source() string { return r.path }

// Load reads the dataset into a Table.
func (r *Reader) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := ReadTable(r.path, r.maxRows)
	if err != nil {
		return nil, err
	}
	r.metrics.RowsLoaded.Add(float64(t.Len()))
	r.logger.Info("dataset loaded", "path", r.path, "rows", t.Len(), "columns", len(t.Columns()))
	return t, nil
}
