package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is the tabular form of an enrollment outcome: a fixed column set
// and one positional row per enrolled student, in clearing rank order.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// CSVExporter renders a Dataset as CSV.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the dataset. Rows shorter than the column set are padded
// with empty cells so spreadsheet imports stay aligned; longer rows are an
// error because they would silently shift columns.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(data.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range data.Rows {
		if len(row) > len(data.Columns) {
			return nil, fmt.Errorf("csv row %d has %d cells, expected at most %d", i+1, len(row), len(data.Columns))
		}
		record := make([]string, len(data.Columns))
		copy(record, row)
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
