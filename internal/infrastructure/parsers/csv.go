package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser parses record rows from CSV format. The first row is the
// header; every data row becomes a column-name/value map.
type CSVParser struct{}

// Parse reads CSV from the reader and returns one rowd per data row.
func (p *CSVParser) Parse(r io.Reader) ([]Rowd, error) {
	reader := csv.NewReader(r)
	// source exports have ragged rows
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var rowds []Rowd
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rowd := make(Rowd, len(header))
		for i, col := range header {
			if i < len(record) {
				rowd[col] = record[i]
			} else {
				rowd[col] = ""
			}
		}
		rowds = append(rowds, rowd)
	}

	return rowds, nil
}

// WriteCSV writes a header row followed by data rows.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// ReadCSVRows reads raw CSV rows without header interpretation, for
// inputs whose columns are positional.
func ReadCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}
