package engine

import (
	"fmt"
	"strings"
)

// Table is the raw spreadsheet payload: one header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// TableFromValues splits a values grid whose first row is the header.
func TableFromValues(values [][]string) Table {
	if len(values) == 0 {
		return Table{}
	}
	return Table{Header: values[0], Rows: values[1:]}
}

// NoDataError means the table has no usable header or no data rows.
type NoDataError struct {
	Reason string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data returned from spreadsheet: %s", e.Reason)
}

// Record is one normalized spreadsheet row. It is never mutated after Normalize.
type Record struct {
	index  int
	fields map[string]string
}

// Index is the row's position among the data rows (0-based).
func (r Record) Index() int { return r.index }

// Get returns the cell under the given header, or "" when the column or cell is missing.
func (r Record) Get(column string) string { return r.fields[column] }

// Normalize converts the table to records. Short rows are padded with "", cells past the
// header are ignored and no row is dropped.
func Normalize(t Table) ([]Record, error) {
	header := make([]string, len(t.Header))
	named := 0
	for i, h := range t.Header {
		header[i] = strings.TrimSpace(h)
		if header[i] != "" {
			named++
		}
	}
	if named == 0 {
		return nil, &NoDataError{Reason: "header row is missing"}
	}
	if len(t.Rows) == 0 {
		return nil, &NoDataError{Reason: "table has no data rows"}
	}

	out := make([]Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		fields := make(map[string]string, named)
		for col, name := range header {
			if name == "" {
				continue
			}
			if _, dup := fields[name]; dup {
				// first column with a given name wins
				continue
			}
			if col < len(row) {
				fields[name] = row[col]
			} else {
				fields[name] = ""
			}
		}
		out = append(out, Record{index: i, fields: fields})
	}
	return out, nil
}
