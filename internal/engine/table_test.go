package engine

import (
	"errors"
	"testing"
)

func TestNormalize_PadsRaggedRows(t *testing.T) {
	recs, err := Normalize(Table{
		Header: []string{" A ", "B", "C"},
		Rows: [][]string{
			{"1"},
			{"1", "2", "3", "extra"},
			{},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 records, got %d", len(recs))
	}
	if recs[0].Get("A") != "1" || recs[0].Get("B") != "" || recs[0].Get("C") != "" {
		t.Fatalf("short row not padded: %+v", recs[0])
	}
	if recs[1].Get("C") != "3" || recs[1].Get("extra") != "" {
		t.Fatalf("long row mishandled: %+v", recs[1])
	}
	if recs[2].Index() != 2 {
		t.Fatalf("want index 2, got %d", recs[2].Index())
	}
}

func TestNormalize_DuplicateHeaderFirstWins(t *testing.T) {
	recs, err := Normalize(Table{Header: []string{"X", "X"}, Rows: [][]string{{"first", "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := recs[0].Get("X"); got != "first" {
		t.Fatalf("want first, got %q", got)
	}
}

func TestNormalize_NoData(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{"empty table", Table{}},
		{"blank header", Table{Header: []string{" ", ""}, Rows: [][]string{{"a"}}}},
		{"header only", Table{Header: []string{"A"}}},
		{"from empty values", TableFromValues(nil)},
		{"from header-only values", TableFromValues([][]string{{"A", "B"}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.table)
			var nd *NoDataError
			if !errors.As(err, &nd) {
				t.Fatalf("want *NoDataError, got %v", err)
			}
		})
	}
}
