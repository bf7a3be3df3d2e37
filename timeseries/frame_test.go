package timeseries

import (
	"errors"
	"strings"
	"testing"
)

const testFrameCSV = `Month,30331,30032,11234
2015-01,120000,98000,
2015-02,121500,98500,250000
2015-03,122000,99200,251300
2015-04,123800,,252100
2015-05,124100,100400,253000
`

func TestReadFrame(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(testFrameCSV))
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	if f.Len() != 5 {
		t.Errorf("Expected 5 rows, got %d", f.Len())
	}

	cols := f.Columns()
	expected := []string{"11234", "30032", "30331"}
	if len(cols) != len(expected) {
		t.Fatalf("Expected %d columns, got %d", len(expected), len(cols))
	}
	for i, name := range expected {
		if cols[i] != name {
			t.Errorf("Expected column %s at %d, got %s", name, i, cols[i])
		}
	}

	if !f.HasColumn("30331") {
		t.Error("Expected HasColumn(30331) to be true")
	}
	if f.HasColumn("99999") {
		t.Error("Expected HasColumn(99999) to be false")
	}
}

func TestFrameColumn(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(testFrameCSV))
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	s, err := f.Column("30331")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if s.Len() != 5 {
		t.Errorf("Expected 5 observations, got %d", s.Len())
	}
	if s.Name != "30331" {
		t.Errorf("Expected name 30331, got %s", s.Name)
	}
	if s.Values[0] != 120000 {
		t.Errorf("Expected first value 120000, got %f", s.Values[0])
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Column series invalid: %v", err)
	}
}

func TestFrameColumnLeadingGap(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(testFrameCSV))
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	// 11234 enters the panel one month late.
	s, err := f.Column("11234")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("Expected 4 observations after dropping the lead gap, got %d", s.Len())
	}
	if s.Values[0] != 250000 {
		t.Errorf("Expected first value 250000, got %f", s.Values[0])
	}
}

func TestFrameColumnInteriorGap(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(testFrameCSV))
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	_, err = f.Column("30032")
	if !errors.Is(err, ErrInteriorGap) {
		t.Errorf("Expected ErrInteriorGap, got %v", err)
	}
}

func TestFrameColumnNotFound(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(testFrameCSV))
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	_, err = f.Column("99999")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestReadFrameRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no series columns", "Month\n2015-01\n"},
		{"no data rows", "Month,30331\n"},
		{"bad date", "Month,30331\nnot-a-date,120000\n"},
		{"out of order dates", "Month,30331\n2015-02,120000\n2015-01,121000\n"},
		{"ragged row", "Month,30331\n2015-01,120000,55\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadFrame(strings.NewReader(tt.csv)); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}
