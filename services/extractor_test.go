package services

import (
	"context"
	"errors"
	"testing"
)

func TestEvaluateTextQuality(t *testing.T) {
	cases := []struct {
		name string
		text string
		min  float64
		max  float64
	}{
		{"empty", "", 0.0, 0.2},
		{"clean prose", "The cell is the basic unit of life. Every organism is built from cells that divide and specialize over time.", 0.7, 1.0},
		{"corrupted", "��������������������", 0.0, 0.2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := evaluateTextQuality(tc.text)
			if score < tc.min || score > tc.max {
				t.Errorf("quality = %.2f, want %.2f..%.2f", score, tc.min, tc.max)
			}
		})
	}
}

func TestExtractTextRejectsEmptyContent(t *testing.T) {
	e := NewPDFExtractor(testConfig())

	var extractionErr *ExtractionError
	_, err := e.ExtractText(context.Background(), nil)
	if !errors.As(err, &extractionErr) {
		t.Fatalf("err = %v, want ExtractionError", err)
	}
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	e := NewPDFExtractor(testConfig())

	_, err := e.ExtractText(context.Background(), []byte("this is not a pdf document at all"))
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("err = %v, want ExtractionError", err)
	}
}

func TestHashContentIsStable(t *testing.T) {
	a := hashContent([]byte("same bytes"))
	b := hashContent([]byte("same bytes"))
	c := hashContent([]byte("other bytes"))

	if a != b {
		t.Error("identical content hashed differently")
	}
	if a == c {
		t.Error("different content produced the same hash")
	}
}
