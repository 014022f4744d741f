package main

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := ExportXLSX(path, sampleResult("")); err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetSolutions)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d solution rows, want 2 (header + 1)", len(rows))
	}
	if rows[1][5] != "Axe Cat, Cat" {
		t.Fatalf("required cats cell = %q", rows[1][5])
	}

	combos, err := f.GetRows(sheetCombos)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(combos) != 3 || combos[2][1] != "Flying Dragon" {
		t.Fatalf("unexpected combos sheet: %v", combos)
	}
}
