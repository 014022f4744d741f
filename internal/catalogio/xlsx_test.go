package catalogio

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
		for i, r := range rows {
			cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
			row := r
			if err := f.SetSheetRow(name, cellRef, &row); err != nil {
				t.Fatalf("SetSheetRow: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Combos": {
			{"Name", "Effect", "Unit1", "Unit2"},
			{"Lone Wolf", "Attack Up (Sm)", "Cat", "Macho Cat"},
			{},
			{"Rapid March", "Movement Speed Up (M)", "Tank Cat"},
		},
	})

	tbl, err := ReadXLSX(path, "")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.Len())
	}
	rows := ComboRows(tbl)
	if rows[1].Units[0] != "Tank Cat" || rows[1].Units[1] != "" {
		t.Fatalf("unexpected units %v", rows[1].Units)
	}

	cat, err := LoadCombos(path)
	if err != nil {
		t.Fatalf("LoadCombos: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("catalog has %d combos, want 2", cat.Len())
	}

	if _, err := ReadXLSX(path, "Cats"); err == nil {
		t.Fatalf("expected missing sheet error")
	}
}
