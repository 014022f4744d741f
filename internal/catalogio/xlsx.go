package catalogio

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one sheet of a workbook; row 1 is the header. An empty
// sheet name selects the first sheet.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: workbook has no sheets")
		}
		sheet = sheets[0]
	}
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		return nil, fmt.Errorf("xlsx: missing sheet %q", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}

	var t *Table
	for _, r := range rows {
		if isBlank(r) {
			continue
		}
		if t == nil {
			t = newTable(r)
			continue
		}
		t.Rows = append(t.Rows, r)
	}
	if t == nil {
		return nil, fmt.Errorf("xlsx: sheet %q has no header row", sheet)
	}
	return t, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
