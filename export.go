package main

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSolutions = "Solutions"
	sheetCombos    = "Combos"
)

// ExportXLSX writes a ranked result to path: one summary row per solution
// and one row per active combo.
func ExportXLSX(path string, res SearchResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSolutions); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if _, err := f.NewSheet(sheetCombos); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	solutionRows := [][]any{{"Option", "Cats", "Combos", "Total Strength", "Effect Types", "Required Cats"}}
	comboRows := [][]any{{"Option", "Combo", "Effect", "Effect Type", "Strength"}}
	for i, s := range res.Solutions {
		solutionRows = append(solutionRows, []any{
			i + 1, s.UnitCount, s.ComboCount, s.TotalStrength,
			strings.Join(s.EffectTypes, ", "), strings.Join(s.Units, ", "),
		})
		for _, c := range s.Combos {
			comboRows = append(comboRows, []any{i + 1, c.Name, c.Effect, c.EffectType, c.Strength})
		}
	}

	for _, sh := range []struct {
		name  string
		rows  [][]any
		width float64
	}{
		{sheetSolutions, solutionRows, 18},
		{sheetCombos, comboRows, 24},
	} {
		if err := writeRows(f, sh.name, sh.rows); err != nil {
			return err
		}
		if err := f.SetRowStyle(sh.name, 1, 1, bold); err != nil {
			return fmt.Errorf("xlsx %s: %w", sh.name, err)
		}
		last, _ := excelize.ColumnNumberToName(len(sh.rows[0]))
		if err := f.SetColWidth(sh.name, "A", last, sh.width); err != nil {
			return fmt.Errorf("xlsx %s: %w", sh.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("xlsx %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
