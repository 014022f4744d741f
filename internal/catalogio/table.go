// Package catalogio reads combo and cat tables from TSV, JSON and XLSX
// sources into rows the combo package understands.
package catalogio

import (
	"fmt"
	"path/filepath"
	"strings"

	"bc-combo-solver/internal/combo"
)

// Column names shared by every source format.
const (
	ColName    = "Name"
	ColEffect  = "Effect"
	ColFirst   = "First"
	ColEvolved = "Evolved"
	ColTrue    = "True"
	ColUltra   = "Ultra"
)

// unitColumn returns the header of positional unit slot i (1-based).
func unitColumn(i int) string {
	return fmt.Sprintf("Unit%d", i)
}

// Table is a header row plus data rows. Rows may be shorter than the
// header; missing cells read as "". Column lookups ignore case.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

func newTable(columns []string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		t.addColumn(c)
	}
	return t
}

func columnKey(column string) string {
	return strings.ToLower(strings.TrimSpace(column))
}

// addColumn appends column to the header and returns the index lookups
// resolve it to. A repeated name keeps resolving to its first position.
func (t *Table) addColumn(column string) int {
	column = strings.TrimSpace(column)
	t.Columns = append(t.Columns, column)
	k := columnKey(column)
	if i, dup := t.index[k]; dup {
		return i
	}
	t.index[k] = len(t.Columns) - 1
	return len(t.Columns) - 1
}

func (t *Table) column(column string) (int, bool) {
	i, ok := t.index[columnKey(column)]
	return i, ok
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the header names column.
func (t *Table) Has(column string) bool {
	_, ok := t.column(column)
	return ok
}

// Get returns the cell of row i under column, or "" when absent.
func (t *Table) Get(i int, column string) string {
	ci, ok := t.column(column)
	if !ok || ci >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][ci]
}

// Require fails when none of the given columns is present.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if t.Has(c) {
			return nil
		}
	}
	return fmt.Errorf("missing columns: need one of %s, have %s",
		strings.Join(columns, ", "), strings.Join(t.Columns, ", "))
}

// ComboRows maps a combos table onto raw combo records.
func ComboRows(t *Table) []combo.Row {
	rows := make([]combo.Row, t.Len())
	for i := range rows {
		rows[i].Name = t.Get(i, ColName)
		rows[i].Effect = t.Get(i, ColEffect)
		for slot := range rows[i].Units {
			rows[i].Units[slot] = t.Get(i, unitColumn(slot+1))
		}
	}
	return rows
}

// FormRows maps a cats table onto evolution form rows.
func FormRows(t *Table) []combo.FormRow {
	rows := make([]combo.FormRow, t.Len())
	for i := range rows {
		rows[i] = combo.FormRow{
			First:   t.Get(i, ColFirst),
			Evolved: t.Get(i, ColEvolved),
			True:    t.Get(i, ColTrue),
			Ultra:   t.Get(i, ColUltra),
		}
	}
	return rows
}

// Load reads a table, choosing the reader from the file extension.
func Load(path string) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tsv", ".txt":
		t, err = ReadTSVFile(path)
	case ".json":
		t, err = ReadJSONFile(path)
	case ".xlsx":
		t, err = ReadXLSX(path, "")
	default:
		return nil, fmt.Errorf("load %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return t, nil
}

// LoadCombos reads path and builds a catalog from it.
func LoadCombos(path string) (*combo.Catalog, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := t.Require(ColName, ColEffect); err != nil {
		return nil, fmt.Errorf("combos %q: %w", path, err)
	}
	return combo.BuildCatalog(ComboRows(t)), nil
}

// LoadCats reads path and builds the evolution hierarchy from it.
func LoadCats(path string) (*combo.Hierarchy, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := t.Require(ColFirst, ColEvolved, ColTrue, ColUltra); err != nil {
		return nil, fmt.Errorf("cats %q: %w", path, err)
	}
	return combo.BuildHierarchy(FormRows(t)), nil
}
