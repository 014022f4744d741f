package catalogio

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// jsonArrayKeys are the wrapper keys tried when a document's root is an
// object rather than an array of rows.
var jsonArrayKeys = []string{"combos", "cats", "rows"}

type cell struct {
	column string
	value  string
}

// expandField flattens one JSON field into table cells. A "units" array
// fills Unit1..Unit5 and a "forms" array fills First..Ultra; anything else
// becomes a single cell holding the value's text.
func expandField(key string, v gjson.Result) []cell {
	if v.IsArray() {
		var columns []string
		switch strings.ToLower(key) {
		case "units":
			for i := 1; i <= 5; i++ {
				columns = append(columns, unitColumn(i))
			}
		case "forms":
			columns = []string{ColFirst, ColEvolved, ColTrue, ColUltra}
		}
		if columns != nil {
			var out []cell
			for i, item := range v.Array() {
				if i == len(columns) {
					break
				}
				out = append(out, cell{columns[i], item.String()})
			}
			return out
		}
	}
	if v.Type == gjson.Null {
		return []cell{{key, ""}}
	}
	return []cell{{key, v.String()}}
}

// ReadJSON parses a JSON array of row objects. When the root is an object
// the first array found under "combos", "cats" or "rows" is used.
func ReadJSON(data string) (*Table, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("json: invalid document")
	}
	root := gjson.Parse(data)
	if root.IsObject() {
		for _, k := range jsonArrayKeys {
			if v := root.Get(k); v.IsArray() {
				root = v
				break
			}
		}
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("json: expected an array of row objects")
	}

	t := newTable(nil)
	var records [][]cell
	var bad error
	root.ForEach(func(i, v gjson.Result) bool {
		if !v.IsObject() {
			bad = fmt.Errorf("json: row %d is not an object", i.Int())
			return false
		}
		var rec []cell
		v.ForEach(func(k, f gjson.Result) bool {
			for _, c := range expandField(k.String(), f) {
				if _, ok := t.column(c.column); !ok {
					t.addColumn(c.column)
				}
				rec = append(rec, c)
			}
			return true
		})
		records = append(records, rec)
		return true
	})
	if bad != nil {
		return nil, bad
	}

	for _, rec := range records {
		row := make([]string, len(t.Columns))
		for _, c := range rec {
			i, _ := t.column(c.column)
			row[i] = c.value
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadJSONFile reads path and parses it with ReadJSON.
func ReadJSONFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadJSON(string(data))
}
