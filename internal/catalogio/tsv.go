package catalogio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadTSV parses tab-separated text whose first non-empty line is the
// header. Cells are taken verbatim; quotes carry no meaning. Blank lines
// are skipped and a trailing CR is dropped from every line.
func ReadTSV(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var t *Table
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cells := strings.Split(text, "\t")
		if t == nil {
			t = newTable(cells)
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tsv line %d: %w", line, err)
	}
	if t == nil {
		return nil, fmt.Errorf("tsv: no header row")
	}
	return t, nil
}

// ReadTSVFile opens path and parses it with ReadTSV.
func ReadTSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTSV(f)
}
