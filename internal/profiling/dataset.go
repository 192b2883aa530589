package profiling

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("profiling: workbook has no sheets")

// Dataset is a sheet loaded fully into memory. Every row has len(Columns) cells.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Column returns the values of column i in row order
func (d *Dataset) Column(i int) []string {
	out := make([]string, len(d.Rows))
	for r, row := range d.Rows {
		out[r] = row[i]
	}
	return out
}

// LoadExcel reads sheet from the workbook at path. An empty sheet selects the first one.
// The first row is the header.
func LoadExcel(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoSheets, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewDataset(name, rows), nil
}

// NewDataset builds a Dataset from raw rows whose first row is the header.
// Ragged rows are padded and missing or repeated headers are renamed.
func NewDataset(name string, rows [][]string) *Dataset {
	ds := &Dataset{Name: name}
	if len(rows) == 0 {
		return ds
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	header := make([]string, width)
	copy(header, rows[0])
	ds.Columns = normalizeHeaders(header)

	ds.Rows = make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, width)
		copy(padded, row)
		ds.Rows = append(ds.Rows, padded)
	}
	return ds
}

// normalizeHeaders names blank headers "Unnamed: i" and suffixes repeats with ".n"
func normalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))
	counts := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for {
			if _, taken := used[name]; !taken {
				break
			}
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}
