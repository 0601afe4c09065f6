package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pcalab/pkg/core"
)

// CSVOptions controls LoadCSV.
type CSVOptions struct {
	// LabelColumn names a column kept as row labels instead of a feature.
	LabelColumn string
	// Features restricts and orders the loaded features. Empty loads every
	// column except LabelColumn.
	Features []string
	// Ignore lists columns to skip, such as non-numeric metadata.
	Ignore []string
}

// LoadCSV reads a headed CSV into a FeatureTable. Every loaded cell must
// parse as a float.
func LoadCSV(r io.Reader, opts CSVOptions) (*FeatureTable, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows: %w", core.ErrEmptyInput)
	}

	header := records[0]
	// Spreadsheet exports often start with a UTF-8 byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	position := make(map[string]int, len(header))
	for i, h := range header {
		position[h] = i
	}

	labelIdx := -1
	if opts.LabelColumn != "" {
		i, ok := position[opts.LabelColumn]
		if !ok {
			return nil, fmt.Errorf("label column %q not in header: %w", opts.LabelColumn, core.ErrInputShape)
		}
		labelIdx = i
	}

	names := opts.Features
	if len(names) == 0 {
		skip := make(map[string]bool, len(opts.Ignore))
		for _, n := range opts.Ignore {
			skip[n] = true
		}
		for i, h := range header {
			if i != labelIdx && !skip[h] {
				names = append(names, h)
			}
		}
	}
	idx := make([]int, len(names))
	for j, n := range names {
		i, ok := position[n]
		if !ok {
			return nil, fmt.Errorf("feature %q not in header: %w", n, core.ErrInputShape)
		}
		idx[j] = i
	}

	rows := make([][]float64, 0, len(records)-1)
	var labels []string
	for n, rec := range records[1:] {
		line := n + 2
		if len(rec) != len(header) {
			return nil, fmt.Errorf("line %d has %d fields, header has %d: %w", line, len(rec), len(header), core.ErrInputShape)
		}
		row := make([]float64, len(idx))
		for j, i := range idx {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %q is not a number: %w", line, header[i], rec[i], core.ErrInputShape)
			}
			row[j] = v
		}
		rows = append(rows, row)
		if labelIdx >= 0 {
			labels = append(labels, rec[labelIdx])
		}
	}
	return NewFeatureTable(names, rows, labels)
}

// LoadCSVFile opens path and calls LoadCSV.
func LoadCSVFile(path string, opts CSVOptions) (*FeatureTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadCSV(file, opts)
}
