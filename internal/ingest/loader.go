package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options controls how an export file is read.
type Options struct {
	// SkipRows is the number of leading metadata rows before the header.
	SkipRows int
	// SkipGrandTotal drops the first data row (the export's grand-total line).
	SkipGrandTotal bool
	// Delimiter for CSV input. 0 means comma.
	Delimiter rune
	// Columns maps logical fields to header names.
	Columns Columns
}

// DefaultOptions matches the layout of a standard GA4 export: six comment
// rows, the header, then a grand-total row ahead of the daily data.
func DefaultOptions() Options {
	return Options{
		SkipRows:       6,
		SkipGrandTotal: true,
		Columns:        DefaultColumns(),
	}
}

// Result is the outcome of loading one export file.
type Result struct {
	Records  []DailyRecord
	Rejected int
}

// LoadCSV reads a delimited export file and normalizes its data rows.
func LoadCSV(path string, opt Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return loadRows(rows, opt)
}

// loadRows applies the skip/header/grand-total layout to raw rows and
// normalizes every data row. Shared by the CSV and XLSX readers.
func loadRows(rows [][]string, opt Options) (*Result, error) {
	if len(rows) <= opt.SkipRows {
		return nil, fmt.Errorf("export too short: %d rows, need a header after %d skipped rows", len(rows), opt.SkipRows)
	}
	header := rows[opt.SkipRows]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range opt.Columns.required() {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("required column %q not found in header", name)
		}
	}

	data := rows[opt.SkipRows+1:]
	if opt.SkipGrandTotal && len(data) > 0 {
		data = data[1:]
	}

	res := &Result{}
	for _, rec := range data {
		if blankRow(rec) {
			continue
		}
		row := make(map[string]string, len(header))
		for name, i := range index {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		dr, err := Normalize(row, opt.Columns)
		if err != nil {
			res.Rejected++
			continue
		}
		res.Records = append(res.Records, dr)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("no valid data rows after normalization (%d rejected)", res.Rejected)
	}
	return res, nil
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
