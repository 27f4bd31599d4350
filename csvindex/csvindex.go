// Package csvindex loads index series from CSV files laid out like FRED
// downloads: a date column and one column per published series.
//
//	DATE,QMYR628BIS,QMYN628BIS
//	1988-01-01,55.1234,20.0312
//
// Series codes are rarely meaningful, so Options renames the column holding
// each index variant to its capgrowth.IndexType.
package csvindex

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
)

// DefaultDateColumn is the name of the date column in FRED downloads.
const DefaultDateColumn = "DATE"

// dateColumns are the date column names recognized when none is configured.
var dateColumns = []string{DefaultDateColumn, "observation_date", "date"}

// Options describes the layout of an index CSV file.
type Options struct {
	DateColumn string                         // empty to detect it
	Columns    map[capgrowth.IndexType]string // source column for each index type
}

// column returns the source column of typ.
func (o Options) column(typ capgrowth.IndexType) string {
	if c, ok := o.Columns[typ]; ok && c != "" {
		return c
	}
	return typ.String()
}

// LoadFile reads the typ index from the CSV file at path.
func LoadFile(path string, typ capgrowth.IndexType, opts Options) (capgrowth.IndexSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return capgrowth.IndexSeries{}, err
	}
	defer f.Close()
	s, err := Load(f, typ, opts)
	if err != nil {
		return capgrowth.IndexSeries{}, fmt.Errorf("cannot load %s index from %q: %w", typ, path, err)
	}
	return s, nil
}

// Load reads the typ index from CSV data.
//
// The index column is the one mapped to typ in opts, or the column named after
// typ. When no column is mapped to typ, a file with a single value column is
// used whatever its name. Empty and "." values are missing observations and
// are skipped.
func Load(r io.Reader, typ capgrowth.IndexType, opts Options) (capgrowth.IndexSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return capgrowth.IndexSeries{}, errors.New("empty csv file")
	}
	if err != nil {
		return capgrowth.IndexSeries{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	dateIdx, err := dateIndex(header, opts.DateColumn)
	if err != nil {
		return capgrowth.IndexSeries{}, err
	}
	valueIdx := slices.Index(header, opts.column(typ))
	if valueIdx < 0 && opts.Columns[typ] == "" && len(header) == 2 {
		valueIdx = 1 - dateIdx
	}
	if valueIdx < 0 {
		return capgrowth.IndexSeries{}, fmt.Errorf("no column %q for the %s index in %v", opts.column(typ), typ, header)
	}

	var records []capgrowth.Record
	var errs error
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return capgrowth.IndexSeries{}, fmt.Errorf("failed to read csv: %w", err)
		}
		raw := strings.TrimSpace(row[valueIdx])
		if raw == "" || raw == "." {
			continue
		}
		on, err := date.Parse(strings.TrimSpace(row[dateIdx]))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = errors.Join(errs, fmt.Errorf("line %d: invalid index value %q", line, raw))
			continue
		}
		records = append(records, capgrowth.Record{Date: on, Value: v})
	}
	if errs != nil {
		return capgrowth.IndexSeries{}, errs
	}
	return capgrowth.NewIndexSeries(typ, records)
}

func dateIndex(header []string, name string) (int, error) {
	if name != "" {
		if i := slices.Index(header, name); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("no date column %q in %v", name, header)
	}
	for _, c := range dateColumns {
		if i := slices.Index(header, c); i >= 0 {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no date column in %v, want one of %v", header, dateColumns)
}

// Write writes series as a FRED layout CSV file, one column per series named
// as opts maps its type. Dates missing from a series are written as ".".
func Write(w io.Writer, opts Options, series ...capgrowth.IndexSeries) error {
	header := []string{DefaultDateColumn}
	if opts.DateColumn != "" {
		header[0] = opts.DateColumn
	}
	values := make([]map[date.Date]float64, len(series))
	var dates []date.Date
	for i, s := range series {
		header = append(header, opts.column(s.Type()))
		values[i] = make(map[date.Date]float64, s.Len())
		for on, v := range s.All() {
			dates = append(dates, on)
			values[i][on] = v
		}
	}
	slices.SortFunc(dates, date.Date.Compare)
	dates = slices.Compact(dates)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, on := range dates {
		row := []string{on.String()}
		for i := range series {
			cell := "."
			if v, ok := values[i][on]; ok {
				cell = strconv.FormatFloat(v, 'f', -1, 64)
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
