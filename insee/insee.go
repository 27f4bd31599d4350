// Package insee fetches index series from the INSEE macro-economic database
// (BDM), like the French "Indice des prix des logements anciens".
package insee

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
	"github.com/etnz/capgrowth/httpcache"
)

// DefaultBaseURL is the BDM series root.
const DefaultBaseURL = "https://bdm.insee.fr/series"

// Client downloads INSEE series.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client with a daily cache.
func NewClient() *Client { return &Client{BaseURL: DefaultBaseURL, HTTP: httpcache.Daily()} }

// Fetch retrieves the idBank series over r as the typ index.
func (c *Client) Fetch(ctx context.Context, typ capgrowth.IndexType, idBank string, r date.Range) (capgrowth.IndexSeries, error) {
	series, err := c.getSeries(ctx, idBank, r)
	if err != nil {
		return capgrowth.IndexSeries{}, fmt.Errorf("failed to get series for INSEE ID %s: %w", idBank, err)
	}
	log.Printf("INSEE %s %q updated on %s", series.IDBank, series.Libelle, series.LastUpdate.Format(time.DateOnly))
	return capgrowth.NewIndexSeries(typ, series.Records())
}

// getSeries constructs the URL, downloads, and parses an INSEE time series.
func (c *Client) getSeries(ctx context.Context, idBank string, r date.Range) (*Series, error) {
	startQuarter := (r.From.Month()-1)/3 + 1
	endQuarter := (r.To.Month()-1)/3 + 1

	url := fmt.Sprintf("%s/%s/csv?lang=fr&ordre=antechronologique&transposition=donneescolonne&periodeDebut=%d&anneeDebut=%d&periodeFin=%d&anneeFin=%d&revision=sansrevisions",
		c.BaseURL,
		idBank,
		startQuarter,
		r.From.Year(),
		endQuarter,
		r.To.Year(),
	)
	log.Println("Downloading from INSEE:", url)

	body, err := httpcache.Get(ctx, c.HTTP, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: %w", idBank, err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive from INSEE response: %w", err)
	}

	var foundFiles []string
	for _, f := range zipReader.File {
		filename := f.Name
		foundFiles = append(foundFiles, filename)
		if filename == "valeurs_trimestrielles.csv" || filename == "valeurs_mensuelles.csv" {
			log.Println("Found", filename)
			csvFile, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open '%s' from zip archive: %w", filename, err)
			}
			defer csvFile.Close()
			return parseSeries(csvFile)
		}
	}

	return nil, fmt.Errorf("could not find a values file (mensuelles or trimestrielles) in downloaded zip file for ID %s (found: %s)", idBank, strings.Join(foundFiles, ", "))
}

// Series holds the data from an INSEE time series CSV file.
type Series struct {
	Libelle    string
	IDBank     string
	LastUpdate time.Time
	Values     map[date.Date]float64
}

// Records returns the series values in chronological order.
func (s *Series) Records() []capgrowth.Record {
	records := make([]capgrowth.Record, 0, len(s.Values))
	for on, v := range s.Values {
		records = append(records, capgrowth.Record{Date: on, Value: v})
	}
	slices.SortFunc(records, func(a, b capgrowth.Record) int { return a.Date.Compare(b.Date) })
	return records
}

// parseInseeDate parses a string like "2025-T2" or "2025-08" into a date.Date
// representing the end of that period.
func parseInseeDate(s string) (date.Date, error) {
	// Try quarterly format: "YYYY-TQ"
	if strings.Contains(s, "-T") {
		return parseQuarterlyDate(s)
	}

	// Try monthly format: "YYYY-MM"
	parts := strings.Split(s, "-")
	if len(parts) == 2 {
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return date.Date{}, fmt.Errorf("invalid year in monthly date %q: %w", s, err)
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return date.Date{}, fmt.Errorf("invalid month in monthly date %q", s)
		}
		return date.New(year, time.Month(month), 1).EndOf(date.Monthly), nil
	}
	return date.Date{}, fmt.Errorf("unrecognized insee date format: %q", s)
}

// parseQuarterlyDate parses a string like "2025-T2" into a date.Date
// representing the end of that quarter.
func parseQuarterlyDate(s string) (date.Date, error) {
	parts := strings.Split(s, "-T")
	if len(parts) != 2 {
		return date.Date{}, fmt.Errorf("invalid quarterly date format: %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid year in quarterly date %q: %w", s, err)
	}

	quarter, err := strconv.Atoi(parts[1])
	if err != nil || quarter < 1 || quarter > 4 {
		return date.Date{}, fmt.Errorf("invalid quarter in quarterly date %q", s)
	}

	return date.New(year, time.Month(quarter*3), 1).EndOf(date.Quarterly), nil
}

// parseSeries reads the INSEE CSV format from an io.Reader.
func parseSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) < 4 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}

	series := &Series{
		Libelle: records[0][1],
		IDBank:  records[1][1],
		Values:  make(map[date.Date]float64),
	}

	series.LastUpdate, err = time.Parse("02/01/2006 15:04", records[2][1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse last update date %q: %w", records[2][1], err)
	}

	for i := 4; i < len(records); i++ {
		if len(records[i]) > 1 && records[i][1] != "" {
			on, err := parseInseeDate(records[i][0])
			if err != nil {
				// Don't wrap, parseInseeDate provides good context
				return nil, err
			}
			val, err := strconv.ParseFloat(records[i][1], 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value %q for date %q: %w", records[i][1], records[i][0], err)
			}
			series.Values[on] = val
		}
	}
	return series, nil
}
