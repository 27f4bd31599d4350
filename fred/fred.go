// Package fred fetches index series from the FRED economic data API of the
// Federal Reserve Bank of St. Louis.
//
// The BIS residential property price indexes are published there, for
// instance QMYR628BIS (real) and QMYN628BIS (nominal) for Malaysia.
package fred

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
	"github.com/etnz/capgrowth/httpcache"
)

// DefaultBaseURL is the FRED API root.
const DefaultBaseURL = "https://api.stlouisfed.org/fred"

// EnvAPIKey is the environment variable holding the FRED API key.
const EnvAPIKey = "FRED_API_KEY"

// Client fetches series observations.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client using the API key from the environment and a daily cache.
func NewClient() *Client {
	return &Client{
		APIKey:  os.Getenv(EnvAPIKey),
		BaseURL: DefaultBaseURL,
		HTTP:    httpcache.Daily(),
	}
}

// Fetch downloads the observations of seriesID since from, as the typ index.
// A zero from fetches the whole history.
func (c *Client) Fetch(ctx context.Context, typ capgrowth.IndexType, seriesID string, from date.Date) (capgrowth.IndexSeries, error) {
	if c.APIKey == "" {
		return capgrowth.IndexSeries{}, fmt.Errorf("missing FRED API key, set %s", EnvAPIKey)
	}
	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", c.APIKey)
	q.Set("file_type", "json")
	if !from.IsZero() {
		q.Set("observation_start", from.String())
	}
	addr := c.BaseURL + "/series/observations?" + q.Encode()

	var jobj any
	if err := httpcache.GetJSON(ctx, c.HTTP, addr, &jobj); err != nil {
		return capgrowth.IndexSeries{}, fmt.Errorf("failed to download FRED series %s: %w", seriesID, err)
	}
	records, err := parseObservations(jobj)
	if err != nil {
		return capgrowth.IndexSeries{}, fmt.Errorf("failed to parse FRED series %s: %w", seriesID, err)
	}
	return capgrowth.NewIndexSeries(typ, records)
}

// parseObservations extracts dated values from a FRED observations response.
// Missing observations are published as "." and skipped.
func parseObservations(jobj any) ([]capgrowth.Record, error) {
	// wildcards over a missing key yield an empty list, not an error.
	obs, err := jsonpath.Get("$.observations", jobj)
	if err != nil {
		return nil, fmt.Errorf("no observations: %w", err)
	}
	if list, ok := obs.([]any); !ok || len(list) == 0 {
		return nil, errors.New("no observations")
	}
	dates, err := stringsAt(jobj, "$.observations[*].date")
	if err != nil {
		return nil, err
	}
	values, err := stringsAt(jobj, "$.observations[*].value")
	if err != nil {
		return nil, err
	}
	if len(dates) != len(values) {
		return nil, fmt.Errorf("got %d dates for %d values", len(dates), len(values))
	}

	var records []capgrowth.Record
	var errs error
	for i, d := range dates {
		if values[i] == "." || values[i] == "" {
			continue
		}
		on, err := date.Parse(d)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		v, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid value %q on %s: %w", values[i], d, err))
			continue
		}
		records = append(records, capgrowth.Record{Date: on, Value: v})
	}
	return records, errs
}

// stringsAt evaluates path and returns its results as strings.
func stringsAt(jobj any, path string) ([]string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not a list %T", path, jval)
	}
	res := make([]string, len(jlist))
	for i, v := range jlist {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("error parsing %q: item %d is %T, not a string", path, i, v)
		}
		res[i] = s
	}
	return res, nil
}
