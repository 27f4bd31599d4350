// Package httpcache contains http utils to deal with remote index providers.
//
// Published indexes change at most once a day, so responses are cached on
// disk with a key that expires every day.
package httpcache

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/capgrowth/date"
)

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base  http.RoundTripper
	dir   string
	today func() date.Date
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", c.today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		log.Printf("cache hit %v %v%v", req.Method, req.URL.Host, req.URL.Path)
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	// DumpResponse reads the body and replaces it with an in memory copy.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// Daily returns a client caching all responses in the system temp dir, with daily expire.
func Daily() *http.Client { return DailyIn(os.TempDir()) }

// DailyIn is like Daily but caches responses in dir.
func DailyIn(dir string) *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, today: date.Today}
	return client
}

// Get performs an HTTP GET request and returns the response body.
func Get(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into data.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	body, err := Get(ctx, client, addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
