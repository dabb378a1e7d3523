package yahoo

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// cacheDir is where cached responses live; each TTL bucket gets its
// own key so entries expire passively.
func cacheDir() string { return filepath.Join(os.TempDir(), "dripsim-cache") }

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
	ttl  time.Duration
}

// RoundTrip implements the http.RoundTripper interface. It checks for
// a cached response on disk first. If a fresh cached response is not
// found, it proceeds with the actual HTTP request and caches the new
// response if it is successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key embeds the current TTL bucket, so an entry silently
	// expires when the clock moves to the next bucket.
	bucket := time.Now().Truncate(c.ttl).Unix()
	key := fmt.Sprintf("%d %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // cache hit
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

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(cacheDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cacheDir(), 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(cacheDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// httpClient returns the client used for API calls, caching when the
// TTL is set.
func (c *Client) httpClient() *http.Client {
	client := new(http.Client)
	client.Timeout = 30 * time.Second
	if c.ttl > 0 {
		client.Transport = &diskCache{base: http.DefaultTransport, ttl: c.ttl}
	}
	return client
}

// PruneCache deletes cached responses older than maxAge. Expired
// entries are never read again, pruning just reclaims the disk.
func PruneCache(maxAge time.Duration) error {
	entries, err := os.ReadDir(cacheDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(cacheDir(), entry.Name()))
		}
	}
	return nil
}

// statusError reports a non-200 API response. The body is kept so the
// caller can inspect the error payload the API shipped with it.
type statusError struct {
	status int
	body   []byte
	host   string
	path   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("cannot http GET %v%v: status %d", e.host, e.path, e.status)
}

// jwget performs an HTTP GET request to the given address and
// unmarshals the JSON response body into the provided data structure.
// A non-200 status comes back as a *statusError carrying the body.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &statusError{
			status: resp.StatusCode,
			body:   buf.Bytes(),
			host:   resp.Request.URL.Host,
			path:   resp.Request.URL.Path,
		}
	}
	return json.Unmarshal(buf.Bytes(), data)
}
