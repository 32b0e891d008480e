package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ioutils "github.com/handiism/lessondl/internal/io"
	"golang.org/x/time/rate"
)

const (
	// SafariUserAgent is sent on every request. The library rejects clients
	// that do not look like a browser, so this must stay verbatim.
	SafariUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"

	// HTMLAccept is the Accept header sent with page requests.
	HTMLAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// ChunkSize is the buffer size used when streaming downloads to disk.
	ChunkSize = 8 * 1024

	// DefaultTimeout bounds a whole request, body included.
	DefaultTimeout = 10 * time.Minute
)

// TransportError is returned when the server answers with a non-2xx status.
//
// It is never retried. Use errors.As to inspect the status:
//
//	var te *http.TransportError
//	if errors.As(err, &te) && te.StatusCode == 404 {
//	    fmt.Println("playlist not found")
//	}
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %d: %s %s: %s", e.StatusCode, e.Method, e.URL, e.Status)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	// UserAgent overrides SafariUserAgent.
	UserAgent string

	// Timeout overrides DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// HTTPClient replaces the underlying client entirely (Timeout is ignored).
	HTTPClient *http.Client
}

// Client wraps HTTP operations with the library-specific configuration.
//
// Client provides:
//   - Browser User-Agent on every request
//   - Optional cookies and HTML Accept header for page requests
//   - Optional request throttling
//   - Atomic, chunked file downloads with progress tracking
//   - File size retrieval via HEAD requests
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch an authenticated page
//	html, err := client.GetPage(ctx, "https://library.michelthomas.com/abc", cookies)
//
//	// Download file with progress
//	n, err := client.DownloadFile(ctx, mp3URL, "/path/to/file.mp3", func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a new HTTP client with default options.
func NewClient() *Client {
	return NewClientWithOptions(Options{})
}

// NewClientWithOptions creates a new HTTP client.
func NewClientWithOptions(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = SafariUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: httpClient,
		userAgent:  opts.UserAgent,
		limiter:    limiter,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// GetPage performs an HTML GET request and returns the response body.
//
// The request carries the browser User-Agent, the HTMLAccept header and
// the given cookies. The body is read fully and the connection released
// before returning.
//
// Returns *TransportError for any non-2xx status.
func (c *Client) GetPage(ctx context.Context, url string, cookies []*http.Cookie) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", HTMLAccept)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// Returns an error if:
//   - The request fails or the status is not 2xx
//   - The server doesn't return a Content-Length header
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadFile streams a file to destPath and returns the number of bytes written.
//
// The body is copied in ChunkSize chunks into destPath + ".part", which is
// renamed onto destPath only after the whole body has been written. On any
// error the partial file is removed and destPath is not created.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
//     Pass nil to disable progress tracking
//
// Returns *TransportError for any non-2xx status.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	pw := &ProgressWriter{
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}
	err = ioutils.WriteAtomic(destPath, func(w io.Writer) error {
		pw.Writer = w
		buf := make([]byte, ChunkSize)
		_, err := io.CopyBuffer(pw, resp.Body, buf)
		return err
	})

	return pw.Written, err
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// do waits for the rate limiter, sends req and turns non-2xx answers into
// *TransportError. On error the response body is already closed.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &TransportError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	return resp, nil
}
