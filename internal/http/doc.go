// Package http provides the HTTP client used to talk to the lesson library.
//
// The Client in this package handles:
//   - The browser User-Agent and Accept headers the library expects
//   - Session cookies on page requests
//   - Optional request throttling
//   - Atomic file downloads with progress tracking
//   - File size retrieval via HEAD requests
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch an authenticated HTML page
//	html, err := client.GetPage(ctx, pageURL, cookies)
//
//	// Download file with progress callback
//	n, err := client.DownloadFile(ctx, mp3URL, "/path/to/file.mp3", func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
//
// # Errors
//
// Any non-2xx answer is reported as *TransportError and is never retried.
package http
