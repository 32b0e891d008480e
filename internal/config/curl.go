package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/handiism/lessondl/internal/library"
)

// CurlHeaders represents parsed headers and cookies from a cURL command.
type CurlHeaders struct {
	URL     string
	Headers map[string]string
	Cookie  string
}

var (
	curlHeaderRegex = regexp.MustCompile(`(?:-H|--header)\s+'([^']+)'|(?:-H|--header)\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`(?:-b|--cookie)\s+'([^']+)'|(?:-b|--cookie)\s+"([^"]+)"`)
	curlURLRegex    = regexp.MustCompile(`curl\s+(?:--location\s+|-L\s+)?'([^']+)'|curl\s+(?:--location\s+|-L\s+)?"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command, as produced by a
// browser's "Copy as cURL", and extracts headers.
func ParseCurlFile(path string) (*CurlHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// The cookie comes from -b/--cookie if present, otherwise from a
// "Cookie:" header.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\r\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		key, value, ok := strings.Cut(firstGroup(match), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if cookie == "" {
				cookie = value
			}
			continue
		}
		headers[key] = value
	}

	// -b wins over a Cookie header
	if match := curlCookieRegex.FindStringSubmatch(curlCmd); match != nil {
		cookie = firstGroup(match)
	}

	var url string
	if match := curlURLRegex.FindStringSubmatch(curlCmd); match != nil {
		url = firstGroup(match)
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &CurlHeaders{
		URL:     url,
		Headers: headers,
		Cookie:  cookie,
	}, nil
}

// Credentials extracts the session tokens from the parsed cookie.
func (c *CurlHeaders) Credentials() (library.Credentials, error) {
	return CredentialsFromCookie(c.Cookie)
}

// CredentialsFromCookie extracts the session tokens from a Cookie header
// value such as "elggperm=abc; ASP.NET_SessionId=xyz; other=1".
//
// Returns ErrNoCookies if neither token is present. A single token is
// returned as-is; completeness is checked by the caller.
func CredentialsFromCookie(cookie string) (library.Credentials, error) {
	var creds library.Credentials

	for _, pair := range strings.Split(cookie, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(name) {
		case library.ElggPermCookie:
			creds.ElggPerm = strings.TrimSpace(value)
		case library.SessionIDCookie:
			creds.SessionID = strings.TrimSpace(value)
		}
	}

	if creds.ElggPerm == "" && creds.SessionID == "" {
		return creds, ErrNoCookies
	}
	return creds, nil
}

// CredentialsFromCurlFile parses a cURL dump and returns its session tokens.
func CredentialsFromCurlFile(path string) (library.Credentials, error) {
	parsed, err := ParseCurlFile(path)
	if err != nil {
		return library.Credentials{}, err
	}
	creds, err := parsed.Credentials()
	if err != nil {
		return library.Credentials{}, fmt.Errorf("%s: %w", path, err)
	}
	return creds, nil
}

func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
