package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/lessondl/internal/library"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name        string
		curlCmd     string
		wantHeaders map[string]string
		wantCookie  string
		wantURL     string
		wantErr     bool
	}{
		{
			name:        "chrome style with -b",
			curlCmd:     `curl 'https://library.michelthomas.com/abc' -H 'accept: text/html' -b 'elggperm=p; ASP.NET_SessionId=s'`,
			wantHeaders: map[string]string{"accept": "text/html"},
			wantCookie:  "elggperm=p; ASP.NET_SessionId=s",
			wantURL:     "https://library.michelthomas.com/abc",
		},
		{
			name:        "firefox style cookie header",
			curlCmd:     `curl "https://library.michelthomas.com/abc" -H "User-Agent: Mozilla" -H "Cookie: elggperm=p; ASP.NET_SessionId=s"`,
			wantHeaders: map[string]string{"User-Agent": "Mozilla"},
			wantCookie:  "elggperm=p; ASP.NET_SessionId=s",
			wantURL:     "https://library.michelthomas.com/abc",
		},
		{
			name:        "long options",
			curlCmd:     `curl --header 'Accept: */*' --cookie 'elggperm=p' https://x`,
			wantHeaders: map[string]string{"Accept": "*/*"},
			wantCookie:  "elggperm=p",
		},
		{
			name: "multiline curl with backslashes",
			curlCmd: "curl 'https://x/abc' \\\n  -H 'accept: text/html' \\\n  -b 'elggperm=p'",
			wantHeaders: map[string]string{"accept": "text/html"},
			wantCookie:  "elggperm=p",
			wantURL:     "https://x/abc",
		},
		{
			name:    "no headers",
			curlCmd: `curl https://x`,
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCurlCommand([]byte(tc.curlCmd))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Cookie != tc.wantCookie {
				t.Errorf("Cookie = %q, want %q", got.Cookie, tc.wantCookie)
			}
			if got.URL != tc.wantURL {
				t.Errorf("URL = %q, want %q", got.URL, tc.wantURL)
			}
			if len(got.Headers) != len(tc.wantHeaders) {
				t.Errorf("Headers = %v, want %v", got.Headers, tc.wantHeaders)
			}
			for k, v := range tc.wantHeaders {
				if got.Headers[k] != v {
					t.Errorf("Headers[%q] = %q, want %q", k, got.Headers[k], v)
				}
			}
		})
	}
}

func TestCredentialsFromCookie(t *testing.T) {
	tests := []struct {
		name    string
		cookie  string
		want    library.Credentials
		wantErr error
	}{
		{
			name:   "both tokens among others",
			cookie: "_ga=1; elggperm=abc; ASP.NET_SessionId=xyz; theme=dark",
			want:   library.Credentials{ElggPerm: "abc", SessionID: "xyz"},
		},
		{
			name:   "value containing equals",
			cookie: "elggperm=a=b==; ASP.NET_SessionId=s",
			want:   library.Credentials{ElggPerm: "a=b==", SessionID: "s"},
		},
		{
			name:   "only one token",
			cookie: "ASP.NET_SessionId=s",
			want:   library.Credentials{SessionID: "s"},
		},
		{
			name:    "no tokens",
			cookie:  "_ga=1; theme=dark",
			wantErr: ErrNoCookies,
		},
		{
			name:    "empty",
			cookie:  "",
			wantErr: ErrNoCookies,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CredentialsFromCookie(tt.cookie)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCredentialsFromCurlFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := CredentialsFromCurlFile(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("no library cookies", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "req.curl")
		if err := os.WriteFile(path, []byte(`curl 'https://x' -b 'other=1'`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := CredentialsFromCurlFile(path); !errors.Is(err, ErrNoCookies) {
			t.Errorf("err = %v, want ErrNoCookies", err)
		}
	})
}
