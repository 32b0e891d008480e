package library

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	lhttp "github.com/handiism/lessondl/internal/http"
	"github.com/handiism/lessondl/internal/model"
)

const playerPage = `<!DOCTYPE html>
<html>
<head>
	<title>
		Lesson 1
	</title>
</head>
<body>
	<div id="player">
		<items>
			<item name="a.mp3" downloadurl="http://x/a" checksum="c0ffee"></item>
			<item name="b.mp3" downloadurl="http://x/b" checksum="bogus"></item>
			<item name="c.mp3" downloadurl="http://x/c"></item>
		</items>
	</div>
</body>
</html>`

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
		wantNames []string
		wantErr   error
	}{
		{
			name:      "closed items",
			html:      playerPage,
			wantTitle: "Lesson 1",
			wantNames: []string{"a.mp3", "b.mp3", "c.mp3"},
		},
		{
			name: "self-closing items",
			html: `<html><head><title>Course</title></head><body><items>
				<item name="1.mp3" downloadurl="http://x/1"/>
				<item name="2.mp3" downloadurl="http://x/2"/>
				<item name="3.mp3" downloadurl="http://x/3"/>
			</items></body></html>`,
			wantTitle: "Course",
			wantNames: []string{"1.mp3", "2.mp3", "3.mp3"},
		},
		{
			name:      "empty items",
			html:      `<html><head><title>Empty</title></head><body><items></items></body></html>`,
			wantTitle: "Empty",
			wantNames: nil,
		},
		{
			name:      "missing title",
			html:      `<html><head></head><body><items><item name="a.mp3" downloadurl="u"></item></items></body></html>`,
			wantTitle: model.DefaultTitle,
			wantNames: []string{"a.mp3"},
		},
		{
			name:      "blank title",
			html:      `<html><head><title>   </title></head><body><items><item name="a.mp3" downloadurl="u"></item></items></body></html>`,
			wantTitle: model.DefaultTitle,
			wantNames: []string{"a.mp3"},
		},
		{
			name:    "no items element",
			html:    `<html><head><title>Login</title></head><body><form></form></body></html>`,
			wantErr: ErrStructure,
		},
	}

	p := NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl, err := p.Parse("id", []byte(tt.html))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if pl.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", pl.Title, tt.wantTitle)
			}
			if pl.Len() != len(tt.wantNames) {
				t.Fatalf("got %d tracks, want %d", pl.Len(), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if pl.Tracks[i].Name != name {
					t.Errorf("Tracks[%d].Name = %q, want %q", i, pl.Tracks[i].Name, name)
				}
				if pl.Tracks[i].Number != i+1 {
					t.Errorf("Tracks[%d].Number = %d, want %d", i, pl.Tracks[i].Number, i+1)
				}
			}
		})
	}
}

func TestParser_ParseAttributes(t *testing.T) {
	pl, err := NewParser().Parse("id", []byte(playerPage))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	first := pl.Tracks[0]
	if first.URL != "http://x/a" {
		t.Errorf("URL = %q, want %q", first.URL, "http://x/a")
	}
	if first.Checksum != "c0ffee" {
		t.Errorf("Checksum = %q, want %q", first.Checksum, "c0ffee")
	}
	if pl.Tracks[2].Checksum != "" {
		t.Errorf("missing checksum should be empty, got %q", pl.Tracks[2].Checksum)
	}
	if pl.ID != "id" {
		t.Errorf("ID = %q, want %q", pl.ID, "id")
	}
}

func TestParser_PreservesOrderForManyItems(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><head><title>Big</title></head><body><items>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, `<item name="%02d.mp3" downloadurl="http://x/%d"></item>`, i, i)
	}
	b.WriteString("</items></body></html>")

	pl, err := NewParser().Parse("id", []byte(b.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pl.Len() != 50 {
		t.Fatalf("got %d tracks, want 50", pl.Len())
	}
	for i, track := range pl.Tracks {
		if want := fmt.Sprintf("%02d.mp3", i); track.Name != want {
			t.Fatalf("Tracks[%d].Name = %q, want %q", i, track.Name, want)
		}
	}
}

func TestDocTitle_OnlyDirectHeadChild(t *testing.T) {
	pl, err := NewParser().Parse("id", []byte(`<html><head></head><body><svg><title>icon</title></svg><items></items></body></html>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pl.Title != model.DefaultTitle {
		t.Errorf("Title = %q, want %q", pl.Title, model.DefaultTitle)
	}
}

func TestDocTitle_FirstTopLevelElement(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title in body without head",
			html: `<html><body><title>InBody</title><items></items></body></html>`,
			want: "InBody",
		},
		{
			name: "head wins over body",
			html: `<html><head><meta charset="utf-8"></head><body><title>InBody</title><items></items></body></html>`,
			want: model.DefaultTitle,
		},
		{
			name: "title before body",
			html: `<html><title>Early</title><body><items></items></body></html>`,
			want: "Early",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl, err := NewParser().Parse("id", []byte(tt.html))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if pl.Title != tt.want {
				t.Errorf("Title = %q, want %q", pl.Title, tt.want)
			}
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	creds := Credentials{ElggPerm: "perm-token", SessionID: "session-token"}

	t.Run("sends credentials and returns page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/abc123" {
				t.Errorf("path = %q, want /abc123", r.URL.Path)
			}
			if c, err := r.Cookie(ElggPermCookie); err != nil || c.Value != "perm-token" {
				t.Errorf("elggperm cookie = %v, %v", c, err)
			}
			if c, err := r.Cookie(SessionIDCookie); err != nil || c.Value != "session-token" {
				t.Errorf("session cookie = %v, %v", c, err)
			}
			if got := r.Header.Get("User-Agent"); got != lhttp.SafariUserAgent {
				t.Errorf("User-Agent = %q", got)
			}
			w.Write([]byte(playerPage))
		}))
		defer server.Close()

		f := NewFetcher(lhttp.NewClient(), server.URL+"/")
		page, err := f.Fetch(context.Background(), "abc123", creds)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if string(page) != playerPage {
			t.Error("page body mismatch")
		}
	})

	t.Run("missing marker is malformed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><head><title>Log in</title></head><body><form></form></body></html>`))
		}))
		defer server.Close()

		_, err := NewFetcher(lhttp.NewClient(), server.URL).Fetch(context.Background(), "abc123", creds)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("err = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("error status is a TransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		_, err := NewFetcher(lhttp.NewClient(), server.URL).Fetch(context.Background(), "abc123", creds)

		var te *lhttp.TransportError
		if !errors.As(err, &te) || te.StatusCode != http.StatusNotFound {
			t.Fatalf("err = %v, want 404 TransportError", err)
		}
		if errors.Is(err, ErrMalformedResponse) {
			t.Error("transport failure must not be reported as malformed")
		}
	})
}

func TestFetcher_URL(t *testing.T) {
	tests := []struct {
		base string
		id   string
		want string
	}{
		{"", "abc", DefaultBaseURL + "/abc"},
		{"https://example.com/", "abc", "https://example.com/abc"},
		{"https://example.com", "/abc", "https://example.com/abc"},
		{"https://example.com", "course/7", "https://example.com/course/7"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewFetcher(nil, tt.base).URL(tt.id); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLibrary_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(playerPage))
	}))
	defer server.Close()

	lib := New(lhttp.NewClient(), server.URL)
	pl, err := lib.Resolve(context.Background(), "abc", Credentials{ElggPerm: "a", SessionID: "b"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pl.Title != "Lesson 1" || pl.Len() != 3 {
		t.Errorf("got %q with %d tracks", pl.Title, pl.Len())
	}
	if lib.PageURL("abc") != server.URL+"/abc" {
		t.Errorf("PageURL = %q", lib.PageURL("abc"))
	}
}

func TestCredentials(t *testing.T) {
	if (Credentials{ElggPerm: "a"}).Complete() {
		t.Error("credentials with one token should not be complete")
	}
	c := Credentials{ElggPerm: "a", SessionID: "b"}
	if !c.Complete() {
		t.Error("credentials with both tokens should be complete")
	}
	cookies := c.Cookies()
	if len(cookies) != 2 || cookies[0].Name != "elggperm" || cookies[1].Name != "ASP.NET_SessionId" {
		t.Errorf("unexpected cookies: %v", cookies)
	}
}
