package tui

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/lessondl/internal/config"
	"github.com/handiism/lessondl/internal/download"
	"github.com/handiism/lessondl/internal/library"
)

func newTestModel() Model {
	return NewModel(config.DefaultSettings(), library.Credentials{ElggPerm: "a", SessionID: "b"}, nil)
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"abc", []string{"abc"}},
		{" abc  def ", []string{"abc", "def"}},
		{"abc,def\nghi", []string{"abc", "def", "ghi"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseIDs(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseIDs(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseIDs(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestModel_AppendLog(t *testing.T) {
	m := newTestModel()

	m = m.appendLog(download.ProgressEvent{Message: "\t\t[OK]", Level: download.LevelInfo})
	if len(m.logs) != 1 || m.logs[0].Message != "[OK]" {
		t.Fatalf("logs = %+v", m.logs)
	}

	m = m.appendLog(download.ProgressEvent{Message: "debug detail", Level: download.LevelVerbose})
	if len(m.logs) != 1 {
		t.Error("verbose events should be hidden by default")
	}

	m.verbose = true
	m = m.appendLog(download.ProgressEvent{Message: "debug detail", Level: download.LevelVerbose})
	if len(m.logs) != 2 {
		t.Error("verbose events should show in verbose mode")
	}

	for i := 0; i < 2*maxLogs; i++ {
		m = m.appendLog(download.ProgressEvent{Message: fmt.Sprint(i), Level: download.LevelInfo})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("kept %d logs, want %d", len(m.logs), maxLogs)
	}
	if last := m.logs[len(m.logs)-1].Message; last != fmt.Sprint(2*maxLogs-1) {
		t.Errorf("last log = %q", last)
	}
}

func TestModel_EnterWithoutIDStaysInInput(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(Model).state != StateInput {
		t.Errorf("state = %v, want StateInput", next.(Model).state)
	}
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if !next.(Model).playlist {
		t.Error("ctrl+p should enable playlist creation")
	}
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if !next.(Model).tags {
		t.Error("ctrl+t should enable tagging")
	}
}

func TestModel_InitError(t *testing.T) {
	m := newTestModel()
	m.state = StateInitializing

	next, _ := m.Update(InitDoneMsg{Err: library.ErrMalformedResponse})
	got := next.(Model)
	if got.state != StateError || !errors.Is(got.err, library.ErrMalformedResponse) {
		t.Errorf("state = %v, err = %v", got.state, got.err)
	}
	if !strings.Contains(got.View(), "player page does not have <items>") {
		t.Error("error view should show the error")
	}
}

func TestModel_DownloadDone(t *testing.T) {
	m := newTestModel()
	m.state = StateDownloading

	next, _ := m.Update(DownloadDoneMsg{Files: 2, TotalF: 2, Received: 2048})
	got := next.(Model)
	if got.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", got.state)
	}
	if !strings.Contains(got.View(), "Files: 2/2") {
		t.Errorf("complete view missing file count:\n%s", got.View())
	}
}

func TestModel_Reset(t *testing.T) {
	m := newTestModel()
	m.state = StateComplete
	m.logs = []LogEntry{{Message: "x"}}
	m.downloadedFiles = 3

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	got := next.(Model)
	if got.state != StateInput || len(got.logs) != 0 || got.downloadedFiles != 0 {
		t.Errorf("model not reset: state=%v logs=%d files=%d", got.state, len(got.logs), got.downloadedFiles)
	}
}

func TestModel_ViewWarnsWithoutCredentials(t *testing.T) {
	m := NewModel(config.DefaultSettings(), library.Credentials{}, nil)
	if !strings.Contains(m.View(), "No session cookies") {
		t.Error("input view should warn about missing cookies")
	}
}

func TestModel_EventsClosedAfterInitError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	settings := config.DefaultSettings()
	settings.BaseURL = server.URL
	m := NewModel(settings, library.Credentials{ElggPerm: "a", SessionID: "b"}, nil)
	m.textInput.SetValue("abc")
	m.events = make(chan download.ProgressEvent, 16)

	done, ok := m.initializeDownload()().(InitDoneMsg)
	if !ok || done.Err == nil {
		t.Fatalf("expected failed InitDoneMsg, got %#v", done)
	}

	// buffered events are still delivered, then the wait ends
	wait := m.waitForEvent()
	delivered := 0
	for i := 0; i < 10; i++ {
		msg := wait()
		if msg == nil {
			break
		}
		if _, ok := msg.(ProgressMsg); !ok {
			t.Fatalf("unexpected message %#v", msg)
		}
		delivered++
	}
	if delivered == 0 || delivered == 10 {
		t.Errorf("delivered %d events, want the buffered ones then nil", delivered)
	}
}

func TestModel_EventsClosedAfterDownload(t *testing.T) {
	settings := config.DefaultSettings()
	settings.OutputPath = t.TempDir()

	m := newTestModel()
	m.manager = download.NewManager(settings, nil)
	m.events = make(chan download.ProgressEvent, 1)

	done, ok := m.startDownload()().(DownloadDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("unexpected result %#v", done)
	}
	if _, open := <-m.events; open {
		t.Error("events channel should be closed after the download")
	}
	if msg := m.waitForEvent()(); msg != nil {
		t.Errorf("waitForEvent after close = %#v, want nil", msg)
	}
}
