package audio

import (
	"strings"
	"testing"

	"github.com/handiism/lessondl/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	pl := createTestPlaylist()
	creator := NewPlaylistCreator(FormatM3U, false, false)

	content := creator.CreatePlaylist(pl)

	want := "track1.mp3\ntrack2.mp3\n"
	if content != want {
		t.Errorf("M3U = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	pl := createTestPlaylist()
	creator := NewPlaylistCreator(FormatM3U, true, false)

	content := creator.CreatePlaylist(pl)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,track1\n") {
		t.Errorf("Extended M3U should contain EXTINF for track1, got:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	pl := createTestPlaylist()
	creator := NewPlaylistCreator(FormatPLS, false, false)

	content := creator.CreatePlaylist(pl)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=track2.mp3") {
		t.Error("PLS should contain File2=track2.mp3")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries=2")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	pl := createTestPlaylist()
	creator := NewPlaylistCreator(FormatWPL, false, false)

	content := creator.CreatePlaylist(pl)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<media src=\"track1.mp3\"/>") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	pl := createTestPlaylist()
	creator := NewPlaylistCreator(FormatZPL, false, false)

	content := creator.CreatePlaylist(pl)

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, "albumTitle=\"Test Lesson\"") {
		t.Error("ZPL should contain albumTitle attribute")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	pl := model.NewPlaylist("id", "Lesson <Special>", []*model.Track{
		model.NewTrack("Track & \"Quote\".mp3", "http://example.com", ""),
	})

	content := NewPlaylistCreator(FormatWPL, false, false).CreatePlaylist(pl)

	if strings.Contains(content, "<Special>") {
		t.Error("WPL should escape < and >")
	}
	if !strings.Contains(content, "Track &amp; &quot;Quote&quot;.mp3") {
		t.Errorf("WPL should escape & and quotes, got:\n%s", content)
	}
}

func TestPlaylistCreator_UsesSafeNames(t *testing.T) {
	pl := model.NewPlaylist("id", "Course", []*model.Track{
		model.NewTrack("cd1/track.mp3", "http://example.com", ""),
	})

	content := NewPlaylistCreator(FormatM3U, false, false).CreatePlaylist(pl)
	if content != "cd1_track.mp3\n" {
		t.Errorf("M3U = %q, want entry matching on-disk name", content)
	}
}

func TestPlaylistCreator_FileName(t *testing.T) {
	pl := createTestPlaylist()

	tests := []struct {
		format PlaylistFormat
		want   string
	}{
		{FormatM3U, "Test Lesson.m3u"},
		{FormatPLS, "Test Lesson.pls"},
		{FormatWPL, "Test Lesson.wpl"},
		{FormatZPL, "Test Lesson.zpl"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := NewPlaylistCreator(tt.format, false, false).FileName(pl); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PlaylistFormat
		wantErr bool
	}{
		{"", FormatM3U, false},
		{"m3u", FormatM3U, false},
		{"PLS", FormatPLS, false},
		{" wpl ", FormatWPL, false},
		{"zpl", FormatZPL, false},
		{"xspf", FormatM3U, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlaylistFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlaylistFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func createTestPlaylist() *model.Playlist {
	return model.NewPlaylist("abc", "Test Lesson", []*model.Track{
		model.NewTrack("track1.mp3", "http://example.com/1.mp3", ""),
		model.NewTrack("track2.mp3", "http://example.com/2.mp3", ""),
	})
}
