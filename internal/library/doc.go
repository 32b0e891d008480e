// Package library fetches and parses lesson player pages.
//
// A player page is an HTML document served at <base>/<id> to a browser
// session. It lists the playlist's audio files as children of an <items>
// element and names the playlist in its <title>.
//
// # Resolving a Playlist
//
//	lib := library.New(http.NewClient(), library.DefaultBaseURL)
//	pl, err := lib.Resolve(ctx, "abc123", library.Credentials{
//	    ElggPerm:  "...",
//	    SessionID: "...",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%d tracks)\n", pl.Title, pl.Len())
//
// # Errors
//
// Fetching fails with *http.TransportError on a non-2xx status and with
// ErrMalformedResponse when the page lacks the <items> marker, which
// usually means the session cookies expired. Parsing fails with
// ErrStructure when no <items> element can be selected.
//
// # Checksums
//
// Each item carries a checksum attribute whose algorithm is unknown. It is
// copied into model.Track.Checksum for logging and never verified.
package library
