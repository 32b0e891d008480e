package library

import "errors"

var (
	// ErrMalformedResponse is returned when the player page was served
	// successfully but does not contain the <items> marker.
	//
	// This typically occurs when:
	//   - The session cookies are stale and a login page came back
	//   - The playlist id is wrong
	//   - The library served an error page with status 200
	ErrMalformedResponse = errors.New("player page does not have <items>")

	// ErrStructure is returned when the parsed document has no <items>
	// element, i.e. the page layout changed.
	ErrStructure = errors.New("no <items> element found in player page")
)
