package library

import "net/http"

// Cookie names used by the library for session authentication.
const (
	ElggPermCookie  = "elggperm"
	SessionIDCookie = "ASP.NET_SessionId"
)

// Credentials is the pair of session tokens copied from a logged-in browser.
//
// The tokens are opaque and passed through as cookies unchanged.
type Credentials struct {
	ElggPerm  string
	SessionID string
}

// Complete reports whether both tokens are set.
func (c Credentials) Complete() bool {
	return c.ElggPerm != "" && c.SessionID != ""
}

// Cookies returns the tokens as request cookies.
func (c Credentials) Cookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: ElggPermCookie, Value: c.ElggPerm},
		{Name: SessionIDCookie, Value: c.SessionID},
	}
}
