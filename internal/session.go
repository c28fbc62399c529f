package internal

import "sync"

// SessionCookieName is the cookie the site issues on a successful login.
const SessionCookieName = "reddit_session"

// Session holds the mutable authentication state shared by every dispatch:
// the session cookie, set once on a successful login, and the latest
// anti-forgery token (modhash), overwritten by every response that carries
// one. It is safe for concurrent use; the client library may be shared
// across goroutines.
type Session struct {
	mu      sync.Mutex
	cookie  string
	modhash string
}

// NewSession returns an empty, anonymous session.
func NewSession() *Session {
	return &Session{}
}

// SetCookie stores the session cookie value.
func (s *Session) SetCookie(value string) {
	s.mu.Lock()
	s.cookie = value
	s.mu.Unlock()
}

// Cookie returns the current session cookie value, or "" when anonymous.
func (s *Session) Cookie() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cookie
}

// HasCookie reports whether a session cookie is present. This is a local
// check only; a server-side revocation is not visible until a request fails.
func (s *Session) HasCookie() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cookie != ""
}

// SetModhash stores the latest anti-forgery token.
func (s *Session) SetModhash(value string) {
	s.mu.Lock()
	s.modhash = value
	s.mu.Unlock()
}

// Modhash returns the last-seen anti-forgery token, or "" if none has been
// observed yet.
func (s *Session) Modhash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modhash
}
