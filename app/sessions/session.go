// Package sessions keeps server-side login sessions in badger and hands the
// browser a signed token naming the session.
package sessions

import "time"

// Session is the server-side state bound to one browser.
type Session struct {
	ID        string    `json:"id"`
	AccountID int       `json:"account_id,omitempty"`
	Flashes   []string  `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether an account is logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccountID > 0
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

// PopFlashes returns and clears the queued messages.
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
