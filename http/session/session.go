package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The FlashingSessionable composes session's major interfaces.
type FlashingSessionable interface {
	FlashSessionable
	Sessionable
}

var _ FlashingSessionable = Session{}

// A Session provides all functionality for managing a session and the flashes stored in it.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session from a *gorilla.Session.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// ClearFlashes drops any flashes stored in the session.
func (s Session) ClearFlashes(w http.ResponseWriter, r *http.Request) {
	_ = s.Flashes(w, r)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flashes retrieves the []Flash stored in the session, removing them from it.
//
// If r's context was prepared by NewFlashContext,
// the first call pulls the flashes out of the session
// and every later call while handling r returns the same []Flash.
// Otherwise, each call pulls whatever remains in the session.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	rf := requestFlashesFromContext(r.Context())
	if rf == nil {
		return s.popFlashes(w, r)
	}

	rf.Lock()
	defer rf.Unlock()

	if !rf.loaded {
		rf.val = s.popFlashes(w, r)
		rf.loaded = true
	}

	fs := make([]Flash, len(rf.val))
	copy(fs, rf.val)
	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetFlash appends the passed in Flash to those stored in the session.
// A Flash without a Category is stored under FlashMessage.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	if flash.Category == "" {
		flash.Category = FlashMessage
	}

	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// popFlashes removes all flashes from the session and saves it.
//
// The flashes return even if saving fails;
// the stored session then still holds them for a later request.
func (s Session) popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0, len(raw))
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}

	if len(raw) > 0 {
		// NOTE: Flashes are removed after they are accessed,
		// but the session needs to be saved for them to be finally removed
		_ = s.Save(w, r)
	}

	return fs
}
