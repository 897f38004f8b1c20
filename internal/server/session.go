package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// newSessionID returns exactly 32 hex characters.
func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func validSessionID(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// session returns the caller's session identifier, issuing a new cookie when
// the request carries none or a malformed one. The cookie lifetime is
// refreshed on every request.
func (h *handler) session(w http.ResponseWriter, r *http.Request) string {
	id := ""
	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil && validSessionID(cookie.Value) {
		id = cookie.Value
	} else {
		id = newSessionID()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
