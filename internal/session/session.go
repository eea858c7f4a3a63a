// Package session configures the scs session manager that ties a browser
// to its console state.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Lifetime is the absolute session lifetime.
const Lifetime = 24 * time.Hour

// New creates a session manager. A nil store falls back to scs memstore.
// idle, when positive, expires sessions that see no requests for that long.
func New(store scs.Store, isDev bool, idle time.Duration) *scs.SessionManager {
	sm := scs.New()

	if store == nil {
		store = memstore.New()
	}
	sm.Store = store

	sm.Lifetime = Lifetime
	sm.IdleTimeout = idle
	sm.Cookie.Name = "userdesk_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev

	// __Host- prefix pins the cookie to this origin over HTTPS
	if !isDev {
		sm.Cookie.Name = "__Host-userdesk_session"
	}

	return sm
}
