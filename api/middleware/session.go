package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/electronicsstore/storefront/pkg/logger"
)

// SessionOptions controls the cart session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func (o SessionOptions) cookieName() string {
	if name := strings.TrimSpace(o.CookieName); name != "" {
		return name
	}
	return "es_session"
}

// Session binds every request to a cart session, issuing a fresh cookie when
// the client has none or presents one that is not a UUID.
func Session(opts SessionOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	name := opts.cookieName()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if c, err := r.Cookie(name); err == nil {
				if parsed, perr := uuid.Parse(strings.TrimSpace(c.Value)); perr == nil {
					sessionID = parsed.String()
				}
			}

			ctx := r.Context()
			if sessionID == "" {
				sessionID = uuid.NewString()
				if logg != nil {
					logg.Debug(logg.WithSessionID(ctx, sessionID), "session.issued")
				}
			}

			// Refresh on every request so an active cart does not expire mid-visit.
			http.SetCookie(w, &http.Cookie{
				Name:     name,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
