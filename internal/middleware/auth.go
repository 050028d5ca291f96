package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/police-1111/cmf/internal/auth"
	"github.com/police-1111/cmf/internal/session"
)

// DeniedPath is where every denied request lands. The gallery is a
// page-redirect system: deny never yields a 401/403 JSON body.
const DeniedPath = "/denied.html"

// unexported, collision-proof context key
type emailContextKeyType struct{}

var emailKey = emailContextKeyType{}

// EmailFromContext extracts the authenticated email from context.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// Gate is the authorization gate: a pure per-request predicate over
// the session plus the allow-list. The allow-list is re-checked on
// every request rather than trusted from session state, so a stale or
// tampered session never passes.
type Gate struct {
	Store session.Store
	Allow *auth.AllowList
	Codec *session.Codec
}

func NewGate(store session.Store, allow *auth.AllowList, codec *session.Codec) *Gate {
	return &Gate{
		Store: store,
		Allow: allow,
		Codec: codec,
	}
}

// RequireAllowed admits the request only when the session cookie
// verifies, resolves to a live session, and the session email is on
// the allow-list. Anything else redirects to the denied page.
func (g *Gate) RequireAllowed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read and verify the session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			g.deny(w, r)
			return
		}

		sessionID, ok := g.Codec.Verify(cookie.Value)
		if !ok {
			g.deny(w, r)
			return
		}

		// 2. Load session
		sess, err := g.Store.Get(r.Context(), sessionID)
		if err != nil || sess == nil {
			g.deny(w, r)
			return
		}

		// 3. Enforce expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = g.Store.Delete(r.Context(), sessionID)
			g.deny(w, r)
			return
		}

		// 4. Re-validate allow-list membership
		if !g.Allow.Allowed(sess.Email) {
			g.deny(w, r)
			return
		}

		// 5. Attach email to context and continue
		ctx := context.WithValue(r.Context(), emailKey, sess.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (*Gate) deny(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DeniedPath, http.StatusFound)
}
