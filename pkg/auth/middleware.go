// Package auth provides the session-checking middleware guarding the admin routes.
package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tendant/simple-mall/pkg/authctx"
	"github.com/tendant/simple-mall/pkg/result"
	"github.com/tendant/simple-mall/pkg/session"
)

// TokenHeader is the request header carrying the opaque session token
const TokenHeader = "token"

// Authenticator returns a middleware that resolves the token header against
// the session store. On a hit it installs the identity into the request
// context and renews the session with the sliding idle window; otherwise it
// answers with the "not logged in" envelope and never invokes the handler.
// OPTIONS preflights pass through unchecked so CORS never breaks on auth.
func Authenticator(sessions *session.Store, slidingTTL time.Duration) func(http.Handler) http.Handler {
	if slidingTTL <= 0 {
		slidingTTL = session.DefaultSlidingTTL
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get(TokenHeader)
			if token == "" {
				result.Render(w, r, result.Fail(result.CodeNotLoggedIn))
				return
			}

			// an infrastructure failure is not a logout: answer 500 so the
			// client retries instead of discarding a valid token
			user, ok, err := sessions.Get(r.Context(), token)
			if err != nil {
				slog.Error("Failed resolving session", "err", err)
				result.Render(w, r, result.Fail(result.CodeFail))
				return
			}
			if !ok {
				result.Render(w, r, result.Fail(result.CodeNotLoggedIn))
				return
			}

			// a session that expired between Get and Renew stays dead; the
			// request still proceeds on the identity read above
			if err := sessions.Renew(r.Context(), token, slidingTTL); err != nil {
				slog.Error("Failed renewing session", "err", err)
			}

			// the identity lives on the derived context only, so it is
			// released with the request on every exit path
			ctx := authctx.WithIdentity(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
