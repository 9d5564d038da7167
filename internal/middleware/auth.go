package middleware

import (
	"context"
	"net/http"

	"prima-photo-backend/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// WithSession resolves the session cookie into a session.Session and attaches
// it to the request context. Requests without a valid cookie proceed
// anonymously; the gate itself lives in RequireAuth and in the services.
func WithSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.Session{}
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				sess = manager.Resolve(cookie.Value)
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose session is not authenticated. It fails
// closed before any handler input validation runs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetSession(r.Context()).Authenticated {
			respondError(w, "not authorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession extracts the resolved session from the context. A request that
// never ran WithSession is anonymous.
func GetSession(ctx context.Context) session.Session {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	if !ok {
		return session.Session{}
	}
	return sess
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
