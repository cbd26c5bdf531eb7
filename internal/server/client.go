package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ClientCookie names the cookie that identifies a reader.
const ClientCookie = "docshell_client"

const clientCookieMaxAge = 365 * 24 * time.Hour

type clientKey struct{}

// ClientID returns the reader id stored in ctx by the client middleware.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientKey{}).(string)
	return id
}

// WithClientID returns a copy of ctx carrying id.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientKey{}, id)
}

// clientScope resolves the reader id from the cookie, issuing a fresh UUID
// when the cookie is missing or malformed.
func clientScope(cookiePath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(ClientCookie); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     cookiePath,
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
		})
	}
}
