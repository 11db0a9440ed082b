package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// UserContext parses the authenticated subject into a uuid and stores it
// under UserIDKey. A subject that is not a uuid leaves the key unset, and
// handlers reject the request from there.
func UserContext() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if user, ok := ctx.Value(UserContextKey).(*User); ok {
				if parsedID, err := uuid.Parse(user.ID); err == nil {
					ctx = context.WithValue(ctx, UserIDKey, parsedID)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
