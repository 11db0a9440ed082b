package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// CreateStack composes middlewares so the first argument runs outermost.
func CreateStack(ms ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(ms) - 1; i >= 0; i-- {
			next = ms[i](next)
		}
		return next
	}
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type contextKey string

const (
	UserContextKey contextKey = "user"
	UserIDKey      contextKey = "user_id"
)
