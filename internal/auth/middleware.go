package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID        ctxKey = "userID"
	CtxIsAdmin       ctxKey = "isAdmin"
	CtxPositionLevel ctxKey = "positionLevel"
)

// Middleware validates the bearer token and stores the claims on the request
// context. OPTIONS requests pass through for CORS preflight.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidateToken(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		ctx = context.WithValue(ctx, CtxPositionLevel, claims.PositionLevel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID reads the authenticated agent ID from the context.
func UserID(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUserID).(uint)
	return id
}

// IsAdmin reads the admin flag from the context.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(CtxIsAdmin).(bool)
	return ok
}

// PositionLevel reads the caller's position level from the context.
func PositionLevel(ctx context.Context) int {
	lvl, _ := ctx.Value(CtxPositionLevel).(int)
	return lvl
}
