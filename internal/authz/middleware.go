package authz

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hypermarketllc/commission-crm/internal/auth"
)

// Require wraps a route so it only runs when the authenticated caller passes
// the CanAccess check for the given section and action.
func Require(s *Service, section, action string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			if !s.CanAccess(auth.PositionLevel(ctx), auth.IsAdmin(ctx), section, action) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
