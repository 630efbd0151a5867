package middleware

import (
	"context"
	"net/http"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/auth"
)

type contextKey string

// ManagerContextKey is the key for the authenticated manager id in the
// context.
const ManagerContextKey = contextKey("manager")

// ManagerID returns the manager id stored by RequireManager or RequireAny.
func ManagerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ManagerContextKey).(string)
	return id, ok
}

// Auth wraps handlers with credential checks.
type Auth struct {
	service *auth.Service
	deny    func(w http.ResponseWriter, err error)
}

// NewAuth builds the middleware; deny writes the error envelope so the
// middleware stays independent of the response format.
func NewAuth(service *auth.Service, deny func(w http.ResponseWriter, err error)) *Auth {
	return &Auth{service: service, deny: deny}
}

// RequireAdmin admits only the editorial team's bearer token.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := a.service.VerifyAdmin(r.Header.Get("Authorization")); err != nil {
			a.deny(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManager admits only manager tokens and stores the manager id in the
// context.
func (a *Auth) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		managerID, err := a.service.VerifyManager(r.Header.Get("Authorization"))
		if err != nil {
			a.deny(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ManagerContextKey, managerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAny admits the editorial token or a manager token, for the surfaces
// both roles may read.
func (a *Auth) RequireAny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if err := a.service.VerifyAdmin(header); err == nil {
			next.ServeHTTP(w, r)
			return
		}
		managerID, err := a.service.VerifyManager(header)
		if err != nil {
			a.deny(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ManagerContextKey, managerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
