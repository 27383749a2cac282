package middleware

import (
	"context"
	"net/http"

	"yu-marketplace-backend/model"
	"yu-marketplace-backend/pkg/auth"
)

type contextKey string

const userKey contextKey = "currentUser"

// UserFinder is the slice of the user repository needed to resolve a
// session back to an account.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticator resolves the session cookie once per request and
// injects the current user into the request context. Core operations
// then take the user explicitly instead of reading ambient state.
type Authenticator struct {
	manager *auth.Manager
	users   UserFinder
}

func NewAuthenticator(manager *auth.Manager, users UserFinder) *Authenticator {
	return &Authenticator{manager: manager, users: users}
}

func (a *Authenticator) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err != nil {
			writeUnauthorized(w, "please log in")
			return
		}
		claims, err := a.manager.VerifyToken(cookie.Value)
		if err != nil {
			writeUnauthorized(w, "session expired or invalid")
			return
		}
		user, err := a.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"internal server error"}`))
			return
		}
		if user == nil {
			writeUnauthorized(w, "session expired or invalid")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// CurrentUser returns the authenticated user set by RequireUser, or
// nil on an unauthenticated request.
func CurrentUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
