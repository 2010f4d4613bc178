package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"chatapi/internal/entity"
	"chatapi/internal/repository"
	"chatapi/internal/token"

	"github.com/gorilla/sessions"
)

const SessionName = "auth-session"

type contextKey string

const principalKey contextKey = "principal"

// Principal returns the authenticated user attached to the request context
// by the auth middleware.
func Principal(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(principalKey).(*entity.User)
	return user, ok
}

// Auth gates a handler behind authentication. A bearer access token is
// checked first; failing that, the server-side session marker set at login.
// Either way the resolved user ends up in the request context.
func Auth(tokens *token.Manager, users repository.UserRepository, store *sessions.CookieStore, next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		uuid, ok := bearerSubject(tokens, r)
		if !ok {
			uuid, ok = sessionSubject(store, r)
		}
		if !ok {
			unauthenticated(w)
			return
		}

		user, err := users.GetByUUID(uuid)
		if err != nil {
			unauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, user)
		next(w, r.WithContext(ctx))
	}
}

func bearerSubject(tokens *token.Manager, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	uuid, err := tokens.ParseAccess(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return "", false
	}
	return uuid, true
}

func sessionSubject(store *sessions.CookieStore, r *http.Request) (string, bool) {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return "", false
	}
	uuid, ok := session.Values["user_uuid"].(string)
	return uuid, ok && uuid != ""
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"detail": "Authentication credentials were not provided.",
	})
}
