package server

import (
	"net/http"

	"chatapi/internal/handler"
	"chatapi/internal/middleware"
	"chatapi/internal/repository"
	"chatapi/internal/token"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Chat    *handler.ChatHandler
	Message *handler.MessageHandler
}

// NewRouter wires the full route table. Everything except registration-style
// creation and the auth endpoints sits behind the auth middleware.
func NewRouter(h Handlers, tokens *token.Manager, users repository.UserRepository, store *sessions.CookieStore) *mux.Router {
	auth := func(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
		return middleware.Auth(tokens, users, store, next)
	}

	r := mux.NewRouter()

	// Session and token lifecycle
	r.HandleFunc("/register", h.Auth.Register).Methods("POST")
	r.HandleFunc("/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	r.HandleFunc("/obtain", h.Auth.Obtain).Methods("POST")

	// Users. The extra collection routes must come before {uuid}.
	r.HandleFunc("/users", h.User.Create).Methods("POST")
	r.HandleFunc("/users", auth(h.User.List)).Methods("GET")
	r.HandleFunc("/users/current", auth(h.User.Current)).Methods("GET")
	r.HandleFunc("/users/search", auth(h.User.Search)).Methods("GET")
	r.HandleFunc("/users/active", auth(h.User.Active)).Methods("GET")
	r.HandleFunc("/users/{uuid}", auth(h.User.Retrieve)).Methods("GET")
	r.HandleFunc("/users/{uuid}", auth(h.User.Update)).Methods("PATCH", "PUT")
	r.HandleFunc("/users/{uuid}", auth(h.User.Delete)).Methods("DELETE")

	// Chats
	r.HandleFunc("/chats", auth(h.Chat.List)).Methods("GET")
	r.HandleFunc("/chats", auth(h.Chat.Create)).Methods("POST")
	r.HandleFunc("/chats/{uuid}", auth(h.Chat.Retrieve)).Methods("GET")
	r.HandleFunc("/chats/{uuid}", auth(h.Chat.Update)).Methods("PATCH", "PUT")
	r.HandleFunc("/chats/{uuid}", auth(h.Chat.Delete)).Methods("DELETE")
	r.HandleFunc("/chats/{uuid}/add_members", auth(h.Chat.AddMembers)).Methods("PATCH")

	// Messages
	r.HandleFunc("/messages", auth(h.Message.List)).Methods("GET")
	r.HandleFunc("/messages", auth(h.Message.Create)).Methods("POST")
	r.HandleFunc("/messages/unread", auth(h.Message.Unread)).Methods("GET")
	r.HandleFunc("/messages/{uuid}", auth(h.Message.Retrieve)).Methods("GET")
	r.HandleFunc("/messages/{uuid}", auth(h.Message.Update)).Methods("PATCH", "PUT")
	r.HandleFunc("/messages/{uuid}", auth(h.Message.Delete)).Methods("DELETE")

	return r
}
