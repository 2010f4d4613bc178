package handler

import (
	"errors"
	"net/http"

	"chatapi/internal/middleware"
	"chatapi/internal/service"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore
	logger      *logrus.Logger
}

func NewAuthHandler(authService service.AuthService, cookieStore *sessions.CookieStore, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieStore: cookieStore,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !validateRequest(w, request) {
		return
	}

	_, pair, err := h.authService.Register(request.Email, request.Password, request.FirstName, request.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondFieldErrors(w, map[string][]string{
				"email": {"user with this email already exists."},
			})
			return
		}
		h.logger.WithError(err).Error("registration failed")
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondJSON(w, http.StatusCreated, pair)
}

// Login issues the token pair and additionally drops a server-side session
// marker. Bearer tokens issued here stay valid past logout.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request credentialsRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !validateRequest(w, request) {
		return
	}

	user, pair, err := h.authService.Login(request.Email, request.Password)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values["user_uuid"] = user.UUID
	if err := session.Save(r, w); err != nil {
		h.logger.WithError(err).Error("could not persist session")
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.logger.WithError(err).Error("could not clear session")
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondDetail(w, http.StatusOK, "Logged out successfully.")
}

// Obtain is the token-only flow: same credential check as Login, no session.
func (h *AuthHandler) Obtain(w http.ResponseWriter, r *http.Request) {
	var request credentialsRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !validateRequest(w, request) {
		return
	}

	_, pair, err := h.authService.Login(request.Email, request.Password)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid credentials"})
		return
	}

	respondJSON(w, http.StatusOK, pair)
}
