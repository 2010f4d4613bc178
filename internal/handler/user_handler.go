package handler

import (
	"errors"
	"net/http"

	"chatapi/internal/middleware"
	"chatapi/internal/service"

	"github.com/gorilla/mux"
)

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
	Avatar    *string `json:"avatar"`
}

type UserHandler struct {
	userService service.UserService
	instance    Permission
	mediaBase   string
}

// NewUserHandler builds the user collection handler. The instance rule gates
// retrieve/update/delete on single users; the stock policy is OwnerOnly.
func NewUserHandler(userService service.UserService, instance Permission, mediaBase string) *UserHandler {
	return &UserHandler{
		userService: userService,
		instance:    instance,
		mediaBase:   mediaBase,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List()
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, newUserViews(users, h.mediaBase))
}

// Create is the open user-creation path: it doubles as registration without
// token issuance, so it sits outside the auth middleware.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createUserRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !validateRequest(w, request) {
		return
	}

	user, err := h.userService.Create(request.Email, request.Password, request.FirstName, request.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondFieldErrors(w, map[string][]string{
				"email": {"user with this email already exists."},
			})
			return
		}
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusCreated, newUserView(user, h.mediaBase))
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	respondJSON(w, http.StatusOK, newUserView(principal, h.mediaBase))
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	users, err := h.userService.Search(query)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "No query parameter provided"})
			return
		}
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, newUserViews(users, h.mediaBase))
}

func (h *UserHandler) Active(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListActive()
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, newUserViews(users, h.mediaBase))
}

func (h *UserHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.instance(principal, r) {
		respondForbidden(w)
		return
	}

	user, err := h.userService.GetByUUID(mux.Vars(r)["uuid"])
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusOK, newUserView(user, h.mediaBase))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.instance(principal, r) {
		respondForbidden(w)
		return
	}

	var request updateUserRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	user, err := h.userService.Update(mux.Vars(r)["uuid"], service.UserUpdate{
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		IsActive:  request.IsActive,
		Avatar:    request.Avatar,
		Password:  request.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondDetail(w, http.StatusNotFound, "Not found.")
		case errors.Is(err, service.ErrEmailTaken):
			respondFieldErrors(w, map[string][]string{
				"email": {"user with this email already exists."},
			})
		default:
			respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}
	respondJSON(w, http.StatusOK, newUserView(user, h.mediaBase))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.instance(principal, r) {
		respondForbidden(w)
		return
	}

	if err := h.userService.Delete(mux.Vars(r)["uuid"]); err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
