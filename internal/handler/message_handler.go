package handler

import (
	"errors"
	"net/http"

	"chatapi/internal/middleware"
	"chatapi/internal/service"

	"github.com/gorilla/mux"
)

type createMessageRequest struct {
	Text string `json:"text" validate:"required"`
	Chat string `json:"chat" validate:"required"`
}

type updateMessageRequest struct {
	Text   *string `json:"text"`
	IsRead *bool   `json:"is_read"`
}

type MessageHandler struct {
	messageService service.MessageService
	mutate         Permission
}

func NewMessageHandler(messageService service.MessageService, mutate Permission) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		mutate:         mutate,
	}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.List()
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	var request createMessageRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !validateRequest(w, request) {
		return
	}

	message, err := h.messageService.Create(request.Text, request.Chat, principal.UUID)
	if err != nil {
		// An unresolvable chat id on creation is a validation failure of
		// the chat field, not a missing-resource error.
		if errors.Is(err, service.ErrUnknownChat) {
			respondFieldErrors(w, map[string][]string{
				"chat": {"Chat does not exist."},
			})
			return
		}
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

// Unread lists the unread messages of every chat the principal belongs to,
// newest first.
func (h *MessageHandler) Unread(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	messages, err := h.messageService.Unread(principal.UUID)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	message, err := h.messageService.GetByUUID(mux.Vars(r)["uuid"])
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	var request updateMessageRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	message, err := h.messageService.Update(mux.Vars(r)["uuid"], service.MessageUpdate{
		Text:   request.Text,
		IsRead: request.IsRead,
	})
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	if err := h.messageService.Delete(mux.Vars(r)["uuid"]); err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
