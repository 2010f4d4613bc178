package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatapi/internal/middleware"
	"chatapi/internal/service"

	"github.com/gorilla/mux"
)

type createChatRequest struct {
	Title     string   `json:"title" validate:"required"`
	IsPrivate *bool    `json:"is_private"`
	Members   []string `json:"members" validate:"required"`
}

type updateChatRequest struct {
	Title     *string  `json:"title"`
	IsPrivate *bool    `json:"is_private"`
	Avatar    *string  `json:"avatar"`
	Members   []string `json:"members"`
}

// addMembersRequest accepts either a list of ids or a single scalar id,
// normalized to a one-element list.
type addMembersRequest struct {
	Members json.RawMessage `json:"members"`
}

func (req *addMembersRequest) memberList() ([]string, bool) {
	if len(req.Members) == 0 {
		return nil, false
	}
	var many []string
	if err := json.Unmarshal(req.Members, &many); err == nil {
		return many, len(many) > 0
	}
	var one string
	if err := json.Unmarshal(req.Members, &one); err == nil && one != "" {
		return []string{one}, true
	}
	return nil, false
}

type ChatHandler struct {
	chatService service.ChatService
	mutate      Permission
	mediaBase   string
}

// NewChatHandler builds the chat collection handler. The mutate rule gates
// every write; the stock policy is AnyAuthenticated.
func NewChatHandler(chatService service.ChatService, mutate Permission, mediaBase string) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		mutate:      mutate,
		mediaBase:   mediaBase,
	}
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.List()
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, newChatViews(chats, h.mediaBase))
}

func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	var request createChatRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !validateRequest(w, request) {
		return
	}

	chat, err := h.chatService.Create(request.Title, request.IsPrivate, principal.UUID, request.Members)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newChatView(chat, h.mediaBase))
}

func (h *ChatHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	chat, err := h.chatService.GetByUUID(mux.Vars(r)["uuid"])
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusOK, newChatView(chat, h.mediaBase))
}

func (h *ChatHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	var request updateChatRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	chat, err := h.chatService.Update(mux.Vars(r)["uuid"], service.ChatUpdate{
		Title:     request.Title,
		IsPrivate: request.IsPrivate,
		Avatar:    request.Avatar,
		Members:   request.Members,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newChatView(chat, h.mediaBase))
}

func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	if err := h.chatService.Delete(mux.Vars(r)["uuid"]); err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AddMembers attaches users to the chat's member set. A missing or malformed
// members payload is a validation error, distinct from an unresolvable chat
// or user id, which is not-found. Zero net-new members is still a success.
func (h *ChatHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	if !h.mutate(principal, r) {
		respondForbidden(w)
		return
	}

	var request addMembersRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDetail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	members, ok := request.memberList()
	if !ok {
		respondFieldErrors(w, map[string][]string{
			"members": {"This field is required."},
		})
		return
	}

	if err := h.chatService.AddMembers(mux.Vars(r)["uuid"], members); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownChat), errors.Is(err, service.ErrUnknownMember):
			respondDetail(w, http.StatusNotFound, "Not found.")
		default:
			respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"flag": "ok"})
}

func (h *ChatHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotEnoughMembers):
		respondFieldErrors(w, map[string][]string{
			"members": {"Chat should have at least two members"},
		})
	case errors.Is(err, service.ErrUnknownMember):
		respondFieldErrors(w, map[string][]string{
			"members": {"One or more members do not exist."},
		})
	case errors.Is(err, service.ErrNotFound):
		respondDetail(w, http.StatusNotFound, "Not found.")
	default:
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}
