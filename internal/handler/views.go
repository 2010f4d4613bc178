package handler

import (
	"strings"
	"time"

	"chatapi/internal/entity"
)

// The view structs shape entities for transport: the password never appears,
// avatars resolve to absolute media URLs, members collapse to an id list.

type userView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsActive   bool      `json:"is_active"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
	Avatar     *string   `json:"avatar"`
}

type chatView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	IsPrivate bool      `json:"is_private"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	Admin     *string   `json:"admin"`
	Members   []string  `json:"members"`
}

func newUserView(u *entity.User, mediaBase string) userView {
	return userView{
		ID:         u.UUID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
		Avatar:     mediaURL(mediaBase, u.Avatar),
	}
}

func newUserViews(users []*entity.User, mediaBase string) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u, mediaBase))
	}
	return views
}

func newChatView(c *entity.Chat, mediaBase string) chatView {
	members := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, m.UUID)
	}
	return chatView{
		ID:        c.UUID,
		Title:     c.Title,
		IsPrivate: c.IsPrivate,
		Avatar:    mediaURL(mediaBase, c.Avatar),
		CreatedAt: c.CreatedAt,
		Admin:     c.AdminUUID,
		Members:   members,
	}
}

func newChatViews(chats []*entity.Chat, mediaBase string) []chatView {
	views := make([]chatView, 0, len(chats))
	for _, c := range chats {
		views = append(views, newChatView(c, mediaBase))
	}
	return views
}

func mediaURL(base, path string) *string {
	if path == "" {
		return nil
	}
	url := strings.TrimSuffix(base, "/") + "/" + path
	return &url
}
