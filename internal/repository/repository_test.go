package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"chatapi/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test, shared across the pool's connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.UserSecret{},
		&entity.Chat{},
		&entity.Message{},
	))
	return db
}

func makeUser(t *testing.T, repo UserRepository, email string) *entity.User {
	t.Helper()

	id := uuid.New().String()
	user := &entity.User{
		UUID:       id,
		Email:      email,
		IsActive:   true,
		DateJoined: time.Now(),
		Avatar:     entity.DefaultAvatar,
		Secret:     entity.UserSecret{UserUUID: id, Hash: "not-a-real-hash"},
	}
	require.NoError(t, repo.Create(user))
	return user
}

func makeChat(t *testing.T, repo ChatRepository, title string, members ...string) *entity.Chat {
	t.Helper()

	chat := &entity.Chat{
		UUID:      uuid.New().String(),
		Title:     title,
		IsPrivate: true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(chat, members))
	return chat
}
