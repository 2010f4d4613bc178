package service

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"chatapi/internal/entity"
	"chatapi/internal/repository"
	"chatapi/internal/token"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	auth     AuthService
	users    UserService
	chats    ChatService
	messages MessageService

	userRepo repository.UserRepository
	chatRepo repository.ChatRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.UserSecret{},
		&entity.Chat{},
		&entity.Message{},
	))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := repository.NewSQLiteUserRepository(db)
	chatRepo := repository.NewSQLiteChatRepository(db)
	messageRepo := repository.NewSQLiteMessageRepository(db)
	tokens := token.NewManager("test-secret", 5*time.Minute, time.Hour)

	return &testEnv{
		auth:     NewAuthService(userRepo, tokens, logger),
		users:    NewUserService(userRepo),
		chats:    NewChatService(chatRepo, userRepo),
		messages: NewMessageService(messageRepo, chatRepo),
		userRepo: userRepo,
		chatRepo: chatRepo,
	}
}

func (env *testEnv) makeUser(t *testing.T, email string) *entity.User {
	t.Helper()
	user, err := env.users.Create(email, "password", "First", "Last")
	require.NoError(t, err)
	return user
}
