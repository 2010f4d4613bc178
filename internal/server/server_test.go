package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chatapi/internal/entity"
	"chatapi/internal/handler"
	"chatapi/internal/repository"
	"chatapi/internal/service"
	"chatapi/internal/token"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testMediaBase = "http://localhost:8000/media"

type stack struct {
	router *mux.Router

	userRepo    repository.UserRepository
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
}

func newTestStack(t *testing.T) *stack {
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
	store := sessions.NewCookieStore([]byte("test-session-key"))

	authService := service.NewAuthService(userRepo, tokens, logger)
	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(chatRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, chatRepo)

	handlers := Handlers{
		Auth:    handler.NewAuthHandler(authService, store, logger),
		User:    handler.NewUserHandler(userService, handler.OwnerOnly, testMediaBase),
		Chat:    handler.NewChatHandler(chatService, handler.AnyAuthenticated, testMediaBase),
		Message: handler.NewMessageHandler(messageService, handler.AnyAuthenticated),
	}

	return &stack{
		router:      NewRouter(handlers, tokens, userRepo, store),
		userRepo:    userRepo,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
	}
}

// do performs a request against the router; body is marshalled to JSON,
// bearer (when non-empty) goes into the Authorization header.
func (s *stack) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// register creates a user through the registration endpoint and returns its
// uuid together with the issued credential pair.
func (s *stack) register(t *testing.T, email string) (string, token.Pair) {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/register", map[string]string{
		"email":      email,
		"password":   "p",
		"first_name": "A",
		"last_name":  "B",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var pair token.Pair
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pair))

	user, err := s.userRepo.GetForLogin(email)
	require.NoError(t, err)
	return user.UUID, pair
}

// newRequestWithCookies builds a request carrying the cookies a previous
// response set, so session-based flows can be exercised end to end.
func newRequestWithCookies(t *testing.T, method, path string, prev *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, cookie := range prev.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func serve(s *stack, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
