package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatapi/internal"
	"chatapi/internal/entity"
	"chatapi/internal/handler"
	"chatapi/internal/repository"
	"chatapi/internal/server"
	"chatapi/internal/service"
	"chatapi/internal/token"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg := internal.LoadConfig()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBName+"?_fk=1"), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("could not open database")
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.UserSecret{},
		&entity.Chat{},
		&entity.Message{},
	); err != nil {
		logger.WithError(err).Fatal("could not migrate schema")
	}

	userRepo := repository.NewSQLiteUserRepository(db)
	chatRepo := repository.NewSQLiteChatRepository(db)
	messageRepo := repository.NewSQLiteMessageRepository(db)

	tokens := token.NewManager(
		cfg.SecretKey,
		time.Duration(cfg.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour,
	)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionKey))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}

	authService := service.NewAuthService(userRepo, tokens, logger)
	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(chatRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, chatRepo)

	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authService, cookieStore, logger),
		User:    handler.NewUserHandler(userService, handler.OwnerOnly, cfg.MediaBaseURL),
		Chat:    handler.NewChatHandler(chatService, handler.AnyAuthenticated, cfg.MediaBaseURL),
		Message: handler.NewMessageHandler(messageService, handler.AnyAuthenticated),
	}

	router := server.NewRouter(handlers, tokens, userRepo, cookieStore)
	srv := server.New(router, server.Config{
		Port:         cfg.HTTPServerPort,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
