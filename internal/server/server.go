package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port         uint16
	ReadTimeout  int64
	WriteTimeout int64
}

type Server struct {
	server *http.Server
	logger *logrus.Logger

	doneFromInsideChan chan struct{}
}

func New(router *mux.Router, cfg Config, logger *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.Port),
			Handler:        router,
			ReadTimeout:    time.Duration(cfg.ReadTimeout * int64(time.Second)),
			WriteTimeout:   time.Duration(cfg.WriteTimeout * int64(time.Second)),
			MaxHeaderBytes: 1 << 20,
		},
		logger:             logger,
		doneFromInsideChan: make(chan struct{}),
	}
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info("received stop signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Error("error during shutdown")
		}
		close(s.doneFromInsideChan)
	}()

	s.logger.WithField("addr", s.server.Addr).Info("http server starting")
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		s.logger.WithError(err).Error("http server error")
		return err
	}

	<-s.doneFromInsideChan
	return nil
}
