package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"reel_engine/internal/config"

	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run поднимает HTTP сервер и ждёт SIGINT/SIGTERM
func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sp := s.ServiceProvider
	logger := sp.Logger()
	defer func() { _ = logger.Sync() }()

	journal := sp.JournalService(ctx)
	// запись журнала не должна обрываться вместе с ctx сигнала
	journal.Start(context.WithoutCancel(ctx))

	srv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           sp.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	// закрытие контроллера завершает потоки /reel/events
	srv.RegisterOnShutdown(sp.Controller(ctx).Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), sp.HTTPCfg().ShutdownTimeout())
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
		if err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
	}

	sp.Controller(ctx).Close()
	journal.Stop()
	if dbc := sp.DBClient(ctx); dbc != nil {
		dbc.Close()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
