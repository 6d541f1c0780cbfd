package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gopherblog/internal/bootstrap"
	"gopherblog/internal/config"
	"gopherblog/internal/platform/logger"
	httptransport "gopherblog/internal/transport/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	l, err := logger.New(cfg.IsDebug(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}

	app, err := bootstrap.New(ctx, cfg, l)
	if err != nil {
		l.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close resources failed: %v", err)
		}
	}()

	router, err := httptransport.NewRouter(app)
	if err != nil {
		l.Fatal("build router failed", zap.Error(err))
	}
	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		l.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(server, l)
}

func waitForShutdown(server *http.Server, l *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error("server shutdown failed", zap.Error(err))
	}
	l.Info("server stopped")
}
