package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyvane/internal/auth"
	"skyvane/internal/config"
	"skyvane/internal/db"
	"skyvane/internal/httpserver"
	"skyvane/internal/logging"
)

func main() {
	ctx := context.Background()
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dbConn, err := db.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userStore := auth.NewStore(dbConn)
	if cfg.UsersPath != "" {
		if err := userStore.SeedFromFile(ctx, cfg.UsersPath); err != nil {
			log.Fatalf("seed users: %v", err)
		}
	}

	codec := auth.NewTokenCodec(cfg.JWTSecret)
	authSvc := auth.NewService(userStore, codec)

	handler := httpserver.NewRouter(logger, authSvc, codec, userStore, cfg.NewsAPIKey)
	server := httpserver.New(cfg.HTTPAddr, handler, logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
