package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fcajbot/app/server"
	"fcajbot/config"
	"fcajbot/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	assistant := service.New(cfg)
	// Fail at startup, not on the first question: a missing API key or
	// a missing index means the operator has to act (run the ingest
	// command) before this process can serve anything.
	if err := assistant.Init(context.Background()); err != nil {
		slog.Error("assistant startup failed", "error", err)
		os.Exit(1)
	}
	defer assistant.Close()

	s := server.New(cfg, assistant)
	go func() {
		if err := s.Run(); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	<-sigch
	slog.Info("received shutdown signal")
	if err := s.Shutdown(); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
