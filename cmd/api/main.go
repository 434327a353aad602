package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hanibassam/hanibot/backend/internal/config"
	"github.com/hanibassam/hanibot/backend/internal/handler"
	"github.com/hanibassam/hanibot/backend/internal/service/ai"
	"github.com/hanibassam/hanibot/backend/internal/service/chat"
	"github.com/hanibassam/hanibot/backend/internal/service/reply"
	"github.com/hanibassam/hanibot/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	messageStore := store.New(cfg.Chat.DataFile)
	unansweredLog := store.NewUnansweredLog(cfg.Chat.UnansweredLog)
	responder := reply.NewWithSource(
		reply.DefaultRules(),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		time.Now,
	)

	// Initialize the external reply collaborator when credentials exist.
	var generator chat.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the ARK_* environment variables")
		} else {
			log.Println("AI service initialized successfully")
			generator = aiService
		}
	} else {
		log.Println("ark credentials not configured, unmatched questions get the canned reply")
	}

	chatService, err := chat.NewService(cfg.Chat, messageStore, unansweredLog, responder, generator)
	if err != nil {
		log.Fatalf("failed to initialize chat service: %v", err)
	}

	router := handler.NewRouter(chatService, cfg.Server.AllowedOrigins)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Hanibot backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
