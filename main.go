package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polypaint/internal/board"
	"polypaint/internal/config"
	"polypaint/internal/handlers"
	"polypaint/internal/message"
	"polypaint/internal/middleware"
	"polypaint/internal/tool"
	"polypaint/internal/transport"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	cleanupInterval = 15 * time.Minute
	connectionEvery = time.Second
	connectionBurst = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error: Loading config - %v", err)
	}

	palette, err := loadPalette(cfg.PaletteFile)
	if err != nil {
		log.Fatalf("Error: Loading palette - %v", err)
	}

	manager := board.NewManager(board.Options{
		Width:       cfg.CanvasWidth,
		Height:      cfg.CanvasHeight,
		MaxBoards:   cfg.MaxBoards,
		IdleTimeout: cfg.BoardIdleTimeout,
		Palette:     palette,
	})
	validator := message.NewValidator()
	ipLimiter := middleware.NewIPRateLimit(connectionEvery, connectionBurst)
	srv := transport.NewServer(
		manager,
		handlers.NewMessageRouter(validator),
		validator,
		ipLimiter,
		middleware.NewLimits(cfg.MaxMessageSize, cfg.MessagesPerSecond, cfg.BurstSize),
		cfg.Domains,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanup(ctx, manager, ipLimiter)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Drawing server started on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error: Server shutdown - %v", err)
	}
}

// newRouter: HTTP routes for the drawing server
func newRouter(srv *transport.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get("/ws", srv.HandleWebSocket)
	r.Get("/boards/{id}/snapshot.png", srv.HandleSnapshot)

	return r
}

// loadPalette: the palette file when configured, the built-in one otherwise
func loadPalette(path string) (tool.Palette, error) {
	if path == "" {
		return tool.DefaultPalette(), nil
	}
	return tool.LoadPalette(path)
}

// cleanup: Routine to drop idle boards and forgotten addresses
func cleanup(ctx context.Context, manager *board.Manager, ipLimiter *middleware.IPRateLimit) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := manager.Cleanup(); n > 0 {
				log.Printf("Removed %d idle boards", n)
			}
			ipLimiter.Cleanup(cleanupInterval)
		}
	}
}
