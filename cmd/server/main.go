package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/gjrich/cintel-04-local/internal/config"
	"github.com/gjrich/cintel-04-local/internal/dashboard"
	"github.com/gjrich/cintel-04-local/internal/dataset"
	"github.com/gjrich/cintel-04-local/internal/db"
	"github.com/gjrich/cintel-04-local/internal/domain"
	"github.com/gjrich/cintel-04-local/internal/middleware"
	"github.com/gjrich/cintel-04-local/internal/render"
	"github.com/gjrich/cintel-04-local/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	data, cleanup, err := loadDataset(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	defer cleanup()
	log.Printf("[dataset] loaded %d records from %s source", data.Len(), cfg.Dataset.Source)

	// The dataset handle is owned here and passed by reference; the
	// filter engine and renderers never reach for ambient state.
	dash := dashboard.New(data,
		dashboard.WithSelection(domain.DefaultSelection()),
		dashboard.WithDisplay(domain.DefaultDisplay()),
		dashboard.WithRenderers(render.DefaultRenderers()...),
	)
	if _, err := dash.Refresh(ctx); err != nil {
		log.Fatalf("Failed to render initial dashboard: %v", err)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	mux := http.NewServeMux()
	server.New(dash).Routes(mux)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler.Handler(middleware.LoggingMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting penguin explorer on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// loadDataset builds the configured provider and materializes the
// dataset once. The returned cleanup closes any provider resources.
func loadDataset(ctx context.Context, cfg config.Config) (domain.Dataset, func(), error) {
	switch cfg.Dataset.Source {
	case "file":
		provider := dataset.NewFileProvider(cfg.Dataset.Path)
		data, err := provider.Load(ctx)
		return data, func() {}, err
	case "postgres":
		if err := db.RunMigrations(cfg.Database); err != nil {
			return domain.Dataset{}, func() {}, err
		}
		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			return domain.Dataset{}, func() {}, err
		}
		provider := dataset.NewPostgresProvider(conn.Pool)
		data, err := provider.Load(ctx)
		if err != nil {
			conn.Close()
			return domain.Dataset{}, func() {}, err
		}
		// The pool stays open only long enough to load; the dashboard
		// itself is purely in-memory.
		conn.Close()
		return data, func() {}, nil
	default:
		return domain.Dataset{}, func() {}, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}
