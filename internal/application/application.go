package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/archive"
	"github.com/Tusshar172004/Code-Pod/internal/compile"
	"github.com/Tusshar172004/Code-Pod/internal/config"
	"github.com/Tusshar172004/Code-Pod/internal/database"
	"github.com/Tusshar172004/Code-Pod/internal/handler"
	"github.com/Tusshar172004/Code-Pod/internal/router"
	"github.com/Tusshar172004/Code-Pod/internal/service"
)

// API is the HTTP + WebSocket API application.
type API struct {
	cfg      *config.Config
	srv      *http.Server
	hub      *service.RoomHub
	archiver *archive.Archiver
}

// NewAPI creates the API application: validates config, optionally opens the
// snapshot archive, builds the hub and router.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, _ := zap.NewProduction()
	if cfg.AppEnv == "development" {
		logger, _ = zap.NewDevelopment()
	}

	hub := service.NewRoomHub(cfg.WSReadBufferSize, cfg.WSWriteBufferSize, cfg.WSMaxMessageSize, logger)

	var archiver *archive.Archiver
	var store *archive.Store
	if cfg.EnableSnapshotArchive {
		if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
			log.Printf("warning: migrate failed (snapshot archive disabled): %v", err)
		} else if db, err := database.Open(cfg.DSN()); err != nil {
			log.Printf("warning: database open failed (snapshot archive disabled): %v", err)
		} else {
			archiver = archive.New(db, logger)
			store = archive.NewStore(db)
			hub.SetArchiver(archiver)
		}
	}

	runner := compile.NewClient(cfg.CompileAPIURL, cfg.CompileClientID, cfg.CompileClientSecret, cfg.CompileTimeout, logger)

	roomHandler := handler.NewRoomHandler(hub, store, cfg.WSBaseURL)
	compileHandler := handler.NewCompileHandler(runner, logger)
	roomWS := handler.NewRoomWSHandler(hub, logger)
	health := handler.NewHealthHandler()

	r := router.New(roomHandler, compileHandler, roomWS, health)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, hub: hub, archiver: archiver}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled; then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	addr := a.srv.Addr
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", addr)
	log.Printf("  Health:     %s/health", base)
	log.Printf("  Compile:    POST %s/compile", base)
	log.Printf("  Rooms:      %s/rooms", base)
	log.Printf("  WebSocket:  ws://%s:%s/ws", host, a.cfg.HTTPPort)

	// App context reaches the hub so archive writes stop on shutdown.
	a.hub.SetContext(ctx)

	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	// Stop the HTTP server before the archiver so in-flight handlers drain
	// first; the archiver itself also drops enqueues after Close.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.srv.Shutdown(shutdownCtx)
	if a.archiver != nil {
		_ = a.archiver.Close()
	}
	if err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
