package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/drawshapes/drawshapes/internal/asset"
	"github.com/drawshapes/drawshapes/internal/auth"
	"github.com/drawshapes/drawshapes/internal/config"
	"github.com/drawshapes/drawshapes/internal/discovery"
	"github.com/drawshapes/drawshapes/internal/export"
	mw "github.com/drawshapes/drawshapes/internal/middleware"
	"github.com/drawshapes/drawshapes/internal/session"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	hub := session.NewHub(cfg.Style(), cfg.EngineOptions()...)
	go hub.Run()
	sessionHandler := session.NewHandler(hub, authService, cfg.Origins())

	store := asset.NewStore(cfg.AssetDir)
	assetHandler := asset.NewHandler(store, hub)
	exportHandler := export.NewHandler(hub, store)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Creating a canvas is public and returns the token for it
	r.HandleFunc("/canvases", sessionHandler.Create).Methods("POST", "OPTIONS")

	// Stored assets are immutable and public
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Routes that need the canvas token. Preflights are answered by CORS
	// before the token check.
	canvas := r.PathPrefix("/canvases/{canvasId}").Subrouter()
	canvas.Use(authService.CanvasMiddleware)

	canvas.HandleFunc("", sessionHandler.Get).Methods("GET", "OPTIONS")
	canvas.HandleFunc("", sessionHandler.Delete).Methods("DELETE", "OPTIONS")
	canvas.HandleFunc("/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")
	canvas.HandleFunc("/background", assetHandler.UploadBackground).Methods("POST", "OPTIONS")
	canvas.HandleFunc("/export.png", exportHandler.ExportPNG).Methods("GET", "OPTIONS")
	canvas.HandleFunc("/export.pdf", exportHandler.ExportPDF).Methods("GET", "OPTIONS")

	// WebSocket endpoint
	r.Handle("/ws/canvas/{canvasId}", authService.CanvasMiddleware(http.HandlerFunc(sessionHandler.ServeWS)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.MDNSEnabled {
		mdnsServer, err := discovery.Advertise("", cfg.Port)
		if err != nil {
			slog.Warn("mdns advertise", "error", err)
		} else {
			slog.Info("advertising on mdns", "service", discovery.ServiceType)
			defer mdnsServer.Shutdown()
		}
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close live sessions before draining HTTP
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
