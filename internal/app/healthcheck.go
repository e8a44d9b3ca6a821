package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
)

// buildStatus tracks the outcome of the latest watch-mode build.
type buildStatus struct {
	mu        sync.Mutex
	builds    int
	lastBuild time.Time
	lastError string
	files     []string
}

type statusResponse struct {
	Builds    int       `json:"builds"`
	OK        bool      `json:"ok"`
	LastBuild time.Time `json:"lastBuild,omitzero"`
	LastError string    `json:"lastError,omitempty"`
	Files     []string  `json:"files"`
}

func (s *buildStatus) record(r *Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds++
	s.lastBuild = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return
	}
	s.lastError = ""
	s.files = s.files[:0]
	for _, f := range r.Files {
		s.files = append(s.files, f.Path)
	}
}

func (s *buildStatus) snapshot() statusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusResponse{
		Builds:    s.builds,
		OK:        s.builds > 0 && s.lastError == "",
		LastBuild: s.lastBuild,
		LastError: s.lastError,
		Files:     append([]string{}, s.files...),
	}
}

// healthHandler answers liveness checks.
func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler reports the latest build. It answers 503 while the latest
// build is failing.
func (app *App) statusHandler(w http.ResponseWriter, _ *http.Request) {
	snap := app.status.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if snap.Builds > 0 && !snap.OK {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		ctxlog.FromContext(app.ctx).Warn("Failed to encode status.", "error", err)
	}
}

func (app *App) healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", app.healthHandler)
	mux.HandleFunc("/status", app.statusHandler)
	return mux
}

// healthCheckServer initializes and runs the health check HTTP server.
func (app *App) healthCheckServer() {
	logger := ctxlog.FromContext(app.ctx)
	if app.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", app.config.HealthcheckPort)
	app.httpServer = &http.Server{
		Addr:              addr,
		Handler:           app.healthMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (app *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(app.ctx)
	if app.httpServer == nil {
		return nil
	}

	// app.ctx is already cancelled when watching stops.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(app.ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := app.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	return nil
}
