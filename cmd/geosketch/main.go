package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geosketch/internal/annotate"
	"geosketch/internal/config"
	"geosketch/internal/geom"
	"geosketch/internal/logging"
	"geosketch/internal/store"
	"geosketch/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit code so deferred cleanup happens before the process
// exits.
func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Print(err)
		return 1
	}

	// the terminal belongs to the TUI, so logs go to a file
	var w io.Writer = io.Discard
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			log.Print(err)
			return 1
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Print(err)
			return 1
		}
		defer f.Close()
		w = f
	}
	logger := logging.Setup(w, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logging.NewContextWithLogger(ctx, logger)

	backend, closeBackend, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "err", err.Error())
		log.Print(err)
		return 1
	}
	defer closeBackend()
	st := store.New(backend, cfg.Storage.Key)
	logger.Info("storage ready", "backend", cfg.Storage.Backend, "key", st.Key())

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "addr", cfg.Metrics.Addr, "err", err.Error())
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	svc := annotate.New(st)
	opts := tui.Options{
		Center: geom.LatLng{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng},
		Span:   cfg.Map.Span,
	}

	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(ctx, svc, opts, args[0])
	} else {
		m = tui.New(ctx, svc, opts)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error("program exited", "err", err.Error())
		log.Print(err)
		return 1
	}
	return 0
}
