package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrylevesque/nfcnav/internal/api"
	"github.com/harrylevesque/nfcnav/internal/config"
	"github.com/harrylevesque/nfcnav/internal/nav"
	"github.com/harrylevesque/nfcnav/internal/scanlog"
	"github.com/harrylevesque/nfcnav/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Config file (YAML or JSON)")
	addr := flag.String("addr", "", "Override listen address")
	basePath := flag.String("base", "", "Override base path (e.g. /app)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *basePath != "" {
		cfg.BasePath = *basePath
	}

	level, err := utils.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := utils.OpenLogFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	log := utils.NewLogger(out, level)
	slog.SetDefault(log)

	scans, err := scanlog.NewStore(cfg.ScanLogFile, cfg.ScanLogCapacity)
	if err != nil {
		return err
	}

	routes := nav.NewRoutes(cfg.BasePath)
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.NewRouter(api.Deps{
			Navigator: nav.NewNavigator(routes),
			Scans:     scans,
			Log:       log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr, "base", routes.BasePath(), "detail", routes.Template())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
