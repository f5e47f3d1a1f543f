package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/doctext"
	"github.com/Gee9999/Air-Ship/internal/ingest"
	"github.com/Gee9999/Air-Ship/internal/pipeline"
	"github.com/Gee9999/Air-Ship/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time and level attributes, keep message and other variables
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(common.ExitCode(err))
	}

	addr := cfg.Server.HTTPAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := doctext.NewExtractor(doctext.Config{
		Pdftotext: cfg.Extract.PdftotextBin,
		Timeout:   cfg.Extract.Timeout,
	}, logger)
	proc := pipeline.NewProcessor(extractor, cfg.Match, logger)
	stager := ingest.NewStager(cfg.Server.UploadDir, logger)
	srv := server.NewServer(cfg.Server, proc, stager, logger)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	logger.Info("airshipd listening", "addr", addr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := common.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("airshipd stopped")
}
