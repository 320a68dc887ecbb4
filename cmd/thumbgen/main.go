// Package main provides a command-line thumbnail generator.
//
// It stands in for the UI that normally drives the client during development
// and manual testing. It is an example caller, not a supported interface: its
// flags and output may change without notice. Programs should use the client
// package.
//
// Configuration is via environment variables (see client.LoadConfig) and a .env
// file if present:
//
//	GEMINI_API_KEY           - Google API key (required unless using Vertex AI)
//	OPENAI_API_KEY           - enables OpenAI image candidates
//	ANTHROPIC_API_KEY        - enables Claude vision candidates
//	THUMBPRO_EDIT_STRATEGY   - direct (default) or describe
//	THUMBPRO_MODELS_FILE     - YAML candidate table
//	THUMBPRO_LOG_LEVEL       - debug, info, warn or error
//
// Usage:
//
//	go run ./cmd/thumbgen -prompt "a cat astronaut" -ratio 16:9
//	go run ./cmd/thumbgen -prompt "add neon lights" -ratio 1:1 -ref face.jpg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/client"
	"github.com/mchlmayer/thumbpro/imgutil"
	"github.com/mchlmayer/thumbpro/internal/metrics"
)

// refList collects repeated -ref flags.
type refList []string

func (r *refList) String() string     { return strings.Join(*r, ",") }
func (r *refList) Set(v string) error { *r = append(*r, v); return nil }

func main() {
	var refs refList
	promptText := flag.String("prompt", "", "what to generate, or the changes to apply to the references")
	ratioText := flag.String("ratio", string(ai.AspectLandscape), "aspect ratio: 16:9, 9:16, 1:1, 4:3 or 3:4")
	out := flag.String("out", "thumbnail", "output file name without extension")
	count := flag.Int("count", 1, "number of variations to generate")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flag.Var(&refs, "ref", "reference image file (repeatable)")
	flag.Parse()

	if err := run(*promptText, *ratioText, refs, *out, *count, *metricsAddr); err != nil {
		var e *ai.Error
		if errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, e.UserMessage())
		}
		fmt.Fprintf(os.Stderr, "thumbgen: %v\n", err)
		os.Exit(1)
	}
}

func run(promptText, ratioText string, refPaths []string, out string, count int, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := client.LoadConfig()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	cfg.Logger = logger

	ratio, err := ai.ParseAspectRatio(ratioText)
	if err != nil {
		return err
	}

	references := make([]ai.ReferenceImage, 0, len(refPaths))
	for _, path := range refPaths {
		ref, err := imgutil.LoadReference(path, ratio)
		if err != nil {
			return err
		}
		references = append(references, ref)
	}

	events := make(chan client.Event, 100)
	cfg.Events = events
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	go collector.Run(ctx, events)

	if metricsAddr != "" {
		server := startMetricsServer(metricsAddr, registry, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	c, err := client.New(ctx, cfg)
	if err != nil {
		return err
	}

	history := ai.NewHistory(ai.DefaultHistoryLimit)
	for i := 0; i < count; i++ {
		var img *ai.Image
		if len(references) > 0 {
			img, err = c.GenerateImageWithReference(ctx, promptText, references, ratio)
		} else {
			img, err = c.GenerateImageWithText(ctx, promptText, ratio)
		}
		if err != nil {
			return err
		}

		item := history.Add(img, promptText, ratio)
		name := outputName(out, i, count, img.MIMEType)
		if err := os.WriteFile(name, img.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		logger.Info("thumbnail saved", "file", name, "model", img.Model, "history_id", item.ID)
	}

	for _, item := range history.Items() {
		fmt.Printf("%s  %s  %-5s  %s\n", item.CreatedAt.Format(time.TimeOnly), item.ID, item.AspectRatio, item.Image.Model)
	}
	return nil
}

func startMetricsServer(addr string, registry *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("metrics server listening", "addr", addr)
	return server
}

// outputName returns the file name for variation i, with an extension matching mimeType.
func outputName(base string, i, count int, mimeType string) string {
	ext := ".png"
	if mimeType == "image/jpeg" {
		ext = ".jpg"
	}
	if count == 1 {
		return base + ext
	}
	return fmt.Sprintf("%s-%d%s", base, i+1, ext)
}
