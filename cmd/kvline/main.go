package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pior/kvline"
	"github.com/pior/kvline/internal/config"
	"github.com/pior/kvline/internal/logging"
	"github.com/pior/kvline/promexporter"
)

const usage = `Usage: kvline [flags] <command>

Commands:
  demo    run the example scenarios against the store
  repl    interactive mode: SET key value, GET key, DELETE key, EXISTS key, QUIT

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kvline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		configPath  = fs.String("config", "", "Path to a TOML configuration file")
		host        = fs.String("host", "", "Store host (overrides config and KVLINE_HOST)")
		port        = fs.Int("port", 0, "Store port (overrides config and KVLINE_PORT)")
		timeout     = fs.Duration("timeout", 0, "Per-request timeout (overrides config and KVLINE_TIMEOUT)")
		metricsAddr = fs.String("metrics-addr", "", "Serve Prometheus metrics on this address")
		breaker     = fs.Bool("circuit-breaker", false, "Fail fast after repeated connection failures")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	command := fs.Arg(0)
	if command != "demo" && command != "repl" {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "kvline: %v\n", err)
		return 1
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Client.Host = *host
		case "port":
			cfg.Client.Port = *port
		case "timeout":
			cfg.Client.Timeout = *timeout
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "circuit-breaker":
			cfg.Breaker = *breaker
		}
	})

	logger := logging.New(stderr, logging.ProfileRuntime)
	cfg.Client.Logger = &logger
	if cfg.Breaker {
		cfg.Client.NewCircuitBreaker = kvline.NewCircuitBreakerConfig(1, 0, cfg.BreakerTimeout)
	}

	client, err := kvline.New(cfg.Client)
	if err != nil {
		fmt.Fprintf(stderr, "kvline: %v\n", err)
		return 1
	}

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, client, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := client.Connect(ctx); err != nil {
		fmt.Fprintf(stderr, "Cannot connect to server: %v\n", err)
		fmt.Fprintln(stderr, "Make sure the server is running!")
		return 1
	}
	defer client.Close()

	switch command {
	case "demo":
		err = runDemo(ctx, client, cfg.Client, stdout)
	case "repl":
		err = runREPL(ctx, client, stdin, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "kvline: %v\n", err)
		return 1
	}
	return 0
}

func serveMetrics(addr string, client *kvline.Client, logger zerolog.Logger) *http.Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(promexporter.NewCollector(client))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("metrics_addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	return srv
}
