package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SidecarStubServer/internal/config"
	"SidecarStubServer/internal/responder"
	"SidecarStubServer/internal/server"
)

/*
Sidecar stub.

Answers a registry or load balancer polling this host:

	GET /             welcome message
	GET /health.json  {"status":"UP"}

Everything else gets a "404" body.
*/

const shutdownTimeout = 5 * time.Second

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run serves until ctx is done and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := configure(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "sidecar: %v\n", err)
		return 1
	}

	handler, err := responder.New(responder.Options{
		Welcome:        cfg.Welcome(),
		NotFoundStatus: cfg.Responder.NotFoundStatus,
	})
	if err != nil {
		fmt.Fprintf(stderr, "sidecar: %v\n", err)
		return 1
	}

	var notice string
	if cfg.Responder.NotFoundStatus != http.StatusOK {
		notice = fmt.Sprintf("unmatched paths answer status %d", cfg.Responder.NotFoundStatus)
	}

	srv := server.New(server.Options{
		Name:         cfg.Service.Name,
		Addr:         cfg.Server.Listen,
		Notice:       notice,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, handler, log.New(stdout, "", log.LstdFlags|log.LUTC))

	if err := srv.Run(ctx, shutdownTimeout); err != nil {
		fmt.Fprintf(stderr, "sidecar: %v\n", err)
		return 1
	}
	return 0
}

// configure parses flags, loads the optional config file and applies
// flag overrides on top of it.
func configure(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("sidecar", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to YAML configuration file (optional)")
	addr := fs.String("addr", "", "Listen address, overrides server.listen")
	welcome := fs.String("welcome", "", "Index welcome message, overrides responder.welcome")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return config.Config{}, err
	}

	if *addr != "" {
		cfg.Server.Listen = *addr
	}
	if *welcome != "" {
		cfg.Responder.Welcome = *welcome
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}
