package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ironsheep/paint-editor-node/internal/config"
	"github.com/ironsheep/paint-editor-node/internal/editor"
	"github.com/ironsheep/paint-editor-node/internal/logger"
	"github.com/ironsheep/paint-editor-node/internal/mask"
	"github.com/ironsheep/paint-editor-node/internal/server"
	"github.com/ironsheep/paint-editor-node/internal/session"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv(config.EnvPrefix + "_CONFIG")

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--version" || arg == "-v" || arg == "version":
			fmt.Printf("paint-editor %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case arg == "--help" || arg == "-h" || arg == "help":
			printHelp()
			return
		case arg == "--config" || arg == "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "unknown option %q (see --help)\n", arg)
			os.Exit(2)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the host protocol, so logs go to stderr
	log := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("paint editor starting")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := session.New(ctx, session.Options{
		Backend:  cfg.Session.Backend,
		RedisURL: cfg.Session.RedisURL,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	if c, ok := store.(interface{ Close() error }); ok {
		defer c.Close()
	}

	node := editor.New(cfg.InputDir, store,
		editor.WithEngine(mask.Engine{
			Detector: mask.Detector{Threshold: cfg.Mask.Threshold},
			Resolver: mask.Resolver{Connectivity: cfg.Mask.Connectivity},
		}),
		editor.WithLogger(logger.Component(log, "editor")),
		editor.WithOverlay(cfg.Overlay.Color, cfg.Overlay.Opacity),
	)

	server.Version = Version
	srv := server.New(node, logger.Component(log, "server"))

	if cfg.HTTPAddr != "" {
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Msg("http server stopped")
			}
		}()
	}

	return srv.Run(ctx)
}

func printHelp() {
	fmt.Println("paint-editor - paint editor node with enclosure mask derivation")
	fmt.Println()
	fmt.Println("Usage: paint-editor [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH  Load settings from a YAML file")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PAINT_EDITOR_CONFIG=path            YAML settings file")
	fmt.Println("  PAINT_EDITOR_INPUT_DIR=input        Directory of selectable images")
	fmt.Println("  PAINT_EDITOR_HTTP_ADDR=host:port    Browser endpoint (empty disables)")
	fmt.Println("  PAINT_EDITOR_LOG_LEVEL=debug        Enable debug logging")
	fmt.Println("  PAINT_EDITOR_SESSION_BACKEND=redis  Keep edits in Redis")
	fmt.Println("  PAINT_EDITOR_SESSION_REDIS_URL=...  Redis URL for the redis backend")
	fmt.Println()
	fmt.Println("The node talks to its host over stdin/stdout and receives")
	fmt.Println("edited images from the browser editor over HTTP.")
}
