package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("NARRATOR_CONFIG")

	if configPath == "" {
		configPath = "config.yaml"
	}

	configFlag := flag.String("config", configPath, "config file")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "narrator-gateway")

	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	flush := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			slog.Error("failed to flush telemetry", "error", err)
		}
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		slog.Error("failed to parse config", "error", err)
		os.Exit(1)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	s, err := server.NewGateway(cfg)

	if err != nil {
		slog.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}

	err = s.ListenAndServe(ctx)
	flush()

	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
