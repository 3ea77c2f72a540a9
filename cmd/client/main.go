package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/kpfoody/foody/internal/client/cli"
	"github.com/kpfoody/foody/internal/client/config"
	"github.com/kpfoody/foody/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := cli.NewApp(cfg, logger)
	app.Run(context.Background())
}
