package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/drawshapes/drawshapes/internal/asset"
	"github.com/drawshapes/drawshapes/internal/config"
	"github.com/drawshapes/drawshapes/internal/desktop"
	"github.com/drawshapes/drawshapes/internal/discovery"
)

func main() {
	browse := flag.Bool("browse", false, "list drawshapes servers on the local network and exit")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	if *browse {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := discovery.Browse(ctx, 3*time.Second, func(s discovery.Server) {
			fmt.Printf("%s\t%s\n", s.Addr, s.Name)
		})
		if err != nil {
			slog.Error("browse", "error", err)
			os.Exit(1)
		}
		return
	}

	desktop.Run(cfg.Style(), asset.NewStore(cfg.AssetDir), cfg.EngineOptions()...)
}
