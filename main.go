package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"tilequest/internal/game"
	"tilequest/internal/grid"
	"tilequest/internal/logging"
	"tilequest/internal/save"
	"tilequest/internal/spectate"
	"tilequest/internal/world"
)

func main() {
	seed := flag.Int64("seed", 0, "World seed (0 picks one from the clock)")
	logPath := flag.String("log", "", "Log file; empty disables logging")
	level := flag.String("level", "info", "Log level")
	savePath := flag.String("save", "", "JSON file to save the session to")
	dsn := flag.String("pg", "", "PostgreSQL DSN to save the session to (overrides --save)")
	watch := flag.String("spectate", "", "Address to serve spectators on, e.g. :8080")
	flag.Parse()

	if err := run(*seed, *logPath, *level, *savePath, *dsn, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(seed int64, logPath, level, savePath, dsn, watch string) error {
	log, err := logging.New(logPath, level)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := save.Open(savePath, dsn)
	if err != nil {
		return fmt.Errorf("open save store: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	opts := game.Options{Seed: seed, Log: log, Store: store, SaveKey: "local"}
	if watch != "" {
		hub := spectate.NewHub(log.Named("spectate"))
		defer hub.Close()
		srv := &http.Server{Addr: watch, Handler: hub}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("spectator server stopped", zap.Error(err))
			}
		}()
		defer srv.Close()
		opts.OnFrame = func(w *world.World, view grid.Bounds) {
			if err := hub.Broadcast(spectate.NewFrame("local", w, view)); err != nil {
				log.Warn("broadcast failed", zap.Error(err))
			}
		}
	}

	g, err := game.New(opts)
	if err != nil {
		return err
	}
	return g.Run()
}
