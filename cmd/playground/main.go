package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/roguecore/internal/config"
	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/game/equipment"
	"github.com/udisondev/roguecore/internal/game/inventory"
	"github.com/udisondev/roguecore/internal/model"
	"github.com/udisondev/roguecore/internal/scene"
	"github.com/udisondev/roguecore/internal/sim"
)

const ConfigPath = "config/controller.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Resolve(ConfigPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("playground starting", "config", cfgPath, "tick_rate", cfg.TickRate, "log_level", cfg.LogLevel)

	catalog, err := data.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	// One tree holds the live character and the inventory preview character.
	tree := scene.NewTree("World")
	tree.OnFree = func(h scene.Handle, name string) {
		slog.Debug("node released", "node", h, "name", name)
	}
	lib := equipment.CatalogLibrary(catalog)

	live, err := newEquipment(tree, lib, "Player", equipment.ContextLive)
	if err != nil {
		return err
	}
	preview, err := newEquipment(tree, lib, "PreviewPlayer", equipment.ContextPreview)
	if err != nil {
		return err
	}

	log := slog.Default()
	player, err := model.NewPlayer(model.NewOptions("player", cfg), model.Deps{
		Anim:      logAnim{log: log.With("collaborator", "anim")},
		Audio:     logAudio{log: log.With("collaborator", "audio")},
		Effects:   logEffects{log: log.With("collaborator", "effects")},
		HUD:       logHUD{log: log.With("collaborator", "hud")},
		Equipment: live,
		Tree:      tree,
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("spawning player: %w", err)
	}
	player.OnDeath(func() { slog.Info("game over") })

	bridge := inventory.NewBridge(catalog, live, preview, logHighlighter{log: log.With("collaborator", "inventory")}, log)
	if err := bridge.EquipDefaults(); err != nil {
		slog.Warn("default equipment incomplete", "error", err)
	}

	loop := sim.New(player, sim.Options{
		Step:   cfg.Step(),
		Bridge: bridge,
		View:   logView{log: log.With("collaborator", "inventory")},
		Log:    log,
	})

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stopFeeder := context.WithCancel(gctx)

	g.Go(func() error {
		defer stopFeeder()
		err := loop.Run(gctx)
		if errors.Is(err, sim.ErrPlayerDead) {
			return nil
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := replay(loopCtx, loop, demoScript(catalog)); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("input feeder: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("playground: %w", err)
	}

	slog.Info("playground finished", "health", max(player.Health(), 0), "dead", player.Dead())
	return nil
}

func newEquipment(tree *scene.Tree, lib *scene.Library, name string, ctx equipment.Context) (*equipment.Manager, error) {
	skel, err := equipment.NewRig(tree, tree.Root(), name)
	if err != nil {
		return nil, fmt.Errorf("building %s rig: %w", ctx, err)
	}
	log := slog.Default()
	sockets := equipment.Discover(tree, skel, ctx, nil, log)
	return equipment.NewManager(ctx, tree, lib, sockets, log), nil
}

// parseLogLevel converts string log level to slog.Level.
// Returns slog.LevelInfo for unknown values.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
