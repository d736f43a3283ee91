package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glasspane/glasspane/internal/background"
	"github.com/glasspane/glasspane/internal/compositor"
	"github.com/glasspane/glasspane/internal/config"
	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
	"github.com/glasspane/glasspane/internal/ipc"
	"github.com/glasspane/glasspane/internal/overlay"
	"github.com/glasspane/glasspane/internal/runtimepath"
	"github.com/glasspane/glasspane/internal/session"
	"github.com/glasspane/glasspane/internal/supervisor"
	"github.com/glasspane/glasspane/internal/x11host"
)

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}

// defaultWorkspaces seeds the model before the first supervisor frame
// arrives, so IPC queries and the background strip have something to show.
func defaultWorkspaces(count int) []frame.WorkspaceInfo {
	ws := make([]frame.WorkspaceInfo, count)
	for i := range ws {
		ws[i] = frame.WorkspaceInfo{
			ID:      i,
			Label:   fmt.Sprintf("%d", i+1),
			Ordinal: i,
		}
	}
	return ws
}

func runSession() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (refresh: %d Hz, workspaces: %d)", cfg.RefreshRate, cfg.Workspaces.Count)

	logger := newLogger(cfg.LogLevel)

	conn, err := x11host.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	controlSocket, err := runtimepath.ControlSocketPath()
	if err != nil {
		log.Fatalf("Failed to resolve control socket: %v", err)
	}
	supervisorSocket := cfg.SupervisorSocket
	if supervisorSocket == "" {
		supervisorSocket, err = runtimepath.SupervisorSocketPath()
		if err != nil {
			log.Fatalf("Failed to resolve supervisor socket: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cell := &frame.Cell{}
	sup := supervisor.NewClient(supervisorSocket, cell, logger)
	go func() {
		if err := sup.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("supervisor link terminated", "error", err)
		}
	}()

	watchdog := supervisor.NewWatchdog(supervisor.WatchdogConfig{Logger: logger}, cell)
	go watchdog.Run(ctx)

	model := session.NewModel(cfg.Zoom.Min, cfg.Zoom.Max)
	model.SetWorkspaceDimensions(cfg.Workspaces.Width, cfg.Workspaces.Height, cfg.Workspaces.Gap)
	model.SetWorkspaceInfo(defaultWorkspaces(cfg.Workspaces.Count), 0)

	renderer := background.NewRenderer(x11host.NewSurfaceBinding(conn), logger)
	renderer.SetBackground(cfg.Background)
	if err := renderer.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize background surface: %v", err)
	}
	defer renderer.Release()

	overlays := overlay.NewReconciler(x11host.NewOverlayHost(conn), logger)

	driver := compositor.NewDriver(compositor.Config{
		RefreshRate: cfg.RefreshRate,
		Logger:      logger,
	}, cell, model, renderer, overlays, conn.ScreenSize, sup)

	ipcServer := ipc.NewServer(controlSocket, driver, model, renderer, sup, logger)
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				newCfg, err := config.Load()
				if err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				// The session model is owned by the render loop, so only
				// renderer-side settings apply live. Geometry and refresh
				// rate changes take effect on the next session start.
				if !renderer.SetBackground(newCfg.Background) {
					log.Printf("Unknown background in config: %s", newCfg.Background)
				}
				log.Println("Config reloaded successfully")

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down glasspane session...")
				cancel()
				return
			}
		}
	}()

	log.Println("glasspane session started")
	if err := driver.Run(ctx); err != nil {
		log.Fatalf("Render loop error: %v", err)
	}
}

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane preview [--duration N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the compositor against a built-in frame generator instead of a")
		fmt.Fprintln(os.Stderr, "supervisor. Useful for checking the display pipeline end to end.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	duration := fs.Int("duration", 0, "Stop after N seconds (0 runs until interrupted)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "preview takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	conn, err := x11host.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cell := &frame.Cell{}
	model := session.NewModel(cfg.Zoom.Min, cfg.Zoom.Max)
	model.SetWorkspaceDimensions(cfg.Workspaces.Width, cfg.Workspaces.Height, cfg.Workspaces.Gap)

	renderer := background.NewRenderer(x11host.NewSurfaceBinding(conn), logger)
	renderer.SetBackground(cfg.Background)
	if err := renderer.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize background surface: %v\n", err)
		return 1
	}
	defer renderer.Release()

	overlays := overlay.NewReconciler(x11host.NewOverlayHost(conn), logger)

	driver := compositor.NewDriver(compositor.Config{
		RefreshRate: cfg.RefreshRate,
		Logger:      logger,
	}, cell, model, renderer, overlays, conn.ScreenSize, nil)

	go generatePreviewFrames(ctx, cell, cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	if *duration > 0 {
		go func() {
			select {
			case <-time.After(time.Duration(*duration) * time.Second):
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	logger.Info("preview started", "duration_seconds", *duration)
	if err := driver.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// generatePreviewFrames publishes a slow scripted scene: three windows
// drifting on a breathing viewport, with a workspace switch every few
// seconds to exercise the strip transition.
func generatePreviewFrames(ctx context.Context, cell *frame.Cell, cfg *config.Config) {
	const step = 50 * time.Millisecond
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	workspaces := defaultWorkspaces(cfg.Workspaces.Count)
	var seq uint64
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		t := time.Since(start).Seconds()
		seq++

		active := int(t/8) % len(workspaces)
		transitioning := math.Mod(t, 8) < 0.5

		drift := 60 * math.Sin(t/2)
		windows := []frame.WindowInfo{
			{
				ID:        1,
				AppID:     "terminal",
				Frame:     geom.Rect{X: 120 + drift, Y: 90, Width: 900, Height: 600},
				State:     frame.StateFocused,
				ZOrder:    2,
				Workspace: 0,
			},
			{
				ID:        2,
				AppID:     "files",
				Frame:     geom.Rect{X: 700, Y: 260 - drift, Width: 800, Height: 560},
				State:     frame.StateNormal,
				ZOrder:    1,
				Workspace: 0,
			},
			{
				ID:        3,
				AppID:     "clock",
				Frame:     geom.Rect{X: 400, Y: 200, Width: 360, Height: 360},
				State:     frame.StateNormal,
				ZOrder:    3,
				Workspace: 1 % len(workspaces),
			},
		}

		origin := float64(active) * (cfg.Workspaces.Width + cfg.Workspaces.Gap)
		cell.Publish(&frame.Frame{
			Seq:     seq,
			Windows: windows,
			Viewport: frame.ViewportState{
				Zoom: 1 + 0.1*math.Sin(t/3),
				Center: geom.Point{
					X: origin + cfg.Workspaces.Width/2,
					Y: cfg.Workspaces.Height / 2,
				},
			},
			Workspaces:    workspaces,
			Active:        active,
			Transitioning: transitioning,
		})
	}
}
