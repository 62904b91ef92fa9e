// inputhook - global keyboard and mouse capture daemon
// Streams captured input over a local WebSocket and injects posted events.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"inputhook/internal/api"
	"inputhook/internal/autostart"
	"inputhook/internal/config"
	"inputhook/internal/event"
	"inputhook/internal/hook"
	"inputhook/internal/hookerr"
	"inputhook/internal/hotkey"
	"inputhook/internal/input"
	"inputhook/internal/logging"
	"inputhook/internal/osutils"
	"inputhook/internal/screen"
	"inputhook/internal/settings"
	"inputhook/internal/tray"
)

var (
	version    = "0.1.0"
	configPath = flag.String("config", "", "Path to the config file (default: per-user config directory)")
	listScrs   = flag.Bool("screens", false, "List attached screens")
	showSets   = flag.Bool("settings", false, "Print keyboard and pointer settings")
	postEvent  = flag.String("post", "", "Post a JSON input event and exit")
	showVer    = flag.Bool("version", false, "Show version")
	logLevel   = flag.String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	autoStart  = flag.String("autostart", "", "Manage the login item: on, off or status")
)

func init() {
	// systray must run on the main thread on macOS.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("inputhook version %s\n", version)
		return
	}

	// Initialize config
	cfgMgr, err := config.NewManager(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	loadErr := cfgMgr.Load()

	cfg := cfgMgr.Get()
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := setupLogging(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(2)
	}
	if loadErr != nil {
		logging.Warnf("config: using defaults: %v", loadErr)
	}
	api.Version = version

	switch {
	case *listScrs:
		listScreens()
	case *showSets:
		printSettings()
	case *postEvent != "":
		post(*postEvent)
	case *autoStart != "":
		manageAutostart(*autoStart)
	default:
		runService(cfgMgr, cfg)
	}
}

func setupLogging(opts config.LogConfig) error {
	logger, err := logging.New(logging.Options{Level: opts.Level, Format: opts.Format})
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logging.SetLogger(level, logging.SlogSink(logger))
	return nil
}

func fatalf(format string, args ...any) {
	logging.Errorf(format, args...)
	os.Exit(1)
}

func listScreens() {
	screens, err := screen.ListScreens()
	if err != nil {
		fatalf("Failed to list screens: %v", err)
	}

	fmt.Println("Attached Screens:")
	fmt.Println("-----------------")
	for _, s := range screens {
		fmt.Printf("Screen %d: %dx%d at (%d,%d)\n", s.Index, s.Width, s.Height, s.X, s.Y)
	}
}

func printSettings() {
	snap, errs := settings.Read()
	rows := []struct {
		label string
		key   string
		value *int64
	}{
		{"Auto-repeat rate", "auto_repeat_rate", snap.AutoRepeatRate},
		{"Auto-repeat delay", "auto_repeat_delay", snap.AutoRepeatDelay},
		{"Pointer acceleration multiplier", "pointer_acceleration_multiplier", snap.PointerAccelerationMultiplier},
		{"Pointer acceleration threshold", "pointer_acceleration_threshold", snap.PointerAccelerationThreshold},
		{"Pointer sensitivity", "pointer_sensitivity", snap.PointerSensitivity},
		{"Multi-click time (ms)", "multi_click_time", snap.MultiClickTime},
	}
	for _, r := range rows {
		if r.value != nil {
			fmt.Printf("%-32s %d\n", r.label+":", *r.value)
		} else {
			fmt.Printf("%-32s unavailable (%v)\n", r.label+":", errs[r.key])
		}
	}
}

func post(raw string) {
	var ev event.InputEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		fatalf("Invalid event: %v", err)
	}
	if err := input.Post(ev); err != nil {
		fatalf("Failed to post %s: %v", ev, err)
	}
	fmt.Printf("Posted %s\n", ev)
}

func manageAutostart(action string) {
	switch action {
	case "on":
		var args []string
		if *configPath != "" {
			args = append(args, "-config", *configPath)
		}
		if err := autostart.Enable(args...); err != nil {
			fatalf("Failed to enable autostart: %v", err)
		}
		fmt.Println("Autostart enabled")
	case "off":
		if err := autostart.Disable(); err != nil {
			fatalf("Failed to disable autostart: %v", err)
		}
		fmt.Println("Autostart disabled")
	case "status":
		fmt.Printf("Autostart enabled: %v\n", autostart.IsEnabled())
	default:
		fatalf("Unknown autostart action %q (want on, off or status)", action)
	}
}

func runService(cfgMgr *config.Manager, cfg config.Config) {
	logging.Infof("inputhook %s starting", version)
	for _, w := range osutils.CaptureWarnings() {
		logging.Warnf("capture: %s", w)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stream := api.NewStream(cfg.Stream.Format, cfg.Stream.Buffer, func() string {
		return hook.CurrentState().String()
	})
	go stream.Run(ctx)

	// Echo printing happens off the capture thread.
	var echoCh chan event.InputEvent
	if cfg.Capture.Echo {
		echoCh = make(chan event.InputEvent, 256)
		go func() {
			for ev := range echoCh {
				fmt.Println(ev)
			}
		}()
	}

	hkMgr := hotkey.NewManager()
	runner := hook.NewRunner(hook.Default(), func(ev event.InputEvent) {
		hkMgr.Observe(ev)
		stream.Publish(ev)
		if echoCh != nil {
			select {
			case echoCh <- ev:
			default:
			}
		}
	})

	var t *tray.Tray
	if cfg.Tray.Enabled {
		t = tray.New(runner, cancel)
	}

	// Helper to refresh the stop hotkey on config change
	refreshShortcuts := func() {
		cfg := cfgMgr.Get()
		hkMgr.Clear()
		if cfg.Capture.StopHotkey == "" {
			return
		}
		_, err := hkMgr.Register(cfg.Capture.StopHotkey, func() {
			logging.Warnf("Stop hotkey pressed, stopping capture")
			if err := runner.Stop(); err != nil {
				logging.Errorf("Failed to stop capture: %v", err)
			}
			if t != nil {
				t.Refresh()
			}
		})
		if err != nil {
			logging.Warnf("Failed to register stop hotkey: %v", err)
		} else {
			logging.Infof("Registered stop hotkey: %s", cfg.Capture.StopHotkey)
		}
	}
	refreshShortcuts()
	cfgMgr.RegisterChangeCallback(refreshShortcuts)

	if cfg.API.Enabled {
		server := api.NewServer(api.Options{
			Token:   cfg.API.Token,
			Capture: runner,
			Stream:  stream,
		})
		go func() {
			if err := server.ListenAndServe(ctx, cfg.API.Addr); err != nil {
				logging.Errorf("API server error: %v", err)
			}
		}()
	}

	if cfg.Capture.AutoStart {
		if err := runner.Start(); err != nil {
			logging.Errorf("Capture failed to start (status 0x%02X): %v", uint8(hookerr.CodeOf(err)), err)
		}
	}

	if t != nil {
		go func() {
			<-ctx.Done()
			t.Stop()
		}()
		logging.Infof("inputhook running in the system tray")
		t.Run()
		cancel()
	} else {
		logging.Infof("inputhook running. Press Ctrl+C to stop.")
		<-ctx.Done()
	}

	logging.Infof("Shutting down...")
	if err := runner.Stop(); err != nil {
		logging.Errorf("Failed to stop capture: %v", err)
	}
	if echoCh != nil {
		close(echoCh)
	}
}
