// Package main provides the entry point for the RadView application.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"radview/internal/app"
	"radview/internal/config"
	"radview/internal/logging"
	"radview/internal/xray"
	"radview/ui/mainwindow"
	"radview/ui/prefs"
)

func main() {
	cfgPath := defaultConfigPath()
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	logging.Setup(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", cfgPath, "error", err)
	}
	slog.Info("starting radview")

	state := app.NewStateWithHistory(cfg.History.Depth)
	applyConfig(state, cfg)

	appPrefs := prefs.Load()
	state.SetDefaultColor(appPrefs.Color(prefs.KeyDefaultColor, state.DefaultColor()))
	state.SetDefaultStrokeWidth(appPrefs.FloatWithFallback(prefs.KeyStrokeWidth, state.DefaultStrokeWidth()))

	fyneApp := fyneapp.NewWithID("radview")
	win := mainwindow.New(fyneApp, state, appPrefs)
	win.Resize(windowSize(cfg))

	// Images named on the command line open immediately.
	for _, path := range os.Args[1:] {
		layer, err := xray.Load(path)
		if err != nil {
			slog.Error("failed to load image", "path", path, "error", err)
			continue
		}
		state.AddLayer(layer)
	}

	win.ShowAndRun()
}

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "radview", "config.yaml")
}

func windowSize(cfg *config.Config) fyne.Size {
	w := float32(cfg.Display.WindowWidth)
	h := float32(cfg.Display.WindowHeight)
	if w < 640 {
		w = 1280
	}
	if h < 480 {
		h = 900
	}
	return fyne.NewSize(w, h)
}

func applyConfig(state *app.State, cfg *config.Config) {
	for _, p := range xray.Presets() {
		if strings.EqualFold(p.Name, cfg.Display.DefaultPreset) {
			state.ApplyPreset(p)
			break
		}
	}
	state.SetInvert(cfg.Display.InvertByDefault)
	if c, err := config.ParseColor(cfg.Annotation.DefaultColor); err == nil {
		state.SetDefaultColor(c)
	}
	state.SetDefaultStrokeWidth(cfg.Annotation.DefaultStrokeWidth)
	state.SetDefaultHeatmapOpacity(cfg.Display.HeatmapOpacity)
}
