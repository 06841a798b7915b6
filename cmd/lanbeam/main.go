package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishq/lanbeam/internal/api"
	"github.com/nishq/lanbeam/internal/config"
	"github.com/nishq/lanbeam/internal/core"
	"github.com/nishq/lanbeam/internal/logging"
	"github.com/nishq/lanbeam/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	channel, err := core.ParseUpdateChannel(cfg.Settings.UpdateChannel)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := api.New(cfg.Backend.URL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, logger)

	app := core.NewApp(client,
		core.Settings{
			LANOnly:            cfg.Settings.LANOnly,
			RelayEnabled:       cfg.Settings.RelayEnabled,
			DiagnosticsEnabled: cfg.Settings.DiagnosticsEnabled,
			Channel:            channel,
		},
		core.AccessibilityState{
			ReducedMotion: cfg.Accessibility.ReducedMotion,
			HighContrast:  cfg.Accessibility.HighContrast,
			LargeText:     cfg.Accessibility.LargeText,
		},
		logger,
	)

	logger.Info().Str("backend", cfg.Backend.URL).Msg("starting dashboard")

	p := tea.NewProgram(tui.New(ctx, app, client, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
