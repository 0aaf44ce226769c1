package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/mahjong-cli/internal/display"
	"github.com/lox/mahjong-cli/internal/game"
	"github.com/lox/mahjong-cli/internal/session"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Config string `kong:"default='mahjong.hcl',help='Path to the HCL config file'"`
	Seed   *int64 `kong:"help='Deterministic shuffle seed (optional)'"`
	Name   string `kong:"help='Player name, overrides the config'"`
	Seat   *int   `kong:"help='Seat to sit at (0-3), overrides the config'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := session.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.Name != "" {
		cfg.Game.PlayerName = c.Name
	}
	if c.Seat != nil {
		cfg.Game.HumanSeat = *c.Seat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "mahjong",
		Level:           level,
	})
	logger.Info("starting interactive game",
		"player", cfg.Game.PlayerName,
		"seat", cfg.Game.HumanSeat,
		"seed", cfg.Game.Seed)

	fmt.Print(titleStyle.Render(" 🀄 Mahjong CLI 🀄 "))
	fmt.Println()
	fmt.Println()

	bus := game.NewEventBus()
	sess := session.New(cfg, logger, bus, quartz.NewReal())
	defer sess.Stop()

	ui := display.NewUI(sess, bus, cfg, logger)
	if err := ui.Start(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	// Graceful shutdown on interrupt
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		sess.Stop()
		if err := ui.Close(); err != nil {
			log.Error("Failed to close interface", "error", err)
		}
		os.Exit(0)
	}()

	defer func() {
		if err := ui.Close(); err != nil {
			log.Error("Failed to close interface", "error", err)
		}
	}()

	sess.StartNewGame()

	return ui.Run()
}
