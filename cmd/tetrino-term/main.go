// Command tetrino-term plays the game in a terminal. Logs go to a file only, since the screen
// owns the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/config"
	"github.com/plus3/tetrino/logging"
	"github.com/plus3/tetrino/render/termrender"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file. Built-in defaults when empty.")
	palette := flag.Bool("palette", false, "Use built-in colors instead of reading the tile images.")
	sound := flag.Bool("sound", true, "Play a chime for every new piece.")
	logFile := flag.String("log", "", "Log file. Overrides log.file; "+defaultLogFile+" when both are empty.")
	flag.Parse()

	if err := run(*configPath, *palette, *sound, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, palette, sound bool, logFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Log.File = logPath(logFile, cfg.Log.File)

	logger, closeLog, err := logging.New(logging.Options{LogConfig: cfg.Log})
	if err != nil {
		return err
	}
	defer closeLog()

	var colors *termrender.ColorLoader
	if palette {
		colors = termrender.NewPaletteLoader(cfg.Assets.Paths)
	} else {
		colors = termrender.NewColorLoader(cfg.Assets.Root)
	}
	registry, err := texture.Load(colors, cfg.Assets.Paths)
	if err != nil {
		return fmt.Errorf("%w (try -palette)", err)
	}

	chime := &termrender.Chime{}
	if sound {
		if err := chime.Init(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		}
	}
	defer chime.Close()

	world := tetrino.NewWorld(registry, tetrino.Options{
		Settings: tetrino.Settings{TileSize: cfg.Board.TileSize, FallRate: cfg.Piece.FallRate},
		Random:   tetrino.NewRandom(cfg.Random.Seed),
		Logger:   logger,
		OnSpawn:  chime.Play,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &termrender.App{
		Screen:   screen,
		World:    world,
		Renderer: &termrender.Renderer{Colors: colors, TileSize: cfg.Board.TileSize},
		Logger:   logger,
		Interval: time.Second / time.Duration(cfg.Window.TPS),
	}
	logger.Info("starting", zap.Bool("palette", palette), zap.Bool("sound", sound))
	return quitErr(app.Run(ctx))
}

const defaultLogFile = "tetrino-term.log"

// logPath prefers the flag, then the config file. The screen owns the terminal, so there is
// always a file.
func logPath(flagValue, configValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case configValue != "":
		return configValue
	}
	return defaultLogFile
}

// quitErr treats an interrupt as a normal exit.
func quitErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
