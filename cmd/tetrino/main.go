// Command tetrino opens the game in an ebiten window. Pass -debug for the ImGui board editor
// and performance windows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrino/config"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/ecs/debugui"
	imguiebiten "github.com/plus3/tetrino/ecs/debugui/ebiten"
	"github.com/plus3/tetrino/logging"
	"github.com/plus3/tetrino/render/ebitenrender"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file. Built-in defaults when empty.")
	assets := flag.String("assets", "", "Directory holding the tile images. Overrides assets.root.")
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	seed := flag.Uint64("seed", 0, "Piece color seed. Overrides random.seed; 0 keeps it.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *assets != "" {
		cfg.Assets.Root = *assets
	}
	if *seed != 0 {
		cfg.Random.Seed = *seed
	}
	cfg.Debug = cfg.Debug || *debug

	logger, closeLog, err := logging.Stderr(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	var backend *imguiebiten.ImguiBackend
	if cfg.Debug {
		// The backend owns the window, so it must exist before images are created.
		backend = imguiebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	}

	images := ebitenrender.NewImageLoader(cfg.Assets.Root)
	registry, err := texture.Load(images, cfg.Assets.Paths)
	if err != nil {
		logger.Fatal("load textures", zap.String("root", cfg.Assets.Root), zap.Error(err))
	}

	opts := tetrino.Options{
		Settings: tetrino.Settings{TileSize: cfg.Board.TileSize, FallRate: cfg.Piece.FallRate},
		Random:   tetrino.NewRandom(cfg.Random.Seed),
		Logger:   logger,
	}
	if cfg.Debug {
		opts.Components = debugui.RegisterComponents
	}
	world := tetrino.NewWorld(registry, opts)

	game := ebitenrender.NewGame(world, images, cfg.Window.TPS)
	if backend != nil {
		game.Overlay = backend
		setupDebugUI(world)
	}

	logger.Info("starting",
		zap.String("assets", cfg.Assets.Root),
		zap.Float32("tile_size", cfg.Board.TileSize),
		zap.Bool("debug", cfg.Debug),
	)
	if err := exitErr(ebiten.RunGame(game)); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

// exitErr treats a requested termination as a clean exit.
func exitErr(err error) error {
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func setupDebugUI(world *tetrino.World) {
	storage := world.Storage
	ecs.NewSingleton(storage, debugui.ImguiInputState{})

	perf := debugui.NewPerformancePanel(storage, world.Scheduler, 120)
	inspector := &debugui.Inspector{Storage: storage}
	editor := &BoardEditor{World: world, Inspector: inspector, Paint: tetrino.PickColor(nil)}

	storage.Spawn(perf.Item())
	storage.Spawn(inspector.Item())
	storage.Spawn(editor.Item())

	world.Scheduler.Register(&debugui.FrameSystem{History: perf.History})
	world.Scheduler.Register(&debugui.ImguiSystem{})
}
