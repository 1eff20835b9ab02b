package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tetrino/tetrino"
	"go.uber.org/zap"
)

// Overlay draws on top of the board, such as the ImGui debug windows.
type Overlay interface {
	Begin()
	End()
	Resize(w, h int)
	Overlay(screen *ebiten.Image)
}

// Game runs a tetrino.World as an ebiten.Game.
type Game struct {
	World    *tetrino.World
	Renderer *SpriteRenderer
	Overlay  Overlay
	Logger   *zap.Logger

	tps   int
	items []tetrino.DrawItem
}

func NewGame(world *tetrino.World, images Images, tps int) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return &Game{
		World: world,
		Renderer: &SpriteRenderer{
			Images:     images,
			Background: color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff},
		},
		Logger: world.Logger(),
		tps:    tps,
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.World.Respawn()
	}

	if g.Overlay != nil {
		g.Overlay.Begin()
	}
	g.World.Step(1.0 / float64(g.tps))
	if g.Overlay != nil {
		g.Overlay.End()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	camera := tetrino.DefaultCamera()
	if c := g.World.Camera(); c != nil {
		camera = *c
	}

	g.items = g.World.Sprites(g.items[:0])
	g.Renderer.Draw(screen, g.items, camera)

	if g.Overlay != nil {
		g.Overlay.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Overlay != nil {
		g.Overlay.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
