package ambient

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ClearColor Color
	ShowFPS    bool
	// ScrollStep is the document scroll per wheel notch. Zero means 40.
	ScrollStep float64
	// Surface, when set, is drawn behind the document. Pass the same
	// surface as Config.Surface to see the particle field.
	Surface *ImageSurface
}

// Game adapts an Engine to ebiten.Game. It turns ebiten input into engine
// signals and renders the document.
type Game struct {
	engine   *Engine
	cfg      RunConfig
	renderer Renderer

	lastX, lastY int
	width        int
	height       int
}

// NewGame wraps engine for use with ebiten.RunGame.
func NewGame(engine *Engine, cfg RunConfig) *Game {
	if cfg.ScrollStep == 0 {
		cfg.ScrollStep = 40
	}
	return &Game{
		engine:   engine,
		cfg:      cfg,
		renderer: Renderer{ClearColor: cfg.ClearColor},
		lastX:    -1,
		lastY:    -1,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	bus := g.engine.Signals()

	mx, my := ebiten.CursorPosition()
	if mx != g.lastX || my != g.lastY {
		g.lastX, g.lastY = mx, my
		bus.PointerMove(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		bus.Click(float64(mx), float64(my))
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		bus.Scroll(g.engine.Document().ScrollY() - wy*g.cfg.ScrollStep)
	}

	g.engine.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.engine.Document(), g.cfg.Surface)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
}

// Layout implements ebiten.Game. A change of outside size is reported to the
// engine as a resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Signals().Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives engine until the window is closed.
func Run(engine *Engine, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		w, h = 1280, 720
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(engine, cfg))
}
