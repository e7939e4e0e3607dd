package tinsel

import (
	"context"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r3"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowHUD bool
	// ZoomStep is the zoom change per wheel notch.
	ZoomStep float64
	// Feed supplies live pointer input. It must be the feed the scene was
	// built with; Run reads its wheel for zoom.
	Feed *EbitenPointerFeed
}

var (
	clearColor   = color.RGBA{R: 8, G: 12, B: 24, A: 255}
	ribbonColor  = color.RGBA{R: 230, G: 190, B: 80, A: 255}
	photoColor   = color.RGBA{R: 200, G: 200, B: 220, A: 255}
	focusedColor = color.RGBA{R: 255, G: 90, B: 90, A: 255}
)

// ribbonSegments is the polyline resolution used to draw the ribbon.
const ribbonSegments = 240

type game struct {
	scene *Scene
	cfg   RunConfig
	hud   *Indicator
	proj  Projection
	photo []r3.Vec
	ctx   context.Context
}

// Run opens a window and drives scene until the window closes. H toggles
// hand tracking and the mouse wheel zooms.
func Run(ctx context.Context, scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.ZoomStep == 0 {
		cfg.ZoomStep = 1
	}
	g := &game{
		scene: scene,
		cfg:   cfg,
		hud:   NewIndicator(),
		ctx:   ctx,
		proj: Projection{
			Viewport: Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)},
			FOV:      math.Pi / 3,
			Near:     0.1,
		},
		photo: photoLayout(scene.Config().Scene.PhotoCount),
	}
	scene.OnEvent(g.hud.EmitEvent)
	defer scene.DisableHand()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(g)
}

// photoLayout scatters n photos on a shell around the tree with a golden
// angle spiral.
func photoLayout(n int) []r3.Vec {
	out := make([]r3.Vec, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := range out {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		a := golden * float64(i)
		out[i] = r3.Scale(9, r3.Vec{X: r * math.Cos(a), Y: y, Z: r * math.Sin(a)})
	}
	return out
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		if h := g.scene.HandSource(); h != nil {
			switch h.Snapshot().Status {
			case HandStarting, HandRunning:
				g.scene.DisableHand()
			default:
				g.scene.DisableHand()
				g.scene.EnableHand(g.ctx)
			}
		}
	}
	if g.cfg.Feed != nil {
		if dy := g.cfg.Feed.Wheel(); dy != 0 {
			g.scene.AddZoom(-dy * g.cfg.ZoomStep)
		}
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.scene.Update(dt)
	g.hud.Update(float32(dt))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	v := g.scene.View()
	rib := g.scene.Camera().Config().Ribbon

	var px, py float64
	var prev bool
	for i := 0; i <= ribbonSegments; i++ {
		sx, sy, ok := g.proj.WorldToScreen(v.Camera, rib.Point(float64(i)/ribbonSegments))
		if ok && prev {
			vector.StrokeLine(screen, float32(px), float32(py), float32(sx), float32(sy), 2, ribbonColor, true)
		}
		px, py, prev = sx, sy, ok
	}

	if v.State != StateTree {
		for i, p := range g.photo {
			sx, sy, ok := g.proj.WorldToScreen(v.Camera, p)
			if !ok {
				continue
			}
			clr, size := color.Color(photoColor), float32(6)
			if v.State == StateFocus && i == v.FocusedPhoto {
				clr, size = focusedColor, 14
			}
			vector.StrokeRect(screen, float32(sx)-size/2, float32(sy)-size/2, size, size, 1.5, clr, true)
		}
	}

	if g.cfg.ShowHUD {
		g.hud.Draw(screen, v, 8, g.cfg.Height-24)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
