package garden

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	// wheelSpeed converts wheel ticks into scroll pixels.
	wheelSpeed = 40.0
	// dragDeadZone is the cursor travel below which a press-release counts
	// as a dot activation instead of a drag.
	dragDeadZone = 4.0
	// debugLogInterval is the number of frames between debug stat lines.
	debugLogInterval = 120
)

// View is the mounted garden scene: it owns the viewport state, the
// composited layers, the story dot field, and the asset cache, and bridges
// them to Ebitengine input and drawing. A View is single-threaded; all state
// mutation happens in its own Update/Layout handlers.
type View struct {
	vp     *Viewport
	layers []Layer
	dots   *DotField
	assets *AssetCache
	feed   *StoryFeed
	drift  *PetalDrift

	// ClearColor fills the screen before layers are drawn.
	ClearColor Color
	// DotColor is the fill color for story dots.
	DotColor Color

	ctx    context.Context
	cancel context.CancelFunc

	mounted bool
	closed  bool
	debug   bool
	frames  int

	dragging    bool
	dragTotal   float64
	lastCursorX int
	lastCursorY int
}

// NewView builds a view from a validated configuration. The resolver and
// repository are the scene's external collaborators; either may be nil, in
// which case the scene renders without images or without dots respectively.
func NewView(cfg *Config, resolver AssetResolver, repo StoryRepository) (*View, error) {
	layers, err := cfg.Layers()
	if err != nil {
		return nil, fmt.Errorf("composite layers: %w", err)
	}
	// Draw order: ascending z-index, insertion order within equal z.
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].ZIndex < layers[j].ZIndex
	})

	v := &View{
		vp:         NewViewport(cfg.Tuning.SegmentWidth, cfg.Tuning.InitialOffset),
		layers:     layers,
		dots:       NewDotField(cfg.Tuning.SegmentWidth, cfg.Tuning.DotBand),
		assets:     NewAssetCache(resolver),
		ClearColor: Color{R: 0.07, G: 0.09, B: 0.12, A: 1},
		DotColor:   Color{R: 1, G: 0.96, B: 0.88, A: 0.9},
	}
	if repo != nil {
		v.feed = NewStoryFeed(repo, 50)
	}
	return v, nil
}

// Viewport returns the view's scroll state owner.
func (v *View) Viewport() *Viewport {
	return v.vp
}

// Dots returns the view's story dot field.
func (v *View) Dots() *DotField {
	return v.dots
}

// Layers returns the composited layers in draw order.
// The returned slice MUST NOT be mutated.
func (v *View) Layers() []Layer {
	return v.layers
}

// SetDrift attaches an ambient petal drift to the view. The drift is sized
// with the view and drawn between the layers and the story dots. Pass nil to
// detach.
func (v *View) SetDrift(d *PetalDrift) {
	v.drift = d
	if d != nil {
		w, h := v.vp.Size()
		d.SetBounds(w, h)
		d.Start()
	}
}

// SetDebugMode enables the FPS overlay and periodic frame stats on stderr.
func (v *View) SetDebugMode(enabled bool) {
	v.debug = enabled
}

// Mount attaches the view: the initial viewport event fires, asset loads
// start, and the first story page is requested. Idempotent, so a remount
// after Close cannot double-attach.
func (v *View) Mount() {
	if v.mounted || v.closed {
		return
	}
	v.mounted = true
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.vp.Mount()
	v.assets.RequestLayers(v.ctx, v.layers)
	if v.feed != nil {
		v.feed.Fetch(v.ctx)
	}
}

// Update runs one frame: drains async results, maps input onto the scroll
// state, advances tweens, and dispatches dot activations. Implements the
// update half of ebiten.Game via Game.
func (v *View) Update() error {
	if v.closed || !v.mounted {
		return nil
	}
	dt := stepDuration(ebiten.TPS())

	v.assets.Update()
	if v.feed != nil {
		if v.feed.Update() {
			v.dots.SetStories(v.feed.Stories())
		}
		if v.feed.State() == LoadReady && !v.feed.Exhausted() {
			v.feed.Fetch(v.ctx)
		}
	}

	v.processInput()
	v.vp.Update(dt)
	if v.drift != nil {
		v.drift.Update(float64(dt))
	}

	v.frames++
	if v.debug && v.frames%debugLogInterval == 0 {
		log.Printf("garden: frame=%d layers=%d dots=%d localX=%.1f",
			v.frames, len(v.layers), len(v.dots.Dots()), v.vp.LocalX())
	}
	return nil
}

// processInput maps wheel and drag input onto the viewport and turns short
// press-release pairs into dot activations.
func (v *View) processInput() {
	// Wheel: vertical delta plus a fraction of horizontal, unless the
	// modifier key requests native behavior.
	if !ebiten.IsKeyPressed(ebiten.KeyShift) {
		wx, wy := ebiten.Wheel()
		v.vp.ApplyWheel(wx*wheelSpeed, wy*wheelSpeed)
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !v.dragging:
		v.dragging = true
		v.dragTotal = 0
		v.lastCursorX, v.lastCursorY = mx, my
	case pressed && v.dragging:
		dx := float64(mx - v.lastCursorX)
		if dx != 0 {
			v.vp.ApplyScrollDelta(-dx)
		}
		v.dragTotal += abs(dx) + abs(float64(my-v.lastCursorY))
		v.lastCursorX, v.lastCursorY = mx, my
	case !pressed && v.dragging:
		v.dragging = false
		if v.dragTotal < dragDeadZone {
			if d, ok := v.dots.HitTest(float64(mx), float64(my), v.vp.LocalX()); ok {
				v.dots.Activate(d)
			}
		}
	}
}

// Draw renders the scene. Implements the draw half of ebiten.Game via Game.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(v.ClearColor.toRGBA())
	if v.closed || !v.mounted {
		return
	}

	localX := v.vp.LocalX()
	segW := v.vp.SegmentWidth()
	drawLayers(screen, v.layers, v.assets, localX, segW)
	if v.drift != nil {
		v.drift.Draw(screen)
	}
	drawDots(screen, v.dots.Dots(), segW, localX, v.DotColor)

	if v.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout records the container size, which doubles as the resize
// observation: any change re-emits the viewport event and invalidates dot
// placement.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.vp.SetSize(float64(outsideWidth), float64(outsideHeight))
	v.dots.Resize(float64(outsideHeight))
	if v.drift != nil {
		v.drift.SetBounds(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close tears the view down synchronously: listeners stop feeding the
// viewport, in-flight fetches and asset loads are ignored on arrival, and
// no timers persist. Idempotent.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.mounted = false
	if v.cancel != nil {
		v.cancel()
	}
	if v.feed != nil {
		v.feed.Close()
	}
	v.assets.Close()
}

// stepDuration converts a ticks-per-second value into a frame step in
// seconds. TPS can be ebiten.SyncWithFPS (-1) when the host unlocks the tick
// rate; tweens and the drift need a positive step, so fall back to the
// default rate.
func stepDuration(tps int) float32 {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return float32(1.0 / float64(tps))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and drives the view until the window closes. For full
// control, implement ebiten.Game yourself and call the view's Mount, Update,
// Draw, and Layout directly.
func Run(v *View, cfg RunConfig) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	v.Mount()
	defer v.Close()
	return ebiten.RunGame(v)
}
