package garden

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// errNoResolver marks requests made without an AssetResolver configured.
var errNoResolver = errors.New("no asset resolver configured")

// AssetResolver turns an opaque asset path into a displayable image. The
// engine never inspects image bytes; layout uses only the natural size
// declared in the layer configuration.
type AssetResolver interface {
	Resolve(ctx context.Context, path string) (*ebiten.Image, error)
}

type assetResult struct {
	gen  int
	path string
	img  *ebiten.Image
	err  error
}

type assetSlot struct {
	state LoadState
	img   *ebiten.Image
	err   error
}

// AssetCache loads images fire-and-forget through an AssetResolver. While an
// asset is pending or failed, its layer simply renders empty space; a
// missing image is never fatal to the scene. Resolutions arriving after
// Close are ignored.
//
// All mutation happens in Request and Update, both called from the owning
// view's handlers.
type AssetCache struct {
	resolver AssetResolver
	slots    map[string]*assetSlot
	results  chan assetResult
	done     chan struct{}
	gen      int
	closed   bool

	// onWarning, when set, surfaces failed loads to the host. Optional.
	onWarning func(path string, err error)
}

// NewAssetCache creates an empty cache over the given resolver.
func NewAssetCache(resolver AssetResolver) *AssetCache {
	return &AssetCache{
		resolver: resolver,
		slots:    make(map[string]*assetSlot),
		results:  make(chan assetResult, 16),
		done:     make(chan struct{}),
	}
}

// OnWarning registers an optional host callback for failed asset loads.
func (c *AssetCache) OnWarning(fn func(path string, err error)) {
	c.onWarning = fn
}

// Request ensures a load is in flight (or finished) for the given path.
// Idempotent: repeated requests for the same path are no-ops.
func (c *AssetCache) Request(ctx context.Context, path string) {
	if c.closed {
		return
	}
	if _, ok := c.slots[path]; ok {
		return
	}
	if c.resolver == nil {
		c.slots[path] = &assetSlot{state: LoadFailed, err: errNoResolver}
		return
	}
	c.slots[path] = &assetSlot{state: LoadLoading}
	gen := c.gen

	go func() {
		img, err := c.resolver.Resolve(ctx, path)
		// Nothing drains results after Close, so the send must never block
		// on a torn-down cache or the goroutine leaks.
		select {
		case c.results <- assetResult{gen: gen, path: path, img: img, err: err}:
		case <-c.done:
		}
	}()
}

// RequestLayers requests every asset referenced by the given layers.
func (c *AssetCache) RequestLayers(ctx context.Context, layers []Layer) {
	for i := range layers {
		for _, s := range layers[i].Sprites {
			c.Request(ctx, s.AssetRef)
		}
	}
}

// Update drains completed loads into the cache. Must be called from the
// owning view's update handler.
func (c *AssetCache) Update() {
	for {
		select {
		case res := <-c.results:
			if c.closed || res.gen != c.gen {
				continue
			}
			slot, ok := c.slots[res.path]
			if !ok {
				continue
			}
			if res.err != nil {
				slot.state = LoadFailed
				slot.err = res.err
				if c.onWarning != nil {
					c.onWarning(res.path, res.err)
				}
				continue
			}
			slot.state = LoadReady
			slot.img = res.img
		default:
			return
		}
	}
}

// Image returns the loaded image for path, or (nil, false) while the asset
// is unrequested, pending, or failed.
func (c *AssetCache) Image(path string) (*ebiten.Image, bool) {
	slot, ok := c.slots[path]
	if !ok || slot.state != LoadReady {
		return nil, false
	}
	return slot.img, true
}

// State returns the load state for path (LoadIdle if never requested).
func (c *AssetCache) State(path string) LoadState {
	slot, ok := c.slots[path]
	if !ok {
		return LoadIdle
	}
	return slot.state
}

// Close tears the cache down; in-flight resolutions are ignored afterward
// and their goroutines exit without blocking. Idempotent.
func (c *AssetCache) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	close(c.done)
}
