package garden

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// mapResolver resolves from a fixed table and counts calls.
type mapResolver struct {
	images map[string]*ebiten.Image
	calls  atomic.Int32
	gate   chan struct{} // when non-nil, Resolve blocks until closed
}

func (r *mapResolver) Resolve(_ context.Context, path string) (*ebiten.Image, error) {
	if r.gate != nil {
		<-r.gate
	}
	r.calls.Add(1)
	img, ok := r.images[path]
	if !ok {
		return nil, errors.New("asset not found: " + path)
	}
	return img, nil
}

// settleAsset pumps Update until the path leaves LoadLoading.
func settleAsset(t *testing.T, c *AssetCache, path string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.Update()
		if s := c.State(path); s != LoadLoading {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("asset %q never finished loading", path)
}

func TestAssetCacheLoadAndFail(t *testing.T) {
	resolver := &mapResolver{images: map[string]*ebiten.Image{
		"hills/far.png": ebiten.NewImage(8, 8),
	}}
	cache := NewAssetCache(resolver)
	ctx := context.Background()

	if cache.State("hills/far.png") != LoadIdle {
		t.Fatal("unrequested asset should be Idle")
	}
	if _, ok := cache.Image("hills/far.png"); ok {
		t.Fatal("unrequested asset should not resolve an image")
	}

	cache.Request(ctx, "hills/far.png")
	cache.Request(ctx, "hills/missing.png")
	settleAsset(t, cache, "hills/far.png")
	settleAsset(t, cache, "hills/missing.png")

	if cache.State("hills/far.png") != LoadReady {
		t.Errorf("loaded asset state = %v, want Ready", cache.State("hills/far.png"))
	}
	if img, ok := cache.Image("hills/far.png"); !ok || img == nil {
		t.Error("loaded asset should resolve an image")
	}
	if cache.State("hills/missing.png") != LoadFailed {
		t.Errorf("missing asset state = %v, want Failed", cache.State("hills/missing.png"))
	}
	if _, ok := cache.Image("hills/missing.png"); ok {
		t.Error("failed asset must render as empty space, not an image")
	}
}

func TestAssetCacheRequestIdempotent(t *testing.T) {
	resolver := &mapResolver{images: map[string]*ebiten.Image{
		"a.png": ebiten.NewImage(4, 4),
	}}
	cache := NewAssetCache(resolver)
	ctx := context.Background()

	cache.Request(ctx, "a.png")
	cache.Request(ctx, "a.png")
	settleAsset(t, cache, "a.png")
	cache.Request(ctx, "a.png") // already Ready
	time.Sleep(20 * time.Millisecond)
	cache.Update()
	if got := resolver.calls.Load(); got != 1 {
		t.Errorf("resolver called %d times, want 1", got)
	}
}

func TestAssetCacheRequestLayers(t *testing.T) {
	resolver := &mapResolver{images: map[string]*ebiten.Image{
		"biome/hills/far.png":  ebiten.NewImage(4, 4),
		"biome/hills/near.png": ebiten.NewImage(4, 4),
	}}
	cache := NewAssetCache(resolver)
	layers, err := CompositeLayers([]Group{twoAssetGroup()})
	if err != nil {
		t.Fatal(err)
	}

	cache.RequestLayers(context.Background(), layers)
	settleAsset(t, cache, "biome/hills/far.png")
	settleAsset(t, cache, "biome/hills/near.png")
	if cache.State("biome/hills/far.png") != LoadReady || cache.State("biome/hills/near.png") != LoadReady {
		t.Error("all referenced layer assets should load")
	}
}

func TestAssetCacheNilResolver(t *testing.T) {
	cache := NewAssetCache(nil)
	cache.Request(context.Background(), "a.png")
	if cache.State("a.png") != LoadFailed {
		t.Errorf("state = %v, want Failed without a resolver", cache.State("a.png"))
	}
}

func TestAssetCacheWarningCallback(t *testing.T) {
	cache := NewAssetCache(&mapResolver{})
	var warned []string
	cache.OnWarning(func(path string, err error) {
		if err == nil {
			t.Error("warning callback should carry the load error")
		}
		warned = append(warned, path)
	})

	cache.Request(context.Background(), "gone.png")
	settleAsset(t, cache, "gone.png")
	if len(warned) != 1 || warned[0] != "gone.png" {
		t.Errorf("warned = %v, want [gone.png]", warned)
	}
}

func TestAssetCacheCloseIgnoresLateResults(t *testing.T) {
	resolver := &mapResolver{
		images: map[string]*ebiten.Image{"a.png": ebiten.NewImage(4, 4)},
		gate:   make(chan struct{}),
	}
	cache := NewAssetCache(resolver)

	cache.Request(context.Background(), "a.png")
	cache.Close()
	close(resolver.gate) // load resolves after teardown

	time.Sleep(50 * time.Millisecond)
	cache.Update()
	if _, ok := cache.Image("a.png"); ok {
		t.Error("resolution arriving after Close must be ignored")
	}

	// A closed cache refuses new requests.
	cache.Request(context.Background(), "b.png")
	if cache.State("b.png") != LoadIdle {
		t.Error("closed cache should not start loads")
	}
}

func TestAssetCacheCloseReleasesPendingLoads(t *testing.T) {
	// More in-flight loads than the results buffer holds: once nothing
	// drains the channel after Close, every excess resolution must still
	// let its goroutine exit instead of blocking on the send forever.
	resolver := &mapResolver{gate: make(chan struct{})}
	cache := NewAssetCache(resolver)
	before := runtime.NumGoroutine()

	ctx := context.Background()
	for i := 0; i < 32; i++ {
		cache.Request(ctx, fmt.Sprintf("petal-%02d.png", i))
	}
	cache.Close()
	cache.Close() // idempotent
	close(resolver.gate)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+2 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("%d goroutines still running after Close, started with %d",
		runtime.NumGoroutine(), before)
}
