package garden

import "time"

// Dot placement tuning. Dots live in a horizontal band below the top of the
// viewport; a dot lower in the band gets a higher parallax factor and so
// moves more (reads as nearer).
const (
	dotTopPadFrac = 0.08 // top padding as a fraction of viewport height
	dotBandFrac   = 0.55 // usable band height as a fraction of viewport height
	dotRadiusMin  = 3
	dotRadiusMax  = 9
)

// DefaultDotBand is the default parallax band for story dots.
var DefaultDotBand = Range{Min: 0.35, Max: 0.95}

// Story is one memorial record as returned by the story repository. The
// engine treats the list as append-only read input.
type Story struct {
	ID         string
	AuthorName string
	Text       string
	ImportedAt time.Time
}

// Dot is a deterministic marker for one story, placed within a single
// segment. Screen placement mirrors the three-segment wrap geometry via
// DotScreenX.
type Dot struct {
	ID       string  // story id
	X        float64 // [0, segmentWidth)
	Y        float64
	Radius   float64
	Parallax float64
	Story    Story
}

// PlaceDots derives one dot per story. Each dot's position, radius, and
// parallax factor are a pure function of the story id, the segment width,
// and the viewport height. Returns nil when the segment or band is too small
// to place anything.
func PlaceDots(stories []Story, segmentWidth, viewportHeight float64, band Range) []Dot {
	topPad := viewportHeight * dotTopPadFrac
	bandH := viewportHeight * dotBandFrac
	if int(segmentWidth) < 1 || int(bandH) < 1 {
		return nil
	}

	dots := make([]Dot, 0, len(stories))
	for _, s := range stories {
		rng := NewRNG(HashString(s.ID))
		x := float64(rng.IntRange(0, int(segmentWidth)-1))
		y := topPad + float64(rng.IntRange(0, int(bandH)-1))
		dots = append(dots, Dot{
			ID:       s.ID,
			X:        x,
			Y:        y,
			Radius:   float64(rng.IntRange(dotRadiusMin, dotRadiusMax)),
			Parallax: lerp(band.Min, band.Max, (y-topPad)/bandH),
			Story:    s,
		})
	}
	return dots
}

// DotScreenX maps a dot to screen space for one of the three segment copies
// (tile in {-1, 0, +1}): base position, shifted by whole segments, minus the
// parallax-scaled scroll offset.
func DotScreenX(d Dot, tile int, segmentWidth, offsetX float64) float64 {
	return d.X + float64(tile)*segmentWidth - offsetX*d.Parallax
}

// DotField caches dot placements for a story list and recomputes them only
// when the stories, the segment width, or the viewport height change. Owned
// by the view that mounts it; not safe for concurrent writers.
type DotField struct {
	segW   float64
	band   Range
	height float64

	stories  []Story
	storyKey uint32

	dots  []Dot
	dirty bool

	onActivate func(storyID string)
}

// NewDotField creates an empty dot field for the given segment width and
// parallax band.
func NewDotField(segmentWidth float64, band Range) *DotField {
	return &DotField{segW: segmentWidth, band: band, dirty: true}
}

// SetStories replaces the story list. Placement is invalidated only when the
// records actually changed; positions are a pure function of the ids, so a
// content-only edit refreshes the cached Story payloads without moving any
// dot.
func (f *DotField) SetStories(stories []Story) {
	key := storyListKey(stories)
	if key == f.storyKey && len(stories) == len(f.stories) {
		return
	}
	f.stories = stories
	f.storyKey = key
	f.dirty = true
}

// Resize records a viewport height change, invalidating placement if the
// height differs.
func (f *DotField) Resize(viewportHeight float64) {
	if viewportHeight == f.height {
		return
	}
	f.height = viewportHeight
	f.dirty = true
}

// Dots returns the cached placements, recomputing them if invalidated.
func (f *DotField) Dots() []Dot {
	if f.dirty {
		f.dots = PlaceDots(f.stories, f.segW, f.height, f.band)
		f.dirty = false
	}
	return f.dots
}

// OnDotActivate registers the host callback invoked when a dot is activated.
func (f *DotField) OnDotActivate(fn func(storyID string)) {
	f.onActivate = fn
}

// HitTest finds the dot whose rendered circle (in any of the three segment
// copies) contains the given screen point at the current scroll offset.
func (f *DotField) HitTest(screenX, screenY, offsetX float64) (Dot, bool) {
	for _, d := range f.Dots() {
		dy := screenY - d.Y
		if dy*dy > d.Radius*d.Radius {
			continue
		}
		for tile := -1; tile <= 1; tile++ {
			dx := screenX - DotScreenX(d, tile, f.segW, offsetX)
			if dx*dx+dy*dy <= d.Radius*d.Radius {
				return d, true
			}
		}
	}
	return Dot{}, false
}

// Activate surfaces the dot's story to the host. The callback is the only
// externally observable side effect of dot interaction.
func (f *DotField) Activate(d Dot) {
	if f.onActivate != nil {
		f.onActivate(d.ID)
	}
}

// storyListKey hashes the ordered story records (id, author, text) so
// SetStories can detect real changes cheaply, including edits that keep the
// id but change the content a dot activation would surface.
func storyListKey(stories []Story) uint32 {
	h := fnvOffset32
	// Separator after each field so ["ab","c"] and ["a","bc"] key differently.
	mix := func(s string) {
		for i := 0; i < len(s); i++ {
			h ^= uint32(s[i])
			h *= fnvPrime32
		}
		h ^= 0xff
		h *= fnvPrime32
	}
	for _, s := range stories {
		mix(s.ID)
		mix(s.AuthorName)
		mix(s.Text)
	}
	return h
}
