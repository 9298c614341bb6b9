package garden

import "context"

// LoadState models one asynchronous boundary fetch. The renderer consumes the
// state; how the fetch is triggered is decoupled from the render loop.
type LoadState uint8

const (
	LoadIdle    LoadState = iota // nothing requested yet
	LoadLoading                  // request in flight
	LoadReady                    // data available
	LoadFailed                   // request failed
)

// String returns a human-readable name for the load state.
func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "Idle"
	case LoadLoading:
		return "Loading"
	case LoadReady:
		return "Ready"
	case LoadFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// StoryPage is one page of ordered repository results. An empty NextCursor
// marks the final page.
type StoryPage struct {
	Stories    []Story
	NextCursor string
}

// StoryRepository is the external story source. The engine treats it as
// append-only read input; validation and moderation happen elsewhere.
type StoryRepository interface {
	FetchPage(ctx context.Context, cursor string, limit int) (StoryPage, error)
}

type storyResult struct {
	gen  int
	page StoryPage
	err  error
}

// StoryFeed accumulates repository pages behind a LoadState machine. Fetches
// are fire-and-forget: a goroutine performs the boundary call and posts the
// result to a channel that Update drains on the owning view's frame, so all
// state mutation stays single-threaded. Results arriving after Close are
// ignored.
type StoryFeed struct {
	repo     StoryRepository
	pageSize int

	state   LoadState
	stories []Story
	err     error
	cursor  string
	done    bool // final page consumed

	results chan storyResult
	gen     int
	closed  bool
}

// NewStoryFeed creates a feed over the given repository with the given page
// size.
func NewStoryFeed(repo StoryRepository, pageSize int) *StoryFeed {
	return &StoryFeed{
		repo:     repo,
		pageSize: pageSize,
		results:  make(chan storyResult, 1),
	}
}

// State returns the feed's current load state.
func (f *StoryFeed) State() LoadState {
	return f.state
}

// Stories returns all stories accumulated so far, in repository order.
// The returned slice MUST NOT be mutated.
func (f *StoryFeed) Stories() []Story {
	return f.stories
}

// Err returns the most recent fetch error, if the feed is in LoadFailed.
func (f *StoryFeed) Err() error {
	return f.err
}

// Exhausted reports whether the final repository page has been consumed.
func (f *StoryFeed) Exhausted() bool {
	return f.done
}

// Fetch starts loading the next page unless a fetch is already in flight,
// the feed is exhausted, or the feed is closed. The render loop is never
// blocked: the boundary call runs on its own goroutine.
func (f *StoryFeed) Fetch(ctx context.Context) {
	if f.closed || f.done || f.state == LoadLoading {
		return
	}
	f.state = LoadLoading
	gen := f.gen
	cursor := f.cursor

	go func() {
		page, err := f.repo.FetchPage(ctx, cursor, f.pageSize)
		f.results <- storyResult{gen: gen, page: page, err: err}
	}()
}

// Update drains any completed fetch and folds it into the feed. Must be
// called from the owning view's update handler; it is the only place feed
// state mutates. Reports whether the story list changed.
func (f *StoryFeed) Update() bool {
	select {
	case res := <-f.results:
		if f.closed || res.gen != f.gen {
			return false
		}
		if res.err != nil {
			f.state = LoadFailed
			f.err = res.err
			return false
		}
		f.state = LoadReady
		f.err = nil
		f.stories = append(f.stories, res.page.Stories...)
		f.cursor = res.page.NextCursor
		f.done = res.page.NextCursor == ""
		return len(res.page.Stories) > 0
	default:
		return false
	}
}

// Close tears the feed down. In-flight fetches may still complete, but their
// results no longer affect the feed.
func (f *StoryFeed) Close() {
	f.closed = true
	f.gen++
}
