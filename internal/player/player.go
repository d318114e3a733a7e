// package player implements the single-slot preview playback controller.
package player

import (
	"sync"
	"time"

	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/charmbracelet/log"
)

// Track is the immutable value loaded into the player.
type Track struct {
	ID         string
	Title      string
	Artist     string
	PreviewURL string
	ImageURL   string
}

// Resource is one loaded audio clip.
//
// At most one Resource is alive system-wide; the controller releases the
// prior one before attaching a replacement.
type Resource interface {
	Play() error
	Pause() error
	Position() time.Duration
	Duration() time.Duration
	Seek(pos time.Duration) error
	Release() error

	// OnFinish registers fn to fire once when playback reaches the natural
	// end of the clip. Replaces any previously registered callback.
	OnFinish(fn func())
}

// Source creates a Resource for a preview URL.
type Source func(previewURL string) (Resource, error)

// Update is the state snapshot delivered to subscribers.
type Update struct {
	Track   *Track
	Playing bool
}

// Listener receives playback state changes.
type Listener func(Update)

// Controller is the now-playing state machine.
//
// States: empty, loaded+playing, loaded+paused. Loading a new track releases
// the prior resource first; a naturally finished track stays loaded with
// playing=false until stopped or replaced.
type Controller struct {
	source Source
	logger *log.Logger

	mu         sync.Mutex
	current    *Track
	resource   Resource
	playing    bool
	generation int
	listeners  []Listener
}

// NewController creates a playback controller over the given resource source.
func NewController(source Source, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{source: source, logger: logger}
}

// Subscribe registers a listener for track and playing-state changes.
func (c *Controller) Subscribe(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) notifyLocked() func() {
	update := Update{Playing: c.playing}
	if c.current != nil {
		track := *c.current
		update.Track = &track
	}
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)

	return func() {
		for _, fn := range listeners {
			fn(update)
		}
	}
}

// CurrentTrack returns the loaded track, or nil when empty.
func (c *Controller) CurrentTrack() *Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	track := *c.current
	return &track
}

// Playing reports whether playback is active. Always false when empty.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Progress reports the playback position and clip duration of the loaded
// resource. Both are zero when nothing is loaded.
func (c *Controller) Progress() (pos, dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resource == nil {
		return 0, 0
	}
	return c.resource.Position(), c.resource.Duration()
}

// Load replaces whatever is playing with the given track and starts it.
//
// The prior resource is fully released before the new one is attached. A
// resource that fails to initialize is logged and swallowed: the controller
// ends up empty rather than recording a half-initialized track.
func (c *Controller) Load(track Track) {
	c.mu.Lock()

	c.releaseLocked()

	resource, err := c.source(track.PreviewURL)
	if err != nil {
		c.logger.Warnf("%v: %v", shared.ErrResourceLoad, err)
		notify := c.notifyLocked()
		c.mu.Unlock()
		notify()
		return
	}

	c.generation++
	generation := c.generation
	resource.OnFinish(func() { c.finished(generation) })

	if err := resource.Play(); err != nil {
		c.logger.Warnf("%v: %v", shared.ErrResourceLoad, err)
		resource.Release()
		notify := c.notifyLocked()
		c.mu.Unlock()
		notify()
		return
	}

	c.resource = resource
	c.current = &track
	c.playing = true

	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// Pause suspends playback without releasing the resource. No-op when empty.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.resource == nil {
		c.mu.Unlock()
		return
	}

	if err := c.resource.Pause(); err != nil {
		c.logger.Warnf("failed to pause %v", err)
	}
	c.playing = false

	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// Resume continues playback. A track paused at its natural end restarts
// from position zero. No-op when empty.
func (c *Controller) Resume() {
	c.mu.Lock()
	if c.resource == nil {
		c.mu.Unlock()
		return
	}

	if c.resource.Position() >= c.resource.Duration() {
		if err := c.resource.Seek(0); err != nil {
			c.logger.Warnf("failed to rewind %v", err)
		}
	}
	if err := c.resource.Play(); err != nil {
		c.logger.Warnf("failed to resume %v", err)
		c.mu.Unlock()
		return
	}
	c.playing = true

	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// Stop releases the resource and clears the loaded track. Idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.resource == nil && c.current == nil {
		c.mu.Unlock()
		return
	}

	c.releaseLocked()

	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// finished handles the resource's natural-completion signal.
//
// The track stays loaded and the resource stays attached; only the playing
// flag drops. A stale signal from an already replaced resource is ignored.
func (c *Controller) finished(generation int) {
	c.mu.Lock()
	if generation != c.generation || c.resource == nil {
		c.mu.Unlock()
		return
	}

	c.playing = false

	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

func (c *Controller) releaseLocked() {
	if c.resource != nil {
		c.resource.OnFinish(nil)
		if err := c.resource.Release(); err != nil {
			c.logger.Warnf("failed to release resource %v", err)
		}
		c.resource = nil
	}
	c.current = nil
	c.playing = false
}
