// Package interaction turns pointer events over a rendered chart into
// crosshair positions and tooltip content.
package interaction

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/iwvelando/marketchart/internal/geometry"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/datetime"
)

// State is the hover state of a chart.
type State int

const (
	Idle State = iota
	Hovering
)

func (s State) String() string {
	if s == Hovering {
		return "hovering"
	}
	return "idle"
}

// Rect is the displayed bounding box of the rendering surface in client
// pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointerEvent is one pointer-move sample in client pixels.
type PointerEvent struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	Surface Rect    `json:"surface"`
}

// SeriesView is one visible series as drawn. Change is nil unless the chart
// is in relative mode.
type SeriesView struct {
	series.Identity
	Values []float64
	Change []float64
}

// Snapshot is the immutable render state the controller reads from.
type Snapshot struct {
	Keys     []datetime.PeriodKey
	Series   []SeriesView
	Viewport geometry.Viewport
	Relative bool
}

// Update is what the rendering layer needs after an interaction step.
type Update struct {
	State      State   `json:"state"`
	Index      int     `json:"index"`
	CrosshairX float64 `json:"crosshairX"`
	Tooltip    Tooltip `json:"tooltip"`
	Generation uint64  `json:"generation"`
}

// Visible reports whether the crosshair and tooltip should be shown.
func (u Update) Visible() bool {
	return u.State == Hovering
}

// Controller owns the hover state of one chart. It is not safe for
// concurrent use; the chart that owns it serializes access.
type Controller struct {
	limiter    *rate.Limiter
	snap       Snapshot
	state      State
	hovered    int
	pending    *PointerEvent
	generation uint64
}

// NewController returns an idle controller that recomputes at most frameRate
// times per second. Non-positive rates use DefaultFrameRate.
func NewController(frameRate int) *Controller {
	if frameRate <= 0 {
		frameRate = constants.DefaultFrameRate
	}
	return &Controller{
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(frameRate)), 1),
		hovered: -1,
	}
}

// State returns the current hover state.
func (c *Controller) State() State {
	return c.state
}

// HoveredIndex returns the hovered sample index, or -1.
func (c *Controller) HoveredIndex() int {
	return c.hovered
}

// Generation counts resets; updates carry the generation they were built in.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Pending reports whether a pointer event is waiting for a frame.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// PointerMove records ev as the latest pointer position. Events arriving
// before the next frame replace each other.
func (c *Controller) PointerMove(ev PointerEvent) {
	c.pending = &ev
}

// Frame runs at most one recomputation for the latest pending event. It
// returns false when nothing is pending or the frame budget is spent; a
// throttled event stays pending for the next frame.
func (c *Controller) Frame(now time.Time) (Update, bool) {
	if c.pending == nil {
		return Update{}, false
	}
	if !c.limiter.AllowN(now, 1) {
		return Update{}, false
	}
	ev := *c.pending
	c.pending = nil
	return c.recompute(ev), true
}

// PointerLeave clears the hover and hides crosshair and tooltip.
func (c *Controller) PointerLeave() Update {
	c.pending = nil
	return c.idle()
}

// Reset swaps in a new snapshot, drops any pending pointer state and returns
// to Idle. Call it on every data, range or selection change.
func (c *Controller) Reset(s Snapshot) Update {
	c.snap = s
	c.pending = nil
	c.generation++
	return c.idle()
}

func (c *Controller) idle() Update {
	c.state = Idle
	c.hovered = -1
	return Update{State: Idle, Index: -1, Generation: c.generation}
}

func (c *Controller) recompute(ev PointerEvent) Update {
	n := len(c.snap.Keys)
	if n == 0 {
		return c.idle()
	}
	vp := c.snap.Viewport
	x := InternalX(ev, vp)
	idx := NearestIndex(x, n, vp)

	c.state = Hovering
	c.hovered = idx
	return Update{
		State:      Hovering,
		Index:      idx,
		CrosshairX: geometry.IndexToX(idx, n, vp),
		Tooltip:    BuildTooltip(c.snap, idx),
		Generation: c.generation,
	}
}

// InternalX converts a client x coordinate into viewport units using the
// ratio between the surface's displayed width and the viewport width.
func InternalX(ev PointerEvent, vp geometry.Viewport) float64 {
	offset := ev.ClientX - ev.Surface.Left
	if ev.Surface.Width <= 0 {
		return offset
	}
	return offset / ev.Surface.Width * vp.Width
}

// NearestIndex returns the sample index whose x position is closest to x.
// Ties resolve to the earlier index. count must be positive.
func NearestIndex(x float64, count int, vp geometry.Viewport) int {
	best, bestDist := 0, -1.0
	for i := 0; i < count; i++ {
		d := geometry.IndexToX(i, count, vp) - x
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
