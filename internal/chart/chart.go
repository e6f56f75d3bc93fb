// Package chart owns the state of one rendered chart: the loaded series,
// the active range and selection, the derived geometry and the pointer
// interaction built on top of it.
package chart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/marketchart/internal/geometry"
	"github.com/iwvelando/marketchart/internal/interaction"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/change"
	"github.com/iwvelando/marketchart/pkg/datetime"
	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// Token identifies one data request. Tokens increase monotonically per chart.
type Token uint64

// Chart is one chart instance. All methods are safe for concurrent use; each
// state change recomputes a complete snapshot before it becomes visible.
type Chart struct {
	mu     sync.Mutex
	id     string
	logger *zap.Logger
	opts   Options

	issued  Token
	applied Token

	loaded    []series.Series
	selection map[string]bool
	rng       series.RangeKey

	out  Output
	ctrl *interaction.Controller
}

// New creates an empty chart.
func New(logger *zap.Logger, opts Options) *Chart {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()
	c := &Chart{
		id:     uuid.NewString(),
		opts:   opts,
		rng:    opts.Range,
		ctrl:   interaction.NewController(opts.FrameRate),
		logger: logger,
	}
	c.logger = logger.With(zap.String("chart", c.id))
	c.rebuild()
	return c
}

// ID returns the chart's instance identifier.
func (c *Chart) ID() string {
	return c.id
}

// BeginRequest issues the token for a new data request. Any response carrying
// an older token will be discarded by Apply.
func (c *Chart) BeginRequest() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Apply replaces the loaded series with the response for token. It returns
// false, leaving the chart untouched, when a newer request has been issued
// since token.
func (c *Chart) Apply(token Token, in []series.Series) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.issued || token <= c.applied {
		c.logger.Debug("discarding stale response",
			zap.String("op", "chart.Apply"),
			zap.Uint64("token", uint64(token)),
			zap.Uint64("latest", uint64(c.issued)),
		)
		return false
	}
	c.applied = token
	c.loaded = append([]series.Series(nil), in...)
	c.rebuild()

	c.logger.Debug("applied series",
		zap.String("op", "chart.Apply"),
		zap.Uint64("token", uint64(token)),
		zap.Int("series", len(in)),
		zap.Int("keys", len(c.out.Keys)),
	)
	return true
}

// Load is BeginRequest followed by Apply for callers with the data at hand.
func (c *Chart) Load(in []series.Series) {
	c.Apply(c.BeginRequest(), in)
}

// SetRange switches the period preset. Unknown presets are ignored and
// reported as false.
func (c *Chart) SetRange(r series.RangeKey) bool {
	r, ok := series.ParseRangeKey(string(r))
	if !ok {
		c.logger.Warn("ignoring unknown range",
			zap.String("op", "chart.SetRange"),
			zap.String("range", string(r)),
		)
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng = r
	c.rebuild()
	return true
}

// SetSelection limits the visible series to names. An empty list shows all
// loaded series.
func (c *Chart) SetSelection(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(names) == 0 {
		c.selection = nil
	} else {
		c.selection = make(map[string]bool, len(names))
		for _, n := range names {
			c.selection[n] = true
		}
	}
	c.rebuild()
}

// Render returns the current snapshot's render output.
func (c *Chart) Render() Output {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out
}

// PointerMove queues a pointer position for the next frame.
func (c *Chart) PointerMove(ev interaction.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctrl.PointerMove(ev)
}

// Frame runs the pending pointer recomputation, if the frame budget allows.
func (c *Chart) Frame(now time.Time) (interaction.Update, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Frame(now)
}

// PointerLeave hides crosshair and tooltip.
func (c *Chart) PointerLeave() interaction.Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.PointerLeave()
}

// rebuild recomputes the snapshot from the loaded series and resets the
// interaction state. Callers hold c.mu.
func (c *Chart) rebuild() {
	visible := c.visible()
	vp := c.opts.Viewport

	alignOpts := series.AlignmentOptions{GapPolicy: c.opts.GapPolicy, Calendar: c.opts.Calendar}
	if last, ok := lastKey(visible); ok && c.rng != series.RangeMax {
		alignOpts.RangeStart = series.WindowStart(last, c.rng.Days())
	}
	frame := series.Align(visible, alignOpts)

	relative := c.relative(len(visible))
	raw := make([][]float64, len(frame.Columns))
	display := make([][]float64, len(frame.Columns))
	all := make([]float64, 0, len(frame.Columns)*frame.Len())
	for i := range frame.Columns {
		raw[i] = frame.Values(i)
		display[i] = raw[i]
		// A column with no data stays absent instead of a flat zero line.
		if relative && change.FirstFinite(raw[i]) >= 0 {
			display[i] = change.ToRelativeChange(raw[i], c.opts.BaselineIndex)
		}
		all = append(all, display[i]...)
	}

	ratio := c.opts.PaddingRatio
	if ratio == 0 {
		lo, hi, _ := mathutil.MinMax(all)
		ratio = geometry.DynamicPaddingRatio(hi - lo)
	}
	extent := geometry.ComputeExtent(all, ratio)

	out := Output{
		ID:       c.id,
		Range:    c.rng,
		Relative: relative,
		Keys:     make([]string, frame.Len()),
		Viewport: vp,
		Extent:   extent,
		Paths:    make([]Path, len(frame.Columns)),
		XTicks:   geometry.SelectAxisTicks(frame.Keys, c.rng.Days(), vp),
		YTicks:   geometry.ValueTicks(extent, vp, c.opts.ValueTickSteps, relative),
		Stats:    make([]SeriesStats, len(frame.Columns)),
		Frame:    frame,
	}
	for i, k := range frame.Keys {
		out.Keys[i] = k.String()
	}

	views := make([]interaction.SeriesView, len(frame.Columns))
	for i, col := range frame.Columns {
		out.Paths[i] = Path{
			Name:  col.Name,
			Color: col.Color,
			Unit:  col.Unit,
			D:     geometry.BuildPath(geometry.SeriesPoints(display[i], extent, vp)),
		}
		delta, pct := change.PeriodChange(raw[i])
		out.Stats[i] = SeriesStats{
			Name:          col.Name,
			PeriodChange:  delta,
			PeriodPercent: pct,
			Stats:         change.Summarize(raw[i]),
		}
		views[i] = interaction.SeriesView{Identity: col.Identity, Values: raw[i]}
		if relative {
			views[i].Change = display[i]
		}
	}

	c.out = out
	c.ctrl.Reset(interaction.Snapshot{
		Keys:     frame.Keys,
		Series:   views,
		Viewport: vp,
		Relative: relative,
	})
}

func (c *Chart) visible() []series.Series {
	if c.selection == nil {
		return c.loaded
	}
	out := make([]series.Series, 0, len(c.selection))
	for _, s := range c.loaded {
		if c.selection[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

func (c *Chart) relative(visible int) bool {
	switch c.opts.Relative {
	case RelativeAlways:
		return true
	case RelativeNever:
		return false
	default:
		return visible > 1
	}
}

// lastKey returns the latest sample key across in.
func lastKey(in []series.Series) (datetime.PeriodKey, bool) {
	var last datetime.PeriodKey
	found := false
	for _, s := range in {
		if len(s.Samples) == 0 {
			continue
		}
		k := s.Samples[len(s.Samples)-1].Key
		if !found || datetime.Compare(k, last) > 0 {
			last, found = k, true
		}
	}
	return last, found
}
