package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iwvelando/marketchart/internal/interaction"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/testutil"
)

func dailySeries(t testing.TB, name, start string, values ...float64) series.Series {
	t.Helper()
	s, dropped := series.NewSeries(series.Identity{Name: name, Color: "#" + name}, testutil.DailyPoints(start, values...))
	require.Zero(t, dropped)
	return s
}

func ramp(n int, from, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func TestApplyDiscardsStaleTokens(t *testing.T) {
	c := New(zaptest.NewLogger(t), Options{Range: series.RangeMax})

	first := c.BeginRequest()
	second := c.BeginRequest()
	assert.Greater(t, second, first)

	fresh := dailySeries(t, "fresh", "20240101", 1, 2, 3)
	stale := dailySeries(t, "stale", "20230101", 9, 9)

	require.True(t, c.Apply(second, []series.Series{fresh}))
	assert.False(t, c.Apply(first, []series.Series{stale}), "late response for an older request")
	assert.False(t, c.Apply(second, []series.Series{stale}), "a token applies once")

	out := c.Render()
	require.Len(t, out.Paths, 1)
	assert.Equal(t, "fresh", out.Paths[0].Name)
	assert.Equal(t, []string{"20240101", "20240102", "20240103"}, out.Keys)
}

func TestApplyBeforeNewerRequestResolves(t *testing.T) {
	c := New(nil, Options{})
	old := c.BeginRequest()
	_ = c.BeginRequest()

	assert.False(t, c.Apply(old, []series.Series{dailySeries(t, "x", "20240101", 1)}))
	assert.Empty(t, c.Render().Keys)
}

func TestRenderEmpty(t *testing.T) {
	c := New(nil, Options{})
	out := c.Render()

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, series.DefaultRange, out.Range)
	assert.Empty(t, out.Keys)
	assert.Empty(t, out.Paths)
	assert.Empty(t, out.XTicks)
	assert.Len(t, out.YTicks, 6)
	assert.False(t, out.Relative)
}

func TestRenderSingleSeriesIsAbsolute(t *testing.T) {
	c := New(nil, Options{Range: series.RangeMax})
	c.Load([]series.Series{dailySeries(t, "KCCI", "20240101", 1000, 1100, 900)})

	out := c.Render()
	assert.False(t, out.Relative)
	require.Len(t, out.Paths, 1)
	assert.True(t, strings.HasPrefix(out.Paths[0].D, "M 80,"))
	assert.Equal(t, 2, strings.Count(out.Paths[0].D, " L "))
	assert.Less(t, out.Extent.Min, 900.0)
	assert.Greater(t, out.Extent.Max, 1100.0)

	col := testutil.FindColumn(out.Frame, "KCCI")
	require.NotNil(t, col)
	assert.Len(t, col.Cells, 3)
	assert.Nil(t, testutil.FindColumn(out.Frame, "missing"))

	st := out.Stats[0]
	assert.True(t, st.HasData)
	assert.Equal(t, 900.0, st.Current)
	assert.Equal(t, 1100.0, st.High)
	assert.InDelta(t, -100, st.PeriodChange, 1e-9)
	assert.InDelta(t, -10, st.PeriodPercent, 1e-9)
}

func TestRenderRelativeModes(t *testing.T) {
	a := dailySeries(t, "A", "20240101", 100, 110, 90)
	b := dailySeries(t, "B", "20240101", 10, 12, 8)

	tests := []struct {
		name     string
		mode     RelativeMode
		in       []series.Series
		relative bool
		maxAbs   float64
	}{
		{"auto with one series", RelativeAuto, []series.Series{a}, false, 0},
		{"auto with two series", RelativeAuto, []series.Series{a, b}, true, 20},
		{"always", RelativeAlways, []series.Series{a}, true, 10},
		{"never", RelativeNever, []series.Series{a, b}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil, Options{Range: series.RangeMax, Relative: tt.mode})
			c.Load(tt.in)
			out := c.Render()
			assert.Equal(t, tt.relative, out.Relative)
			if tt.relative {
				assert.True(t, strings.HasSuffix(out.YTicks[0].Label, "%"))
				assert.InDelta(t, tt.maxAbs, out.Extent.Max, 1)
				assert.InDelta(t, -tt.maxAbs, out.Extent.Min, 1)
			}
		})
	}
}

func TestSetRangeWindowsFromLastKey(t *testing.T) {
	c := New(nil, Options{Range: series.RangeMax})
	c.Load([]series.Series{dailySeries(t, "fx", "20240101", ramp(30, 1300, 1)...)})
	require.Len(t, c.Render().Keys, 30)

	require.True(t, c.SetRange(series.Range1W))
	out := c.Render()
	assert.Equal(t, series.Range1W, out.Range)
	require.Len(t, out.Keys, 8)
	assert.Equal(t, "20240123", out.Keys[0])
	assert.Equal(t, "20240130", out.Keys[7])
	assert.Equal(t, 0, out.XTicks[0].Index)
	assert.Equal(t, 7, out.XTicks[len(out.XTicks)-1].Index)

	assert.False(t, c.SetRange("10Y"))
	assert.Equal(t, series.Range1W, c.Render().Range)

	require.True(t, c.SetRange("max"))
	assert.Len(t, c.Render().Keys, 30)
}

func TestSetSelection(t *testing.T) {
	c := New(nil, Options{Range: series.RangeMax})
	c.Load([]series.Series{
		dailySeries(t, "A", "20240101", 1, 2),
		dailySeries(t, "B", "20240102", 5, 6),
	})
	require.Len(t, c.Render().Paths, 2)
	assert.Len(t, c.Render().Keys, 3)

	c.SetSelection([]string{"B"})
	out := c.Render()
	require.Len(t, out.Paths, 1)
	assert.Equal(t, "B", out.Paths[0].Name)
	assert.Equal(t, []string{"20240102", "20240103"}, out.Keys)
	assert.False(t, out.Relative)

	c.SetSelection(nil)
	assert.Len(t, c.Render().Paths, 2)
}

func TestZeroBaselineRendersFlat(t *testing.T) {
	c := New(nil, Options{Range: series.RangeMax, Relative: RelativeAlways})
	c.Load([]series.Series{dailySeries(t, "Z", "20240101", 0, 5, 10)})

	out := c.Render()
	d := out.Paths[0].D
	parts := strings.Split(strings.TrimPrefix(d, "M "), " L ")
	require.Len(t, parts, 3)
	y := strings.Split(parts[0], ",")[1]
	for _, p := range parts {
		assert.Equal(t, y, strings.Split(p, ",")[1])
	}
}

func TestHoverThroughChart(t *testing.T) {
	c := New(nil, Options{Range: series.RangeMax})
	c.Load([]series.Series{
		dailySeries(t, "A", "20240101", 100, 110, 90),
		dailySeries(t, "B", "20240101", 10, 12, 8),
	})

	surface := interaction.Rect{Width: 1200, Height: 400}
	c.PointerMove(interaction.PointerEvent{ClientX: 1100, Surface: surface})
	u, ok := c.Frame(time.Unix(0, 0))
	require.True(t, ok)
	assert.Equal(t, 2, u.Index)
	require.Len(t, u.Tooltip.Rows, 2)
	assert.Equal(t, "-10.00%", u.Tooltip.Rows[0].ChangeText)
	assert.Equal(t, "-20.00%", u.Tooltip.Rows[1].ChangeText)

	c.PointerMove(interaction.PointerEvent{ClientX: 80, Surface: surface})
	c.SetSelection([]string{"A"})
	_, ok = c.Frame(time.Unix(1, 0))
	assert.False(t, ok, "selection change discards pending pointer state")

	u = c.PointerLeave()
	assert.False(t, u.Visible())
}

func TestConcurrentLoadAndRender(t *testing.T) {
	c := New(nil, Options{Range: series.RangeMax})
	inputs := make([]series.Series, 8)
	for i := range inputs {
		inputs[i] = dailySeries(t, fmt.Sprintf("s%d", i), "20240101", ramp(20, float64(i+1), 1)...)
	}

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(2)
		go func(s series.Series) {
			defer wg.Done()
			c.Load([]series.Series{s})
		}(inputs[i])
		go func() {
			defer wg.Done()
			out := c.Render()
			for _, p := range out.Paths {
				assert.NotEmpty(t, p.D)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, c.Render().Keys, 20)
}

func TestParseRelativeMode(t *testing.T) {
	m, ok := ParseRelativeMode("")
	assert.True(t, ok)
	assert.Equal(t, RelativeAuto, m)

	m, ok = ParseRelativeMode("always")
	assert.True(t, ok)
	assert.Equal(t, RelativeAlways, m)

	_, ok = ParseRelativeMode("sometimes")
	assert.False(t, ok)
}

func TestRenderStaysFiniteNearFloatLimits(t *testing.T) {
	tests := []struct {
		name     string
		relative RelativeMode
		values   []float64
	}{
		{"span beyond float range", RelativeNever, []float64{1e308, -1e308}},
		{"tiny baseline", RelativeAlways, []float64{1e-300, 1e10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(zaptest.NewLogger(t), Options{Range: series.RangeMax, Relative: tt.relative})
			c.Load([]series.Series{dailySeries(t, "x", "20240101", tt.values...)})
			out := c.Render()

			assert.False(t, math.IsInf(out.Extent.Max-out.Extent.Min, 0), "extent %+v", out.Extent)
			require.Len(t, out.Paths, 1)
			assert.NotContains(t, out.Paths[0].D, "NaN")
			assert.NotContains(t, out.Paths[0].D, "Inf")
			for _, st := range out.Stats {
				for _, v := range []float64{st.PeriodChange, st.PeriodPercent, st.Change, st.ChangePercent, st.Average} {
					assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "stat %v", v)
				}
			}

			_, err := json.Marshal(out)
			require.NoError(t, err)
		})
	}
}

func TestRenderEmptySeriesStaysBlankInRelativeMode(t *testing.T) {
	c := New(zaptest.NewLogger(t), Options{Range: series.RangeMax})
	empty, _ := series.NewSeries(series.Identity{Name: "empty"}, nil)
	c.Load([]series.Series{dailySeries(t, "a", "20240101", 10, 11), empty})

	out := c.Render()
	require.True(t, out.Relative)
	require.Len(t, out.Paths, 2)
	assert.NotEmpty(t, out.Paths[0].D)
	assert.Empty(t, out.Paths[1].D)
	assert.False(t, out.Stats[1].HasData)
}
