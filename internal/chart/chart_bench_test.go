package chart

import (
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/marketchart/internal/interaction"
	"github.com/iwvelando/marketchart/internal/series"
)

func benchSeries(b *testing.B, count, days int) []series.Series {
	out := make([]series.Series, count)
	for i := range out {
		out[i] = dailySeries(b, fmt.Sprintf("s%d", i), "20150101", ramp(days, float64(100+i*10), 0.5)...)
	}
	return out
}

func BenchmarkLoadTenYears(b *testing.B) {
	in := benchSeries(b, 5, 3650)
	c := New(nil, Options{Range: series.RangeMax})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Load(in)
	}
}

func BenchmarkHoverFrame(b *testing.B) {
	c := New(nil, Options{Range: series.RangeMax, FrameRate: 1000000})
	c.Load(benchSeries(b, 5, 3650))
	surface := interaction.Rect{Width: 1200, Height: 400}
	now := time.Unix(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.PointerMove(interaction.PointerEvent{ClientX: float64(i % 1200), Surface: surface})
		now = now.Add(time.Second)
		c.Frame(now)
	}
}
