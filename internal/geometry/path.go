package geometry

import (
	"strconv"
	"strings"

	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// Point is a coordinate in viewport units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BuildPath returns an SVG polyline command "M x0,y0 L x1,y1 ...". Empty
// input yields "".
func BuildPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(coord(p.X))
		b.WriteByte(',')
		b.WriteString(coord(p.Y))
	}
	return b.String()
}

// SeriesPoints places every finite value at its index. Absent values are
// skipped so the line joins the neighbouring samples.
func SeriesPoints(values []float64, e Extent, vp Viewport) []Point {
	points := make([]Point, 0, len(values))
	for i, v := range values {
		if !mathutil.IsFinite(v) {
			continue
		}
		points = append(points, Point{
			X: IndexToX(i, len(values), vp),
			Y: ValueToY(v, e, vp),
		})
	}
	return points
}

func coord(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', -1, 64)
}
