package physics

import (
	"math"

	"github.com/san-kum/pendsim/internal/params"
)

// Point is a position in metres relative to the pivot, x to the right and
// y downwards.
type Point struct{ X, Y float64 }

// BarShape is the outline of the bar rotated by theta about the pivot.
type BarShape struct {
	Top     Point
	Bottom  Point
	Corners [4]Point
}

// Bar places the bar at angle theta. The top end sits length*ratio above the
// pivot and the bottom end length*(1-ratio) below it.
func Bar(theta float64, v params.Values) BarShape {
	sin, cos := math.Sincos(theta)
	up := v[params.Length] * v[params.PivotRatio]
	down := v[params.Length] * (1 - v[params.PivotRatio])

	top := Point{X: up * sin, Y: -up * cos}
	bottom := Point{X: -down * sin, Y: down * cos}

	half := v[params.Width] / 2
	hc, hs := half*cos, half*sin
	return BarShape{
		Top:    top,
		Bottom: bottom,
		Corners: [4]Point{
			{top.X - hc, top.Y - hs},
			{top.X + hc, top.Y + hs},
			{bottom.X + hc, bottom.Y + hs},
			{bottom.X - hc, bottom.Y - hs},
		},
	}
}
