package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pendsim/internal/history"
)

// PhaseSVG draws angle against velocity as a single SVG path. It returns an
// empty string for fewer than two samples.
func PhaseSVG(s history.Series, width, height int, strokeColor string) string {
	n := s.Len()
	if n < 2 {
		return ""
	}

	minX, maxX := s.Angle[0], s.Angle[0]
	minY, maxY := s.Velocity[0], s.Velocity[0]
	for i := 0; i < n; i++ {
		minX = min(minX, s.Angle[i])
		maxX = max(maxX, s.Angle[i])
		minY = min(minY, s.Velocity[i])
		maxY = max(maxY, s.Velocity[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i := 0; i < n; i++ {
		x := (s.Angle[i] - minX) / rangeX * float64(width)
		y := float64(height) - (s.Velocity[i]-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
