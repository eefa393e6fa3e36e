// Package export renders recorded trajectories to standalone SVG images, a
// top-down view of the orbit plane.
package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Track is one body's polyline in the image.
type Track struct {
	Name   string
	Color  string
	Points []vec.Vec3
}

const defaultStroke = "#00ff88"

// OrbitSVG draws every track into one square image. A single scale serves
// both axes so orbits keep their shape, centered on the origin of the
// recorded frame (the barycenter).
func OrbitSVG(tracks []Track, size int) string {
	maxR := 1e-12
	for _, tr := range tracks {
		for _, p := range tr.Points {
			if r := math.Max(math.Abs(p.X), math.Abs(p.Y)); r > maxR {
				maxR = r
			}
		}
	}
	scale := float64(size) / 2 / (maxR * 1.1)
	half := float64(size) / 2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for _, tr := range tracks {
		if len(tr.Points) < 2 {
			continue
		}
		color := tr.Color
		if color == "" {
			color = defaultStroke
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, p := range tr.Points {
			x := half + p.X*scale
			y := half - p.Y*scale
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		last := tr.Points[len(tr.Points)-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, half+last.X*scale, half-last.Y*scale, color, tr.Name))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteOrbitSVG renders the tracks and writes the image to path.
func WriteOrbitSVG(path string, tracks []Track, size int) error {
	return os.WriteFile(path, []byte(OrbitSVG(tracks, size)), 0644)
}
