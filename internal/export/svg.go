package export

import (
	"fmt"
	"slices"
	"strings"
)

const (
	background  = "#0a0a0a"
	barColor    = "#4a9eff"
	activeColor = "#ff6b6b"
)

// BarsToSVG draws values as vertical bars. Indices listed in active are
// drawn in the highlight color.
func BarsToSVG(values, active []int, width, height int) string {
	if len(values) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	maxV := slices.Max(values)
	if maxV <= 0 {
		maxV = 1
	}

	var sb strings.Builder
	writeHeader(&sb, width, height)

	slot := float64(width) / float64(len(values))
	gap := slot * 0.1
	for i, v := range values {
		h := float64(v) / float64(maxV) * float64(height)
		if h < 1 {
			h = 1
		}
		fill := barColor
		if slices.Contains(active, i) {
			fill = activeColor
		}
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*slot+gap/2, float64(height)-h, slot-gap, h, fill)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws data as a polyline scaled to fit the canvas with a 10%
// margin on each axis.
func SeriesToSVG(data []float64, width, height int, strokeColor string) string {
	if len(data) < 2 {
		return ""
	}

	minY, maxY := slices.Min(data), slices.Max(data)
	rangeX := float64(len(data) - 1)
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	writeHeader(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, y := range data {
		px := float64(i) / rangeX * float64(width)
		py := float64(height) - (y-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
