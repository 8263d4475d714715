package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/grid"
)

const (
	width       = 80
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	colorReset  = "\033[0m"
	colorActive = "\033[31m"
	colorSorted = "\033[32m"
	colorPath   = "\033[35m"
	colorSeen   = "\033[36m"
)

// LiveRenderer draws every frame to w as plain ANSI text: vertical bars for
// sequences and a character grid for traversals.
type LiveRenderer struct {
	w      io.Writer
	reg    *algo.Registry
	canvas [][]cell
	// Clear redraws in place. Without it frames are appended, which suits
	// logs and pipes.
	Clear bool
}

type cell struct {
	r     rune
	color string
}

func NewLiveRenderer(w io.Writer, reg *algo.Registry) *LiveRenderer {
	canvas := make([][]cell, height)
	for i := range canvas {
		canvas[i] = make([]cell, width)
	}
	return &LiveRenderer{w: w, reg: reg, canvas: canvas, Clear: true}
}

func (r *LiveRenderer) Render(f engine.Frame) error {
	r.clear()
	if f.IsGrid() {
		r.drawGrid(f.Graph.Grid)
	} else {
		r.drawBars(f.Sort.Values, f.Sort.IsActive, f.Sort.IsSorted)
	}
	return r.render(f)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = cell{r: ' '}
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune, color string) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = cell{r: c, color: color}
	}
}

// drawBars draws one column per value. More values than the canvas is wide
// are bucketed: a column shows its tallest value, is active if any member is
// and sorted only if every member is.
func (r *LiveRenderer) drawBars(values []int, active, sorted func(int) bool) {
	n := len(values)
	if n == 0 {
		return
	}

	cols := min(n, width)
	bw := width / cols
	maxVal := 1
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	for col := 0; col < cols; col++ {
		lo, hi := col*n/cols, (col+1)*n/cols
		v, isActive, isSorted := 0, false, true
		for i := lo; i < hi; i++ {
			v = max(v, values[i])
			isActive = isActive || active(i)
			isSorted = isSorted && sorted(i)
		}

		color, c := "", '|'
		switch {
		case isActive:
			color, c = colorActive, '#'
		case isSorted:
			color, c = colorSorted, '='
		}
		bh := max(1, v*height/maxVal)
		barW := max(1, bw-1)
		for y := height - 1; y >= height-bh; y-- {
			for dx := 0; dx < barW; dx++ {
				r.set(col*bw+dx, y, c, color)
			}
		}
	}
}

func (r *LiveRenderer) drawGrid(s grid.Snapshot) {
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			c, color := Glyph(s.At(row, col)), ""
			switch c {
			case 'o':
				color = colorSeen
			case '*':
				color = colorPath
			case 'S', 'E':
				color = colorSorted
			}
			r.set(col*2, row, c, color)
		}
	}
}

// Glyph is the character for a node: S start, E end, # wall, * path,
// o visited, . unvisited.
func Glyph(n grid.Node) rune {
	switch {
	case n.IsStart:
		return 'S'
	case n.IsEnd:
		return 'E'
	case n.Wall:
		return '#'
	case n.IsPath:
		return '*'
	case n.Visited:
		return 'o'
	default:
		return '.'
	}
}

func (r *LiveRenderer) render(f engine.Frame) error {
	var b strings.Builder
	if r.Clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "  %s  step %d\n", r.reg.Info(f.Algorithm).Name, f.Seq)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		last := ""
		for _, c := range row {
			if c.color != last {
				if c.color == "" {
					b.WriteString(colorReset)
				} else {
					b.WriteString(c.color)
				}
				last = c.color
			}
			b.WriteRune(c.r)
		}
		if last != "" {
			b.WriteString(colorReset)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString("  " + f.Status + "\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *LiveRenderer) Start() { io.WriteString(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.w, showCursor) }
