package metrics

import "github.com/san-kum/algoviz/internal/engine"

// Steps counts frames.
type Steps struct {
	name  string
	count int
}

func NewSteps() *Steps {
	return &Steps{name: "steps"}
}

func (s *Steps) Name() string { return s.name }

func (s *Steps) Observe(f engine.Frame) { s.count++ }

func (s *Steps) Value() float64 { return float64(s.count) }

func (s *Steps) Reset() { s.count = 0 }
