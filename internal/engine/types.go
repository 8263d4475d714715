package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/traverse"
)

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Frame is one step as handed to a renderer. Exactly one of Sort and Graph
// is meaningful, selected by Kind.
type Frame struct {
	RunID     uint64
	Seq       int
	Algorithm string
	Kind      algo.Kind
	Sort      sorting.Step[int]
	Graph     traverse.Step
	Status    string
	Final     bool
}

func (f Frame) IsGrid() bool { return f.Kind == algo.KindGrid }

type Renderer interface {
	Render(f Frame) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(f Frame) error

func (fn RenderFunc) Render(f Frame) error { return fn(f) }

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Config struct {
	Algorithm string
	Speed     int
	Size      int
	Min       int
	Max       int
	Rows      int
	Cols      int
	Walls     float64
}

func DefaultConfig() Config {
	return Config{
		Algorithm: algo.Default,
		Speed:     DefaultSpeed,
		Size:      40,
		Min:       10,
		Max:       300,
		Rows:      8,
		Cols:      12,
	}
}

// Result is a drained run.
type Result struct {
	Algorithm string
	Frames    []Frame
	Metrics   map[string]float64
}

func (r *Result) Last() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}
