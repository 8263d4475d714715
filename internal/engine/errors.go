package engine

import "errors"

var (
	// ErrNotIdle indicates Start or Load while a run is in progress.
	ErrNotIdle = errors.New("engine: a run is already in progress")

	// ErrInvalidConfig indicates engine settings that cannot produce input.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

// RenderError wraps a renderer failure with the frame it failed on.
type RenderError struct {
	RunID   uint64
	Seq     int
	Wrapped error
}

func (e *RenderError) Error() string {
	return "engine: render failed: " + e.Wrapped.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Wrapped
}
