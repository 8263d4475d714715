package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/traverse"
)

const (
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 50

	// maxDelay is the delay in milliseconds at speed 0.
	maxDelay = 110
)

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithSleeper replaces the pacing sleep, mostly for tests.
func WithSleeper(s Sleeper) Option { return func(e *Engine) { e.sleep = s } }

// WithRand sets the source for generated inputs.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// Engine runs one algorithm at a time as a paced sequence of frames.
//
// All methods are safe for concurrent use. The renderer is only called from
// control loop goroutines, one frame at a time across runs, and never with a
// frame from a run that Reset has already abandoned.
type Engine struct {
	reg      *algo.Registry
	renderer Renderer
	cfg      Config
	log      *slog.Logger
	sleep    Sleeper

	// renderMu is held across each Render call so a loop abandoned by
	// Reset can never overlap the next run's loop inside the renderer.
	renderMu sync.Mutex

	mu      sync.Mutex
	rng     *rand.Rand
	state   State
	key     string
	speed   int
	values  []int
	grid    *grid.Grid
	runID   uint64
	cancel  context.CancelFunc
	resume  chan struct{} // non-nil while paused; closed to resume
	done    chan struct{}
	err     error
	metrics []Metric
}

func New(reg *algo.Registry, r Renderer, cfg Config, opts ...Option) (*Engine, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if r == nil {
		r = RenderFunc(func(Frame) error { return nil })
	}
	e := &Engine{
		reg:      reg,
		renderer: r,
		cfg:      cfg,
		log:      slog.Default(),
		sleep:    sleepContext,
		metrics:  make([]Metric, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.key = reg.Resolve(cfg.Algorithm)
	e.speed = clampSpeed(cfg.Speed)
	e.regenerate()
	return e, nil
}

func validateConfig(cfg Config) error {
	if cfg.Size < 0 {
		return fmt.Errorf("%w: size must be non-negative, got %d", ErrInvalidConfig, cfg.Size)
	}
	if cfg.Min > cfg.Max {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidConfig, cfg.Min, cfg.Max)
	}
	if cfg.Rows < 1 || cfg.Cols < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, cfg.Rows, cfg.Cols)
	}
	if cfg.Walls < 0 || cfg.Walls >= 1 {
		return fmt.Errorf("%w: wall density must be in [0,1), got %f", ErrInvalidConfig, cfg.Walls)
	}
	return nil
}

func (e *Engine) AddMetric(m Metric) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = append(e.metrics, m)
}

// Metrics returns the current value of every metric for the latest run.
func (e *Engine) Metrics() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Series returns the per-frame samples of the named metric, or nil if no
// such metric keeps samples.
func (e *Engine) Series(name string) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, m := range e.metrics {
		if s, ok := m.(interface{ Series() []float64 }); ok && m.Name() == name {
			return s.Series()
		}
	}
	return nil
}

// Select switches algorithm and resets. Unknown keys select algo.Default.
// It returns the key actually selected.
func (e *Engine) Select(key string) string {
	resolved := e.reg.Resolve(key)
	e.mu.Lock()
	e.key = resolved
	e.mu.Unlock()
	e.Reset()
	return resolved
}

// Load replaces the sequence input. It is only allowed while idle.
func (e *Engine) Load(values []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Idle {
		return ErrNotIdle
	}
	e.values = slices.Clone(values)
	return nil
}

// Start runs the selected algorithm on a copy of the current input. The run
// stops when the producer is exhausted, on Reset, or when ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Idle {
		return ErrNotIdle
	}

	next, err := newSource(e.reg, e.key, slices.Clone(e.values), e.grid.Clone())
	if err != nil {
		return err
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	e.runID++
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.err = nil
	e.state = Running
	e.log.Debug("run started", "run", e.runID, "algorithm", e.key, "speed", e.speed)

	go e.loop(runCtx, e.runID, next, e.done)
	return nil
}

// StartWith selects key, loads values and starts. values is ignored for
// grid algorithms.
func (e *Engine) StartWith(ctx context.Context, key string, values []int) error {
	if e.State() != Idle {
		return ErrNotIdle
	}
	e.Select(key)
	if values != nil {
		if err := e.Load(values); err != nil {
			return err
		}
	}
	return e.Start(ctx)
}

func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Running {
		return
	}
	e.state = Paused
	e.resume = make(chan struct{})
}

func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Paused {
		return
	}
	e.state = Running
	close(e.resume)
	e.resume = nil
}

// Toggle starts when idle and resumes when paused.
func (e *Engine) Toggle(ctx context.Context) error {
	switch e.State() {
	case Idle:
		return e.Start(ctx)
	case Paused:
		e.Resume()
	}
	return nil
}

// Reset abandons any run and generates fresh input. It does not wait for the
// old control loop to exit; frames it may still emit carry a stale RunID.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.resume != nil {
		close(e.resume)
		e.resume = nil
	}
	prev := e.state
	e.state = Idle
	e.err = nil
	e.runID++
	e.regenerate()
	e.log.Debug("reset", "from", prev.String(), "algorithm", e.key, "run", e.runID)
}

// SetSpeed clamps v to [MinSpeed, MaxSpeed] and returns the applied value.
// The new speed applies from the next delay on.
func (e *Engine) SetSpeed(v int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speed = clampSpeed(v)
	return e.speed
}

func (e *Engine) Speed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// Delay is the pause between two frames: 110ms minus the speed.
func (e *Engine) Delay() time.Duration {
	return DelayFor(e.Speed())
}

func DelayFor(speed int) time.Duration {
	return time.Duration(maxDelay-clampSpeed(speed)) * time.Millisecond
}

func clampSpeed(v int) int {
	return max(MinSpeed, min(MaxSpeed, v))
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RunID identifies the current run. It changes on every Start and Reset.
func (e *Engine) RunID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runID
}

func (e *Engine) Algorithm() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.key
}

// Input returns a copy of the sequence the next run will sort.
func (e *Engine) Input() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.values)
}

// Err reports why the last run stopped early, if it did.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Wait blocks until the current run's control loop exits and returns Err.
func (e *Engine) Wait(ctx context.Context) error {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return e.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Preview describes the idle input: the unsorted sequence or the fresh grid,
// with the algorithm's description as status.
func (e *Engine) Preview() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	info := e.reg.Info(e.key)
	f := Frame{
		RunID:     e.runID,
		Algorithm: e.key,
		Kind:      info.Kind,
		Status:    info.Description,
	}
	if info.Kind == algo.KindGrid {
		f.Graph = traverse.Step{Grid: e.grid.Snapshot(), Current: e.grid.Start(), Distance: -1}
	} else {
		f.Sort = sorting.Step[int]{Values: slices.Clone(e.values), Active: []int{}, Sorted: []int{}}
	}
	return f
}

func (e *Engine) loop(ctx context.Context, id uint64, next source, done chan struct{}) {
	defer close(done)

	for seq := 0; ; seq++ {
		f, ok := next()
		if !ok {
			break
		}
		if err := e.waitResume(ctx); err != nil {
			e.stop(id, err)
			return
		}
		if err := ctx.Err(); err != nil {
			e.stop(id, err)
			return
		}

		f.RunID, f.Seq = id, seq
		current, err := e.deliver(id, f)
		if err != nil {
			e.stop(id, &RenderError{RunID: id, Seq: seq, Wrapped: err})
			return
		}
		if !current {
			return
		}
		if err := e.sleep(ctx, e.Delay()); err != nil {
			e.stop(id, err)
			return
		}
	}
	e.stop(id, nil)
}

func (e *Engine) waitResume(ctx context.Context) error {
	for {
		e.mu.Lock()
		gate := e.resume
		e.mu.Unlock()
		if gate == nil {
			return nil
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// deliver observes and renders f unless run id has been superseded, in
// which case it reports false and nothing reaches the renderer.
func (e *Engine) deliver(id uint64, f Frame) (bool, error) {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	if !e.observe(id, f) {
		return false, nil
	}
	return true, e.renderer.Render(f)
}

func (e *Engine) observe(id uint64, f Frame) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runID != id {
		return false
	}
	for _, m := range e.metrics {
		m.Observe(f)
	}
	return true
}

// stop returns the engine to Idle if run id is still current.
func (e *Engine) stop(id uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runID != id {
		return
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.resume != nil {
		close(e.resume)
		e.resume = nil
	}
	e.state = Idle
	e.err = err
	if err != nil {
		e.log.Warn("run stopped", "run", id, "algorithm", e.key, "error", err)
		return
	}
	e.log.Debug("run finished", "run", id, "algorithm", e.key)
}

// regenerate draws a fresh random sequence and grid. Callers hold mu.
func (e *Engine) regenerate() {
	e.values = RandomSequence(e.rng, e.cfg.Size, e.cfg.Min, e.cfg.Max)
	g := grid.MustNew(e.cfg.Rows, e.cfg.Cols)
	if e.cfg.Walls > 0 {
		g.Scatter(e.rng, e.cfg.Walls)
	}
	e.grid = g
}

// RandomSequence returns n values drawn uniformly from [lo, hi].
func RandomSequence(rng *rand.Rand, n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = lo + rng.Intn(hi-lo+1)
	}
	return out
}

type source func() (Frame, bool)

func newSource(reg *algo.Registry, key string, values []int, g *grid.Grid) (source, error) {
	info := reg.Info(key)
	key = info.Key

	if info.Kind == algo.KindGrid {
		p, err := reg.Grid(key, g)
		if err != nil {
			return nil, err
		}
		return func() (Frame, bool) {
			s, ok := p.Next()
			if !ok {
				return Frame{}, false
			}
			return Frame{Algorithm: key, Kind: algo.KindGrid, Graph: s, Status: s.Status, Final: s.Last}, true
		}, nil
	}

	p, err := reg.Sequence(key, values)
	if err != nil {
		return nil, err
	}
	return func() (Frame, bool) {
		s, ok := p.Next()
		if !ok {
			return Frame{}, false
		}
		return Frame{Algorithm: key, Kind: algo.KindSequence, Sort: s, Status: sortStatus(s), Final: s.Final()}, true
	}, nil
}

func sortStatus(s sorting.Step[int]) string {
	switch {
	case s.Final():
		return "Sorted."
	case len(s.Active) == 1:
		return fmt.Sprintf("Placing index %d", s.Active[0])
	case len(s.Active) >= 2:
		return fmt.Sprintf("Indices %d and %d", s.Active[0], s.Active[1])
	default:
		return ""
	}
}
