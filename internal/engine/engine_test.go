package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/traverse"
)

type recorder struct {
	mu     sync.Mutex
	frames []engine.Frame
	err    error
}

func (r *recorder) Render(f engine.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	return r.err
}

func (r *recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recorder) Frames() []engine.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.frames)
}

// heldRenderer blocks inside its first Render until release is closed and
// tracks how many Render calls overlap.
type heldRenderer struct {
	mu          sync.Mutex
	frames      []engine.Frame
	inFlight    int
	maxInFlight int
	entered     chan struct{}
	release     chan struct{}
}

func newHeldRenderer() *heldRenderer {
	return &heldRenderer{entered: make(chan struct{}), release: make(chan struct{})}
}

func (h *heldRenderer) Render(f engine.Frame) error {
	h.mu.Lock()
	h.inFlight++
	h.maxInFlight = max(h.maxInFlight, h.inFlight)
	h.frames = append(h.frames, f)
	first := len(h.frames) == 1
	h.mu.Unlock()

	if first {
		close(h.entered)
		<-h.release
	}

	h.mu.Lock()
	h.inFlight--
	h.mu.Unlock()
	return nil
}

func (h *heldRenderer) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

type countMetric struct{ n int }

func (c *countMetric) Name() string           { return "count" }
func (c *countMetric) Observe(f engine.Frame) { c.n++ }
func (c *countMetric) Value() float64         { return float64(c.n) }
func (c *countMetric) Reset()                 { c.n = 0 }

func testConfig() engine.Config {
	return engine.Config{Algorithm: "bubble", Speed: 50, Size: 10, Min: 10, Max: 300, Rows: 4, Cols: 5}
}

func instant(ctx context.Context, d time.Duration) error { return ctx.Err() }

var _ = Describe("Engine", func() {
	var (
		reg   *algo.Registry
		rec   *recorder
		ctx   context.Context
		quiet engine.Option
	)

	BeforeEach(func() {
		reg = algo.NewRegistry()
		rec = &recorder{}
		ctx = context.Background()
		quiet = engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	newEngine := func(opts ...engine.Option) *engine.Engine {
		opts = append([]engine.Option{quiet, engine.WithRand(rand.New(rand.NewSource(7)))}, opts...)
		e, err := engine.New(reg, rec, testConfig(), opts...)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	Describe("configuration", func() {
		It("rejects invalid settings", func() {
			cfg := testConfig()
			cfg.Min, cfg.Max = 10, 5
			_, err := engine.New(reg, rec, cfg)
			Expect(err).To(MatchError(engine.ErrInvalidConfig))

			cfg = testConfig()
			cfg.Rows = 0
			_, err = engine.New(reg, rec, cfg)
			Expect(err).To(MatchError(engine.ErrInvalidConfig))
		})

		It("generates input of the configured size and range", func() {
			e := newEngine()
			Expect(e.Input()).To(HaveLen(10))
			for _, v := range e.Input() {
				Expect(v).To(BeNumerically(">=", 10))
				Expect(v).To(BeNumerically("<=", 300))
			}
		})
	})

	Describe("speed", func() {
		It("maps speed to delay", func() {
			e := newEngine()
			Expect(e.SetSpeed(100)).To(Equal(100))
			Expect(e.Delay()).To(Equal(10 * time.Millisecond))
			e.SetSpeed(1)
			Expect(e.Delay()).To(Equal(109 * time.Millisecond))
		})

		It("clamps out of range values", func() {
			e := newEngine()
			Expect(e.SetSpeed(0)).To(Equal(engine.MinSpeed))
			Expect(e.SetSpeed(250)).To(Equal(engine.MaxSpeed))
			Expect(engine.DelayFor(-5)).To(Equal(109 * time.Millisecond))
		})
	})

	Describe("selection", func() {
		It("falls back to bubble for unknown keys", func() {
			e := newEngine()
			Expect(e.Select("bogosort")).To(Equal("bubble"))
			Expect(e.Algorithm()).To(Equal("bubble"))
		})

		It("resets and previews the selected kind", func() {
			e := newEngine()
			id := e.RunID()
			e.Select("dijkstra")
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.RunID()).NotTo(Equal(id))

			p := e.Preview()
			Expect(p.IsGrid()).To(BeTrue())
			Expect(p.Graph.Grid.VisitedCount()).To(BeZero())
			Expect(p.Status).To(Equal(reg.Info("dijkstra").Description))
		})
	})

	Describe("a complete run", func() {
		It("renders every step and returns to idle", func() {
			e := newEngine(engine.WithSleeper(instant))
			m := &countMetric{}
			e.AddMetric(m)
			input := e.Input()

			Expect(e.Start(ctx)).To(Succeed())
			Expect(e.Wait(ctx)).To(Succeed())
			Expect(e.State()).To(Equal(engine.Idle))

			frames := rec.Frames()
			Expect(frames).NotTo(BeEmpty())
			last := frames[len(frames)-1]
			Expect(last.Final).To(BeTrue())
			Expect(last.Sort.Values).To(Equal(sorted(input)))
			Expect(last.Status).To(Equal("Sorted."))
			for i, f := range frames {
				Expect(f.Seq).To(Equal(i))
				Expect(f.RunID).To(Equal(e.RunID()))
			}
			Expect(e.Metrics()).To(HaveKeyWithValue("count", float64(len(frames))))

			// Start works on a copy; the idle input is unchanged.
			Expect(e.Input()).To(Equal(input))
		})

		It("runs loaded values", func() {
			e := newEngine(engine.WithSleeper(instant))
			Expect(e.Load([]int{5, 3, 8, 1})).To(Succeed())
			e.SetSpeed(100)
			Expect(e.Start(ctx)).To(Succeed())
			Expect(e.Wait(ctx)).To(Succeed())
			Expect(rec.Frames()[rec.Count()-1].Sort.Values).To(Equal([]int{1, 3, 5, 8}))
		})

		It("runs grid traversals", func() {
			e := newEngine(engine.WithSleeper(instant))
			Expect(e.StartWith(ctx, "bfs", nil)).To(Succeed())
			Expect(e.Wait(ctx)).To(Succeed())

			frames := rec.Frames()
			Expect(frames[0].IsGrid()).To(BeTrue())
			last := frames[len(frames)-1]
			Expect(last.Final).To(BeTrue())
			Expect(last.Graph.Phase).To(Equal(traverse.PhaseReached))
			Expect(last.Status).To(Equal(traverse.StatusReached))

			// The engine's own grid is untouched by the run.
			Expect(e.Preview().Graph.Grid.VisitedCount()).To(BeZero())
		})

		It("stops on a renderer error", func() {
			rec.err = errors.New("terminal gone")
			e := newEngine(engine.WithSleeper(instant))
			Expect(e.Start(ctx)).To(Succeed())

			err := e.Wait(ctx)
			var rerr *engine.RenderError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Seq).To(BeZero())
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(rec.Count()).To(Equal(1))
		})

		It("stops when the caller's context is cancelled", func() {
			e := newEngine()
			e.SetSpeed(1)
			cctx, cancel := context.WithCancel(ctx)
			Expect(e.Start(cctx)).To(Succeed())
			Eventually(rec.Count).Should(BeNumerically(">=", 1))
			cancel()

			Expect(e.Wait(ctx)).To(MatchError(context.Canceled))
			Expect(e.State()).To(Equal(engine.Idle))
		})
	})

	Describe("rendering across a reset", func() {
		It("never overlaps the abandoned run with the next one", func() {
			held := newHeldRenderer()
			e, err := engine.New(reg, held, testConfig(), quiet, engine.WithSleeper(instant))
			Expect(err).NotTo(HaveOccurred())

			Expect(e.Start(ctx)).To(Succeed())
			Eventually(held.entered).Should(BeClosed())
			first := e.RunID()

			e.Reset()
			Expect(e.Start(ctx)).To(Succeed())
			second := e.RunID()
			Expect(second).NotTo(Equal(first))

			// The new loop waits for the renderer to come free.
			Consistently(held.Count, 50*time.Millisecond).Should(Equal(1))
			close(held.release)
			Expect(e.Wait(ctx)).To(Succeed())

			held.mu.Lock()
			defer held.mu.Unlock()
			Expect(held.maxInFlight).To(Equal(1))
			Expect(held.frames[0].RunID).To(Equal(first))
			Expect(len(held.frames)).To(BeNumerically(">", 1))
			for _, f := range held.frames[1:] {
				Expect(f.RunID).To(Equal(second))
			}
			Expect(held.frames[1].Seq).To(BeZero())
		})
	})

	Describe("pacing controls", func() {
		var (
			e     *engine.Engine
			ticks chan struct{}
		)

		BeforeEach(func() {
			ticks = make(chan struct{})
			gated := func(ctx context.Context, d time.Duration) error {
				select {
				case <-ticks:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			e = newEngine(engine.WithSleeper(gated))
			Expect(e.Start(ctx)).To(Succeed())
			Eventually(rec.Count).Should(Equal(1))
		})

		AfterEach(func() {
			e.Reset()
			Expect(e.Wait(ctx)).To(Succeed())
		})

		It("refuses a second start", func() {
			Expect(e.State()).To(Equal(engine.Running))
			Expect(e.Start(ctx)).To(MatchError(engine.ErrNotIdle))
			Expect(e.Load([]int{1})).To(MatchError(engine.ErrNotIdle))
		})

		It("advances one frame per delay", func() {
			ticks <- struct{}{}
			Eventually(rec.Count).Should(Equal(2))
			Consistently(rec.Count, 50*time.Millisecond).Should(Equal(2))
		})

		It("holds frames while paused", func() {
			e.Pause()
			Expect(e.State()).To(Equal(engine.Paused))
			ticks <- struct{}{}
			Consistently(rec.Count, 100*time.Millisecond).Should(Equal(1))

			e.Resume()
			Expect(e.State()).To(Equal(engine.Running))
			Eventually(rec.Count).Should(Equal(2))
		})

		It("toggles from paused back to running", func() {
			e.Pause()
			Expect(e.Toggle(ctx)).To(Succeed())
			Expect(e.State()).To(Equal(engine.Running))
		})

		It("ignores pause and resume in the wrong state", func() {
			e.Resume()
			Expect(e.State()).To(Equal(engine.Running))
			e.Pause()
			e.Pause()
			Expect(e.State()).To(Equal(engine.Paused))

			e.Reset()
			e.Pause()
			Expect(e.State()).To(Equal(engine.Idle))
			e.Resume()
			Expect(e.State()).To(Equal(engine.Idle))
		})

		It("discards progress on reset", func() {
			id := e.RunID()
			input := e.Input()

			e.Reset()
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.RunID()).NotTo(Equal(id))
			Expect(e.Input()).NotTo(Equal(input))
			Expect(e.Wait(ctx)).To(Succeed())
			Consistently(rec.Count, 50*time.Millisecond).Should(Equal(1))

			Expect(e.Start(ctx)).To(Succeed())
			Eventually(rec.Count).Should(Equal(2))
			Expect(rec.Frames()[1].Seq).To(BeZero())
		})

		It("resets out of a pause", func() {
			e.Pause()
			e.Reset()
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.Wait(ctx)).To(Succeed())
		})
	})
})

var _ = Describe("Drain", func() {
	reg := algo.NewRegistry()

	It("collects the whole run", func() {
		m := &countMetric{}
		res, err := engine.Drain(context.Background(), reg, "insertion", []int{5, 3, 8, 1}, nil, m)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(HaveLen(5))
		Expect(res.Last().Sort.Values).To(Equal([]int{1, 3, 5, 8}))
		Expect(res.Last().Sort.Sorted).To(Equal([]int{0, 1, 2, 3}))
		Expect(res.Metrics).To(HaveKeyWithValue("count", 5.0))
	})

	It("falls back to bubble", func() {
		res, err := engine.Drain(context.Background(), reg, "nope", []int{2, 1}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Algorithm).To(Equal("bubble"))
	})

	It("traces the dijkstra path on a default grid", func() {
		res, err := engine.Drain(context.Background(), reg, "dijkstra", nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Last().Graph.Phase).To(Equal(traverse.PhasePath))
		Expect(res.Last().Graph.Path).To(HaveLen(18))
	})

	It("honours cancellation", func() {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := engine.Drain(cctx, reg, "bubble", []int{3, 2, 1}, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Compare", func() {
	reg := algo.NewRegistry()

	It("agrees across all sorts", func() {
		input := engine.RandomSequence(rand.New(rand.NewSource(3)), 30, 10, 300)
		keys := reg.SequenceKeys()
		results, err := engine.Compare(context.Background(), reg, keys, input, func() []engine.Metric {
			return []engine.Metric{&countMetric{}}
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(keys)))
		for i, r := range results {
			Expect(r.Algorithm).To(Equal(keys[i]))
			Expect(r.Last().Sort.Values).To(Equal(sorted(input)))
			Expect(r.Metrics["count"]).To(Equal(float64(len(r.Frames))))
		}
	})

	It("rejects grid and unknown keys", func() {
		_, err := engine.Compare(context.Background(), reg, []string{"bubble", "bfs"}, []int{1}, nil)
		Expect(err).To(HaveOccurred())
		_, err = engine.Compare(context.Background(), reg, []string{"bogo"}, []int{1}, nil)
		Expect(err).To(HaveOccurred())
	})
})

func sorted(v []int) []int {
	out := slices.Clone(v)
	slices.Sort(out)
	return out
}
