package service

import (
	"context"
	"sync"
	"sync/atomic"

	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// Recomputer derives the charts for one filter snapshot.
type Recomputer interface {
	Recompute(ctx context.Context, filter entity.FilterState) (entity.ChartSet, error)
}

// ChartPublisher renders a recompute result to one UI session.
type ChartPublisher interface {
	Publish(view entity.DashboardView) error
}

// RecomputeController keeps one session's charts consistent with its latest
// filter.
//
// Every Trigger gets a generation number from a monotonic counter and runs
// against its own filter snapshot. Results are published only if their
// generation is still the latest when they complete; the check and the
// publish happen under one mutex, so a stale result can never overwrite a
// newer one regardless of completion order. Stale work is not cancelled,
// its result is dropped.
type RecomputeController struct {
	dashboard Recomputer
	publisher ChartPublisher
	log       *logrus.Logger
	metrics   *metrics.Metrics

	generation atomic.Uint64
	wg         sync.WaitGroup

	mu      sync.Mutex
	current *entity.DashboardView
}

func NewRecomputeController(
	dashboard Recomputer,
	publisher ChartPublisher,
	log *logrus.Logger,
	m *metrics.Metrics,
) *RecomputeController {
	return &RecomputeController{
		dashboard: dashboard,
		publisher: publisher,
		log:       log,
		metrics:   m,
	}
}

// Trigger starts a recompute for filter and returns its generation.
func (c *RecomputeController) Trigger(ctx context.Context, filter entity.FilterState) uint64 {
	snapshot := filter.Snapshot()
	gen := c.generation.Add(1)

	c.wg.Add(1)
	go c.run(ctx, gen, snapshot)
	return gen
}

func (c *RecomputeController) run(ctx context.Context, gen uint64, filter entity.FilterState) {
	defer c.wg.Done()

	charts, err := c.dashboard.Recompute(ctx, filter)
	view := entity.DashboardView{
		Generation: gen,
		Filter:     filter,
		Charts:     charts,
		Err:        err,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if latest := c.generation.Load(); gen != latest {
		c.log.Debugf("Discarding stale recompute: generation=%d, latest=%d", gen, latest)
		c.metrics.ObserveStale()
		return
	}

	c.current = &view
	if err := c.publisher.Publish(view); err != nil {
		c.log.Warnf("Failed to publish charts for generation %d: %+v", gen, err)
	}
}

// Current returns the last published view, if any.
func (c *RecomputeController) Current() (entity.DashboardView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return entity.DashboardView{}, false
	}
	return *c.current, true
}

// Latest returns the generation of the most recent trigger.
func (c *RecomputeController) Latest() uint64 {
	return c.generation.Load()
}

// Wait blocks until every in-flight recompute has finished.
func (c *RecomputeController) Wait() {
	c.wg.Wait()
}
