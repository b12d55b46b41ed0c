// Package analytics delivers page view and link click events in the background.
// Logging an event never blocks and never reports an error to the caller.
package analytics

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	cb "github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/metrics"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

type Options struct {
	Workers        int
	QueueSize      int
	MaxRetries     uint64
	DeliverTimeout time.Duration
	// BackOff builds the retry schedule for one delivery. Defaults to exponential.
	BackOff func() backoff.BackOff
}

func (o *Options) withDefaults() {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 1024
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 3
	}
	if o.DeliverTimeout <= 0 {
		o.DeliverTimeout = 5 * time.Second
	}
	if o.BackOff == nil {
		o.BackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 10 * time.Second
			return b
		}
	}
}

// Emitter is a bounded queue drained by a fixed pool of workers.
type Emitter struct {
	sink    ports.AnalyticsSink
	breaker *cb.CircuitBreaker
	log     *zap.Logger
	opts    Options

	queue  chan domain.Event
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

var _ ports.Emitter = (*Emitter)(nil)

func NewEmitter(sink ports.AnalyticsSink, log *zap.Logger, opts Options) *Emitter {
	opts.withDefaults()
	log = log.With(zap.String("component", "analytics"))

	e := &Emitter{
		sink: sink,
		breaker: cb.NewCircuitBreaker(cb.Settings{
			Name:        "analytics-sink",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts cb.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to cb.State) {
				log.Warn("circuit breaker state change",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
		log:   log,
		opts:  opts,
		queue: make(chan domain.Event, opts.QueueSize),
	}

	for i := 0; i < opts.Workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
	return e
}

// Log enqueues an event. The request context is not carried into delivery,
// since delivery outlives the request.
func (e *Emitter) Log(_ context.Context, name string, attributes map[string]any) {
	event := domain.Event{
		ID:         uuid.NewString(),
		Name:       name,
		Attributes: maps.Clone(attributes),
		OccurredAt: time.Now().UTC(),
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.drop(event, "emitter closed")
		return
	}

	select {
	case e.queue <- event:
	default:
		e.drop(event, "queue full")
	}
}

func (e *Emitter) drop(event domain.Event, reason string) {
	metrics.AnalyticsEvents.WithLabelValues(event.Name, "dropped").Inc()
	e.log.Warn("dropping analytics event",
		zap.String("event", event.Name),
		zap.String("event_id", event.ID),
		zap.String("reason", reason),
	)
}

func (e *Emitter) worker() {
	defer e.wg.Done()
	for event := range e.queue {
		e.deliver(event)
	}
}

func (e *Emitter) deliver(event domain.Event) {
	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), e.opts.DeliverTimeout)
		defer cancel()

		_, err := e.breaker.Execute(func() (interface{}, error) {
			return nil, e.sink.Deliver(ctx, event)
		})
		if errors.Is(err, cb.ErrOpenState) || errors.Is(err, cb.ErrTooManyRequests) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(e.opts.BackOff(), e.opts.MaxRetries))
	if err != nil {
		metrics.AnalyticsEvents.WithLabelValues(event.Name, "failed").Inc()
		e.log.Error("analytics delivery failed",
			zap.String("event", event.Name),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return
	}
	metrics.AnalyticsEvents.WithLabelValues(event.Name, "delivered").Inc()
}

// Close stops accepting events, drains the queue and closes the sink.
func (e *Emitter) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	e.wg.Wait()
	return e.sink.Close()
}
