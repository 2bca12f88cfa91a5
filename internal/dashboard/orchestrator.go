package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/errgroup"
)

const meterName = "github.com/weathernow/weathernow/internal/dashboard"

// Submission outcomes recorded on the dashboard.submissions counter.
const (
	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
	outcomeStale    = "stale"
)

// Listener receives a snapshot of every state transition. Snapshots from
// overlapping submissions may arrive out of order; compare Generation.
type Listener func(State)

// OrchestratorConfig configures an Orchestrator.
type OrchestratorConfig struct {
	Fetcher Fetcher
	Logger  zerolog.Logger
}

// Orchestrator owns the dashboard UI state. Each submission fetches current
// weather and forecast concurrently and applies both or neither. Only the
// latest submission may change the state once its fetches settle.
type Orchestrator struct {
	fetcher     Fetcher
	logger      zerolog.Logger
	submissions metric.Int64Counter

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	listeners  map[int]Listener
	nextID     int
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	submissions, err := otel.Meter(meterName).Int64Counter(
		"dashboard.submissions",
		metric.WithDescription("Dashboard city submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		cfg.Logger.Warn().Err(err).Msg("failed to create submissions counter")
		submissions, _ = noop.NewMeterProvider().Meter(meterName).Int64Counter("dashboard.submissions")
	}

	return &Orchestrator{
		fetcher:     cfg.Fetcher,
		logger:      cfg.Logger,
		submissions: submissions,
		listeners:   make(map[int]Listener),
	}
}

// State returns a snapshot of the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers l for every subsequent transition and returns a
// function that removes it.
func (o *Orchestrator) Subscribe(l Listener) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = l
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// Submit fetches weather and forecast for city and blocks until both settle.
// A blank city is ignored and Submit returns false without touching state.
// Starting a submission cancels the previous one's requests.
func (o *Orchestrator) Submit(ctx context.Context, city string) bool {
	query := strings.TrimSpace(city)
	if query == "" {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.cancel = cancel
	o.generation++
	gen := o.generation
	o.state = State{Query: query, Loading: true, Generation: gen}
	o.publishLocked()

	cw, fc, err := o.fetch(ctx, query)

	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		o.logger.Debug().
			Str("city", query).
			Uint64("generation", gen).
			Msg("discarding stale dashboard result")
		o.record(outcomeStale)
		return true
	}
	o.cancel = nil

	if err != nil {
		o.logger.Warn().Err(err).
			Str("city", query).
			Uint64("generation", gen).
			Msg("dashboard fetch failed")
		o.state = State{Query: query, Error: ErrorMessage(err), Generation: gen}
		var nf *NotFoundError
		if errors.As(err, &nf) {
			o.record(outcomeNotFound)
		} else {
			o.record(outcomeError)
		}
	} else {
		o.state = State{Query: query, Weather: cw, Forecast: fc, Generation: gen}
		o.record(outcomeSuccess)
	}
	o.publishLocked()

	return true
}

func (o *Orchestrator) fetch(ctx context.Context, city string) (*CurrentWeather, *Forecast, error) {
	var (
		cw *CurrentWeather
		fc *Forecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := o.fetcher.FetchCurrentWeather(gctx, city)
		if err != nil {
			return err
		}
		cw = w
		return nil
	})
	g.Go(func() error {
		f, err := o.fetcher.FetchForecast(gctx, city)
		if err != nil {
			return err
		}
		fc = f
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cw, fc, nil
}

// publishLocked snapshots the state and listeners, releases o.mu and
// notifies listeners outside the lock. Caller must hold o.mu.
func (o *Orchestrator) publishLocked() {
	snapshot := o.state
	listeners := make([]Listener, 0, len(o.listeners))
	for _, l := range o.listeners {
		listeners = append(listeners, l)
	}
	o.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (o *Orchestrator) record(outcome string) {
	o.submissions.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
