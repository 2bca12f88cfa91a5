package resilience

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Predefined errors for resilient operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client in the circuit breaker and the registry.
	Name string

	// Timeout is the request timeout for individual HTTP calls.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts after the first call.
	// Zero means no retries.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval.
	// Default: 100ms
	InitialInterval time.Duration

	// MaxInterval is the maximum retry backoff interval.
	// Default: 2 seconds
	MaxInterval time.Duration

	// CircuitBreaker is the circuit breaker configuration.
	// If nil, uses DefaultCircuitBreakerConfig.
	CircuitBreaker *CircuitBreakerConfig

	// Registry, if set, receives the client and every call outcome.
	Registry *Registry

	// Transport overrides the underlying HTTP transport (optional).
	Transport http.RoundTripper

	// Logger receives circuit state changes unless CircuitBreaker sets its
	// own OnStateChange.
	Logger zerolog.Logger
}

// DefaultClientConfig returns defaults for calling a public weather API.
func DefaultClientConfig(name string) ClientConfig {
	cbConfig := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      2,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		CircuitBreaker:  &cbConfig,
	}
}

// Client is an HTTP client for one upstream endpoint. Calls go through a
// circuit breaker and are retried with exponential backoff.
type Client struct {
	name           string
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker[*http.Response]
	registry       *Registry
	config         ClientConfig
}

// NewClient creates a client and registers it with cfg.Registry when set.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 2 * time.Second
	}

	cbConfig := DefaultCircuitBreakerConfig(cfg.Name)
	if cfg.CircuitBreaker != nil {
		cbConfig = *cfg.CircuitBreaker
	}
	if cbConfig.OnStateChange == nil {
		logger := cfg.Logger
		cbConfig.OnStateChange = func(name string, from, to gobreaker.State) {
			event := logger.Info()
			if to == gobreaker.StateOpen {
				event = logger.Warn()
			}
			event.
				Str("upstream", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		}
	}

	c := &Client{
		name: cfg.Name,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		circuitBreaker: NewCircuitBreaker[*http.Response](cbConfig), //nolint:bodyclose // type param, not response
		registry:       cfg.Registry,
		config:         cfg,
	}

	if c.registry != nil {
		c.registry.Register(c.name, c)
	}

	return c
}

// Name returns the client name.
func (c *Client) Name() string {
	return c.name
}

// Do executes req through the circuit breaker. Network errors, 5xx and 429
// responses are retried; a 429 Retry-After hint replaces the next backoff
// interval, capped at MaxInterval. Other 4xx responses are returned as-is.
// Returns ErrCircuitOpen without calling upstream when the breaker is open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.config.InitialInterval
	exp.MaxInterval = c.config.MaxInterval
	exp.MaxElapsedTime = 0 // bounded by MaxRetries

	hinted := &hintedBackOff{BackOff: exp, max: c.config.MaxInterval}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, c.config.MaxRetries), ctx)

	var lastResp *http.Response
	keep := func(resp *http.Response) {
		if lastResp != nil {
			lastResp.Body.Close()
		}
		lastResp = resp
	}

	operation := func() error {
		resp, err := c.circuitBreaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			if retryableStatus(r.StatusCode) {
				return r, &StatusError{StatusCode: r.StatusCode, RetryAfter: retryAfter(r.Header)}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				hinted.hint = statusErr.RetryAfter
			}
			if resp != nil {
				keep(resp)
			}
			return err
		}

		keep(resp)
		return nil
	}

	err := backoff.Retry(operation, policy)
	if err != nil {
		c.recordFailure(err)
		// A retryable status that exhausted retries is still handed back so
		// callers can inspect it.
		var statusErr *StatusError
		if lastResp != nil && errors.As(err, &statusErr) {
			return lastResp, nil
		}
		keep(nil)
		return nil, err
	}

	c.recordSuccess()
	return lastResp, nil
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(c.name)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(c.name, err)
	}
}

// StatusError is a retryable upstream status: any 5xx, or 429 Too Many Requests.
type StatusError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return "upstream status " + strconv.Itoa(e.StatusCode) + ": " + http.StatusText(e.StatusCode)
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// hintedBackOff returns a pending server hint instead of the next
// exponential interval, once.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
	max  time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop || b.hint <= 0 {
		return next
	}
	hint := min(b.hint, b.max)
	b.hint = 0
	return hint
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (c *Client) CircuitBreakerState() gobreaker.State {
	return c.circuitBreaker.State()
}

// CircuitBreakerCounts returns the current counts of the circuit breaker.
func (c *Client) CircuitBreakerCounts() gobreaker.Counts {
	return c.circuitBreaker.Counts()
}
