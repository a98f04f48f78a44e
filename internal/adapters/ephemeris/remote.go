package ephemeris

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/platform/obs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// errCallerGone marks fetches abandoned because the caller's context ended.
// They say nothing about the remote service and do not count against the breaker.
var errCallerGone = errors.New("caller context done")

type positionResponse struct {
	Longitude *float64 `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Distance  float64  `json:"distance"`
	Speed     float64  `json:"speed"`
}

// RemoteProvider implements PositionProvider against an HTTP ephemeris service:
//
//	GET {baseURL}/v1/positions?jd=2448058.104167&body=Sun
//	{"longitude": 84.31, "latitude": 0.0, "distance": 1.016, "speed": 0.954}
//
// Each lookup carries its own timeout, transient failures are retried with
// backoff, and a circuit breaker stops calls while the service is failing.
// Every failure wraps domain.ErrPositionUnavailable.
//
// The provider is safe for concurrent use.
type RemoteProvider struct {
	session *http.Client
	baseURL string
	timeout time.Duration
	backoff time.Duration
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

type RemoteOption func(*RemoteProvider)

// WithHTTPClient replaces the default client (tests inject httptest clients).
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(p *RemoteProvider) { p.session = c }
}

// WithInitialBackoff sets the first retry delay; it doubles per attempt.
func WithInitialBackoff(d time.Duration) RemoteOption {
	return func(p *RemoteProvider) { p.backoff = d }
}

func WithRemoteLogger(l *logger.Logger) RemoteOption {
	return func(p *RemoteProvider) { p.log = l }
}

func NewRemoteProvider(baseURL string, timeout time.Duration, opts ...RemoteOption) (*RemoteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("remote ephemeris: base URL is empty")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("remote ephemeris: timeout must be positive, got %s", timeout)
	}

	p := &RemoteProvider{
		session: &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
		backoff: 200 * time.Millisecond,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-ephemeris",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGone)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			p.log.WithFields(map[string]any{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return p, nil
}

// BreakerState reports the circuit breaker state.
func (p *RemoteProvider) BreakerState() gobreaker.State {
	return p.breaker.State()
}

func (p *RemoteProvider) Position(ctx context.Context, jd float64, body domain.Body) (_ domain.Position, err error) {
	defer obs.Time(ctx, p.log, "ephemeris.remote.Position")(&err)

	if !body.Valid() {
		return domain.Position{}, fmt.Errorf("remote ephemeris: unknown body %q: %w", body, domain.ErrPositionUnavailable)
	}

	if err := ctx.Err(); err != nil {
		return domain.Position{}, fmt.Errorf("remote ephemeris: %s at jd %v: %w: %w", body, jd, domain.ErrPositionUnavailable, err)
	}

	caller := ctx
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.breaker.Execute(func() (interface{}, error) {
		pos, err := p.fetch(ctx, jd, body)
		if err != nil {
			if cerr := caller.Err(); cerr != nil {
				return nil, fmt.Errorf("%w: %w", errCallerGone, cerr)
			}
			return nil, err
		}
		return pos, nil
	})
	if err != nil {
		return domain.Position{}, fmt.Errorf("remote ephemeris: %s at jd %v: %w: %w", body, jd, domain.ErrPositionUnavailable, err)
	}

	return out.(domain.Position), nil
}

func (p *RemoteProvider) fetch(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	endpoint := p.baseURL + "/v1/positions"

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("jd", strconv.FormatFloat(jd, 'f', 6, 64))
		q.Set("body", string(body))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Position{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Position{}, fmt.Errorf("decode position response: %w", err)
	}

	if decoded.Longitude == nil {
		return domain.Position{}, errors.New("position response has no longitude")
	}
	lon := *decoded.Longitude
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return domain.Position{}, fmt.Errorf("position response has invalid longitude %v", lon)
	}

	return domain.Position{
		Longitude:      domain.NormalizeDegrees(lon),
		Latitude:       decoded.Latitude,
		Distance:       decoded.Distance,
		SpeedLongitude: decoded.Speed,
	}, nil
}
