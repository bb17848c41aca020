// Package apiclient is the typed HTTP client of the Planejão API used by the
// board. Every call goes through a circuit breaker; answers other than 2xx are
// returned as *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"planejao/internal/config"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/infrastructure/tracing"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout      = 10 * time.Second
	maxErrorBody        = 64 << 10
	breakerName         = "planejao-api"
	instrumentationName = "planejao/apiclient"
)

// Options configures New. BaseURL includes the /v1 prefix.
type Options struct {
	BaseURL    string
	User       string
	Password   string
	Timeout    time.Duration
	HTTPClient *http.Client

	// Breaker tuning; zero values use the defaults below.
	MaxFailures  uint32
	BreakerReset time.Duration
}

type Client struct {
	baseURL  string
	user     string
	password string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// New builds a client. The breaker opens after MaxFailures consecutive
// transport or 5xx failures (default 3) and half-opens after BreakerReset
// (default 5s).
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	reset := opts.BreakerReset
	if reset <= 0 {
		reset = 5 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		user:     opts.User,
		password: opts.Password,
		http:     httpClient,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Timeout:     reset,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: isSuccessful,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Warnf("[apiclient][breaker] state change name=%s from=%s to=%s", name, from.String(), to.String())
			},
		}),
	}
}

// NewFromConfig builds a client from the board CLI configuration.
func NewFromConfig(cfg config.ClientConfig) *Client {
	return New(Options{
		BaseURL:  cfg.BaseURL,
		User:     cfg.User,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	})
}

// isSuccessful keeps client errors (4xx) from counting as breaker failures.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError
	}
	return false
}

type rawResponse struct {
	status int
	body   []byte
}

// do sends one request. in is JSON-encoded when non-nil; out is decoded from a
// 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "apiclient "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.user != "" {
			req.SetBasicAuth(c.user, c.password)
		}
		tracing.Inject(ctx, propagation.HeaderCarrier(req.Header))

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
			return nil, newAPIError(res.StatusCode, body)
		}
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return rawResponse{status: res.StatusCode, body: body}, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.Logger.Debugf("[apiclient] request failed method=%s path=%s err=%v", method, path, err)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	raw := result.(rawResponse)
	logging.Logger.Debugf("[apiclient] request ok method=%s path=%s status=%d", method, path, raw.status)
	if out == nil || len(raw.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw.body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
