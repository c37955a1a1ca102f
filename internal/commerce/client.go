// Package commerce is a client for the storefront GraphQL API of the
// commerce backend.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jwalitptl/storefront-api/pkg/circuitbreaker"
	apperrors "github.com/jwalitptl/storefront-api/pkg/errors"
	"github.com/jwalitptl/storefront-api/pkg/logger"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
)

// CustomerTokenHeader carries the signed-in customer's access token to the
// backend.
const CustomerTokenHeader = "X-Bc-Customer-Access-Token"

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 4 << 20

type Config struct {
	Endpoint        string
	StorefrontToken string
	Timeout         time.Duration
	MaxFailures     int
	BreakerTimeout  time.Duration
}

type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	metrics    *metrics.Metrics
	log        *logger.Logger
}

func NewClient(cfg Config, m *metrics.Metrics, log *logger.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.StorefrontToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "commerce",
			MaxFailures: cfg.MaxFailures,
			Timeout:     cfg.BreakerTimeout,
		}),
		metrics: m,
		log:     log,
	}
}

type customerTokenKey struct{}

// WithCustomerToken attaches a customer access token to ctx. Requests made
// with the context act on behalf of that customer.
func WithCustomerToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, customerTokenKey{}, token)
}

// CustomerToken returns the customer access token attached to ctx.
func CustomerToken(ctx context.Context) string {
	token, _ := ctx.Value(customerTokenKey{}).(string)
	return token
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Do runs a GraphQL document and decodes its data into out. Transport
// failures, unexpected statuses and an open circuit come back as an
// unavailable *errors.AppError; GraphQL errors as *Error.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	start := time.Now()

	var resp graphQLResponse
	err := c.breaker.Execute(func() error {
		return c.roundTrip(ctx, graphQLRequest{Query: query, Variables: variables}, &resp)
	})
	c.metrics.ObserveBackend(operation, start, err)
	if err != nil {
		c.log.Warn(err, "commerce request failed", "operation", operation)
		return apperrors.NewUnavailable("commerce backend", fmt.Errorf("%s: %w", operation, err))
	}

	if len(resp.Errors) > 0 {
		return &Error{Operation: operation, Errors: resp.Errors}
	}

	if out == nil || len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, body graphQLRequest, resp *graphQLResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if token := CustomerToken(ctx); token != "" {
		req.Header.Set(CustomerTokenHeader, token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode, truncate(data, 200))
	}

	if err := json.Unmarshal(data, resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
