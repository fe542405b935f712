// Package geo provides the HTTP client for the optional travel-time
// service consumed by the location scorer.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/ai-match-engine/internal/adapter/observability"
	"github.com/fairyhunter13/ai-match-engine/internal/domain"
)

// Client implements domain.GeoService against a stateless HTTP endpoint
// exposing POST /v1/estimate. Transient failures are retried with
// exponential backoff inside the caller's deadline; the location scorer
// treats any returned error as a signal to fall back to its heuristic.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

// New builds a geo client. timeout bounds a single attempt.
func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxRetries: maxRetries,
	}
}

// Estimate implements domain.GeoService.
func (c *Client) Estimate(ctx context.Context, req domain.GeoEstimateRequest) (domain.GeoEstimate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.GeoEstimate{}, fmt.Errorf("op=geo.estimate: %w", err)
	}

	var est domain.GeoEstimate
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/estimate", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("geo service status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("geo service status %d", resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(&est); err != nil {
			return backoff.Permanent(fmt.Errorf("decode estimate: %w", err))
		}
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(10*time.Millisecond),
			backoff.WithMaxInterval(50*time.Millisecond),
		), c.maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, bo); err != nil {
		observability.GeoRequestsTotal.WithLabelValues("error").Inc()
		return domain.GeoEstimate{}, fmt.Errorf("op=geo.estimate: %w", err)
	}
	if est.TravelScore < 0 || est.TravelScore > 1 {
		observability.GeoRequestsTotal.WithLabelValues("invalid").Inc()
		return domain.GeoEstimate{}, fmt.Errorf("op=geo.estimate: travel score %f out of range", est.TravelScore)
	}
	observability.GeoRequestsTotal.WithLabelValues("ok").Inc()
	return est, nil
}
