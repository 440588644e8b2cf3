package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("client")

const (
	serviceName     = "tax-api"
	maxFailureBytes = 64 << 10
)

// TaxAPIClient calls the remote tax calculators at <base>/api/<calculator>.
// Calls are never retried: every trigger maps to exactly one request.
type TaxAPIClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
}

// NewTaxAPIClient creates a new TaxAPIClient.
func NewTaxAPIClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, bulkhead *resilience.Bulkhead) *TaxAPIClient {
	return &TaxAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cb:         cb,
		bulkhead:   bulkhead,
	}
}

// Call posts in as JSON to the calculator endpoint and decodes the answer
// into out, with circuit breaker, bulkhead, and tracing.
func (c *TaxAPIClient) Call(ctx context.Context, endpoint string, in, out any) error {
	ctx, span := tracer.Start(ctx, "TaxAPIClient.Call")
	defer span.End()
	span.SetAttributes(attribute.String("calculator.endpoint", endpoint))

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	_, err = c.cb.Execute(func() (any, error) {
		return nil, c.post(ctx, endpoint, body, out)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &domain.ErrCircuitOpen{Service: serviceName}
		}
		return &domain.ErrExternalService{Service: serviceName, Err: err}
	}
	return nil
}

func (c *TaxAPIClient) post(ctx context.Context, endpoint string, body []byte, out any) error {
	url := fmt.Sprintf("%s/api/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ErrUpstream{
			Status:  resp.StatusCode,
			Message: failureMessage(resp.StatusCode, resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ErrUpstream{
			Status:  resp.StatusCode,
			Message: "계산 서버 응답을 해석할 수 없습니다.",
		}
	}
	return nil
}

// Ping checks GET <base>/api/health.
func (c *TaxAPIClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxFailureBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tax API health returned status %d", resp.StatusCode)
	}
	return nil
}

// failureMessage prefers a message supplied by the server. A body that is
// not JSON, or has no usable field, yields the generic status message.
func failureMessage(status int, body io.Reader) string {
	generic := fmt.Sprintf("서버 오류 (%d)", status)

	raw, err := io.ReadAll(io.LimitReader(body, maxFailureBytes))
	if err != nil {
		return generic
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return generic
	}

	for _, key := range []string{"message", "detail", "error"} {
		if msg := messageFrom(payload[key]); msg != "" {
			return msg
		}
	}
	return generic
}

// messageFrom accepts a plain string or a FastAPI validation list
// ([{"loc": [...], "msg": "..."}]), of which the first msg is used.
func messageFrom(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				if msg, ok := obj["msg"].(string); ok && strings.TrimSpace(msg) != "" {
					return strings.TrimSpace(msg)
				}
			}
		}
	}
	return ""
}
