package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const userAgent = "appdoc-notify/1.0"

// Request is a single outbound delivery.
type Request struct {
	Endpoint    string
	Recipient   string
	ContentType string
	Body        []byte
}

type Response struct {
	StatusCode int
	Body       string
}

// Client performs the network call for a channel.
type Client interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// HTTPClient posts payloads to webhook endpoints.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient wraps client, or a traced default client when nil.
func NewHTTPClient(client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTPClient{client: client}
}

func (c *HTTPClient) Send(ctx context.Context, r Request) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(r.Body))
	if err != nil {
		return Response{}, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", r.ContentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("post webhook: %w", err)
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	closeErr := resp.Body.Close()
	out := Response{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}

	var errs []error
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errs = append(errs, &StatusError{StatusCode: resp.StatusCode, Body: out.Body})
	}
	if readErr != nil {
		errs = append(errs, fmt.Errorf("read webhook response: %w", readErr))
	}
	if closeErr != nil {
		errs = append(errs, fmt.Errorf("close webhook response: %w", closeErr))
	}
	return out, errors.Join(errs...)
}
