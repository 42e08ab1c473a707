// Package smsapi is a minimal client for the SMS gateway's send endpoint.
package smsapi

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

type sendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Response is the gateway's answer to a send call.
type Response struct {
	StatusCode int
	MessageID  string
	Body       string
}

// APIError is returned for non-2xx gateway responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sms api returned %d: %s", e.StatusCode, e.Body)
}

// New builds a client for endpoint authenticated with apiKey.
func New(endpoint, apiKey string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("sms api endpoint %q is not an absolute url", endpoint)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("sms api key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, http: httpClient}, nil
}

// Send delivers message to recipient.
func (c *Client) Send(ctx context.Context, recipient, message string) (Response, error) {
	body, err := json.Marshal(sendRequest{To: recipient, Message: message})
	if err != nil {
		return Response{}, fmt.Errorf("encode sms request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("post sms: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("read sms response: %w", err)
	}
	out := Response{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &APIError{StatusCode: resp.StatusCode, Body: out.Body}
	}

	var decoded struct {
		MessageID string `json:"messageId"`
	}
	if json.Unmarshal(raw, &decoded) == nil {
		out.MessageID = decoded.MessageID
	}
	return out, nil
}
