package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultEndpoint is the trust server used when no endpoint is configured.
const DefaultEndpoint = "http://0.0.0.0:8080/maps/"

// payloadFieldName is the single multipart field the trust server reads.
const payloadFieldName = "name"

// TrustClient posts a verification payload to the trust server and returns
// the raw response body.
type TrustClient interface {
	Post(ctx context.Context, payload string) ([]byte, error)
}

// HTTPClient is the subset of *http.Client used by HTTPTrustClient.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTrustClient sends payloads as multipart/form-data POST requests.
type HTTPTrustClient struct {
	endpoint   string
	httpClient HTTPClient
}

// NewHTTPTrustClient creates a client for endpoint. A zero timeout leaves the
// transport default in place.
func NewHTTPTrustClient(endpoint string, timeout time.Duration) *HTTPTrustClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &HTTPTrustClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewHTTPTrustClientWith creates a client that sends through httpClient.
func NewHTTPTrustClientWith(endpoint string, httpClient HTTPClient) *HTTPTrustClient {
	return &HTTPTrustClient{endpoint: endpoint, httpClient: httpClient}
}

// Endpoint returns the URL requests are posted to.
func (c *HTTPTrustClient) Endpoint() string {
	return c.endpoint
}

// Post sends payload as the only form part and returns the response body.
// Non-2xx responses are reported as errors.
func (c *HTTPTrustClient) Post(ctx context.Context, payload string) ([]byte, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)

	slog.Debug("posting verification payload", "endpoint", c.endpoint, "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server replied %s", resp.Status)
	}

	slog.Debug("received verification response", "status", resp.StatusCode, "bytes", len(data))

	return data, nil
}

func encodePayload(payload string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField(payloadFieldName, payload); err != nil {
		return nil, "", fmt.Errorf("write form field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
