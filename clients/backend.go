// Package clients holds the typed client for the backend booking API. The
// backend owns the persistent client and booking records; this service only
// orchestrates calls against it.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"recoveryoffice/models"
)

// BackendAPI is the surface the orchestrator and catalog depend on.
type BackendAPI interface {
	FetchServices(ctx context.Context) ([]models.ServiceCatalogEntry, error)
	ServiceExists(ctx context.Context, id string) (bool, error)
	ClientExists(ctx context.Context, id string) (bool, error)
	CreateClient(ctx context.Context, req models.ClientCreateRequest, idempotencyKey string) (*models.ClientCreateResponse, error)
	CreateBooking(ctx context.Context, req models.BookingCreateRequest, idempotencyKey string) (*models.BookingCreateResponse, error)
}

// APIError is a non-2xx response from the backend. The message is the
// server's own wording and is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend API returned %d: %s", e.StatusCode, e.Message)
}

// IsAPIError reports whether err is a server-side rejection, as opposed to a
// transport failure.
func IsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}

// APIClient talks to the backend booking API over HTTP.
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAPIClient creates a backend API client.
func NewAPIClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchServices retrieves the live service catalog.
func (c *APIClient) FetchServices(ctx context.Context) ([]models.ServiceCatalogEntry, error) {
	var services []models.ServiceCatalogEntry
	if err := c.do(ctx, http.MethodGet, "/services", nil, "", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ServiceExists checks whether a service identifier is known to the backend.
func (c *APIClient) ServiceExists(ctx context.Context, id string) (bool, error) {
	return c.exists(ctx, "/services/"+id)
}

// ClientExists checks whether a client identifier is known to the backend.
func (c *APIClient) ClientExists(ctx context.Context, id string) (bool, error) {
	return c.exists(ctx, "/clients/"+id)
}

// CreateClient issues the first phase of a submission.
func (c *APIClient) CreateClient(ctx context.Context, req models.ClientCreateRequest, idempotencyKey string) (*models.ClientCreateResponse, error) {
	var resp models.ClientCreateResponse
	if err := c.do(ctx, http.MethodPost, "/clients", req, idempotencyKey, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBooking issues the second phase of a submission.
func (c *APIClient) CreateBooking(ctx context.Context, req models.BookingCreateRequest, idempotencyKey string) (*models.BookingCreateResponse, error) {
	var resp models.BookingCreateResponse
	if err := c.do(ctx, http.MethodPost, "/bookings", req, idempotencyKey, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping reports backend reachability for the health monitor.
func (c *APIClient) Ping(ctx context.Context) error {
	var services []models.ServiceCatalogEntry
	return c.do(ctx, http.MethodGet, "/services", nil, "", &services)
}

func (c *APIClient) exists(ctx context.Context, path string) (bool, error) {
	err := c.do(ctx, http.MethodGet, path, nil, "", &json.RawMessage{})
	if err == nil {
		return true, nil
	}
	if apiErr, ok := IsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, err
}

func (c *APIClient) do(ctx context.Context, method, path string, payload any, idempotencyKey string, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend API unreachable: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := extractMessage(bodyBytes)
		c.logger.Warn("Backend API rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls the human-readable message out of an error body,
// falling back to the raw body when it is not the usual {message} shape.
func extractMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}
