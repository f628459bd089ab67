package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recoveryoffice/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*APIClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL, "test-key", 5*time.Second, zap.NewNop()), server
}

func TestFetchServices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/services", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"identifier":"6830bb99da51afb0a6180bee","name":"Recovery Consultation","durationMinutes":60,"price":0,"isActive":true}]`))
	})

	services, err := client.FetchServices(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "6830bb99da51afb0a6180bee", services[0].ID)
	assert.Equal(t, "Recovery Consultation", services[0].Name)
}

func TestCreateClientSendsIdempotencyKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		assert.Equal(t, "idem-123", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"identifier":"507f1f77bcf86cd799439011","firstName":"Jane"}`))
	})

	resp, err := client.CreateClient(context.Background(), models.ClientCreateRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	}, "idem-123")

	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", resp.ID)
}

func TestServerMessagePassedThroughVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"email already registered"}`))
	})

	_, err := client.CreateClient(context.Background(), models.ClientCreateRequest{}, "")

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "email already registered", apiErr.Message)
}

func TestErrorBodyFallsBackToRawText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.CreateBooking(context.Background(), models.BookingCreateRequest{}, "")

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestCreateBookingDecodesAdvisoryFlags(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"identifier":"507f191e810c19729de860ea","reference":"SRV-42","confirmationEmailSent":true}`))
	})

	resp, err := client.CreateBooking(context.Background(), models.BookingCreateRequest{
		ClientID:  "507f1f77bcf86cd799439011",
		ServiceID: "6830bb99da51afb0a6180bee",
	}, "idem-456")

	require.NoError(t, err)
	assert.Equal(t, "SRV-42", resp.Reference)
	assert.True(t, resp.ConfirmationEmailSent)
	assert.False(t, resp.InternalNotificationSent)
}

func TestExistsChecks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services/known":
			w.Write([]byte(`{"identifier":"known"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	})

	exists, err := client.ServiceExists(context.Background(), "known")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.ClientExists(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNetworkErrorIsNotAPIError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.FetchServices(context.Background())

	require.Error(t, err)
	_, ok := IsAPIError(err)
	assert.False(t, ok)
}
