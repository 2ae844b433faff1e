//go:build integration

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sebuszqo/PaymentAPI/internal/config"
	database "github.com/sebuszqo/PaymentAPI/internal/db"
	"github.com/sebuszqo/PaymentAPI/internal/logger"
	"github.com/sebuszqo/PaymentAPI/internal/payment/application"
	"github.com/sebuszqo/PaymentAPI/internal/payment/infrastructure"
	"github.com/sebuszqo/PaymentAPI/internal/payment/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type apiPayment struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PaymentDate string  `json:"payment_date"`
}

func setupPostgres(t *testing.T) *database.Gateway {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("payments"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gateway, err := database.NewGateway(config.DatabaseConfig{
		ConnectionString: connStr,
		MaxOpenConns:     5,
		MaxIdleConns:     5,
		ConnMaxLifetime:  time.Minute,
		QueryTimeout:     5 * time.Second,
		MaxRetries:       2,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { gateway.Close() })

	require.NoError(t, gateway.EnsureSchema(ctx))
	return gateway
}

func newIntegrationHandler(t *testing.T) http.Handler {
	gateway := setupPostgres(t)
	service := application.NewPaymentService(infrastructure.NewPaymentRepository(gateway))
	handler := interfaces.NewPaymentHandler(service, zap.NewNop(), respondJSON, respondError)

	server := NewServer(handler, gateway)
	server.RegisterRoutes()
	return logger.RequestLogger(zap.NewNop(), server.router)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestPaymentsLifecycle(t *testing.T) {
	h := newIntegrationHandler(t)

	w := do(t, h, http.MethodGet, "/payments", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, h, http.MethodPost, "/payments", `{"user_id":1,"amount":49.99,"currency":"USD","payment_date":"2024-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created apiPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, apiPayment{ID: created.ID, UserID: 1, Amount: 49.99, Currency: "USD", PaymentDate: "2024-01-01T00:00:00Z"}, created)

	path := "/payments/" + strconv.FormatInt(created.ID, 10)

	w = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched apiPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	w = do(t, h, http.MethodGet, "/payments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []apiPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Contains(t, listed, created)

	w = do(t, h, http.MethodPut, path, `{"user_id":2,"amount":10.125,"currency":"EUR","payment_date":"2024-02-01T12:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated apiPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, apiPayment{ID: created.ID, UserID: 2, Amount: 10.125, Currency: "EUR", PaymentDate: "2024-02-01T12:00:00Z"}, updated)

	w = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Payment not found", strings.TrimSpace(w.Body.String()))

	w = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code, "repeated delete of an existing row")

	w = do(t, h, http.MethodPut, path, `{"user_id":9,"amount":1,"currency":"PLN","payment_date":"2024-03-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// soft-deleted rows stay in the list, unchanged by the rejected update
	w = do(t, h, http.MethodGet, "/payments", "")
	require.Equal(t, http.StatusOK, w.Code)
	listed = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Contains(t, listed, updated)
}

func TestPayments_AmountPrecision(t *testing.T) {
	h := newIntegrationHandler(t)

	for _, amount := range []string{"0.125", "1000000000000", "-3.14159"} {
		t.Run(amount, func(t *testing.T) {
			body := `{"user_id":1,"amount":` + amount + `,"currency":"USD","payment_date":"2024-01-01T00:00:00Z"}`
			w := do(t, h, http.MethodPost, "/payments", body)
			require.Equal(t, http.StatusCreated, w.Code)

			var created apiPayment
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
			want, err := strconv.ParseFloat(amount, 64)
			require.NoError(t, err)
			assert.Equal(t, want, created.Amount)

			w = do(t, h, http.MethodGet, "/payments/"+strconv.FormatInt(created.ID, 10), "")
			require.Equal(t, http.StatusOK, w.Code)
			var fetched apiPayment
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
			assert.Equal(t, want, fetched.Amount)
		})
	}
}

func TestPayments_MissingAndInvalid(t *testing.T) {
	h := newIntegrationHandler(t)

	w := do(t, h, http.MethodPost, "/payments", `{"user_id":1,"currency":"USD"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid input", strings.TrimSpace(w.Body.String()))

	w = do(t, h, http.MethodDelete, "/payments/999999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/payments/999999", `{"user_id":1,"amount":1,"currency":"USD","payment_date":"2024-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/payments/abc", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, h, http.MethodPut, "/payments/abc", `{"user_id":1,"amount":1,"currency":"USD","payment_date":"2024-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
