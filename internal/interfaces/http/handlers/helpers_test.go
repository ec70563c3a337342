package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"smart-upi.backend/internal/domain/entities"
	domainRepos "smart-upi.backend/internal/domain/repositories"
	"smart-upi.backend/internal/interfaces/http/handlers"
	"smart-upi.backend/internal/usecases"
)

type memStore struct {
	mu    sync.Mutex
	saved []byte
}

func (s *memStore) Load(ctx context.Context) (*domainRepos.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := domainRepos.NewLedgerState()
	if s.saved != nil {
		if err := json.Unmarshal(s.saved, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (s *memStore) Save(ctx context.Context, state *domainRepos.LedgerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.saved = raw
	s.mu.Unlock()
	return nil
}

func (s *memStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	s.saved = nil
	s.mu.Unlock()
	return nil
}

type noopScheduler struct{}

func (noopScheduler) Schedule(uuid.UUID, time.Duration) {}

func newTestLedger(t *testing.T) *usecases.LedgerUsecase {
	t.Helper()
	ledger, err := usecases.NewLedgerUsecase(context.Background(), &memStore{},
		usecases.NewRandomDecider(1), time.Second, time.Second)
	require.NoError(t, err)
	ledger.SetScheduler(noopScheduler{})
	return ledger
}

func newTestRouter(ledger *usecases.LedgerUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	orderHandler := handlers.NewOrderHandler(ledger)
	attemptHandler := handlers.NewAttemptHandler(ledger)
	networkHandler := handlers.NewNetworkHandler(ledger)
	adminHandler := handlers.NewAdminHandler(ledger)

	v1 := r.Group("/api/v1")
	v1.POST("/orders", orderHandler.CreateOrder)
	v1.GET("/orders", orderHandler.ListOrders)
	v1.GET("/orders/:id", orderHandler.GetOrder)
	v1.GET("/orders/:id/attempts", orderHandler.ListOrderAttempts)
	v1.POST("/attempts", attemptHandler.CreateAttempt)
	v1.GET("/attempts", attemptHandler.ListAttempts)
	v1.POST("/attempts/:id/reconcile", attemptHandler.ReconcileAttempt)
	v1.GET("/network/status", networkHandler.GetStatus)
	v1.POST("/network/status", networkHandler.SetStatus)
	v1.POST("/network/sync", networkHandler.Sync)
	v1.GET("/network/queue", networkHandler.GetQueue)
	v1.GET("/admin/export", adminHandler.Export)
	v1.POST("/admin/clear", adminHandler.ClearAllData)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustCreateOrder(t *testing.T, r *gin.Engine, name, amount string) *entities.Order {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customerName": name,
		"amount":       decimal.RequireFromString(amount),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order entities.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	return &order
}
