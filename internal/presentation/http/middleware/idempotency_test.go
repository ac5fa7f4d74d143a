package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenKeyStore struct {
	getErr, createErr error
	created           int
}

func (s *brokenKeyStore) GetByKey(context.Context, string, string) (*entity.IdempotencyKey, error) {
	return nil, s.getErr
}

func (s *brokenKeyStore) Create(context.Context, *entity.IdempotencyKey) error {
	s.created++
	return s.createErr
}

func (s *brokenKeyStore) DeleteExpired(context.Context) error { return nil }

func idempotentRouter(store *brokenKeyStore, logger *zap.Logger, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "u-1")
		c.Next()
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: store, Logger: logger}))
	router.POST("/api/v1/receipts", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusAccepted, gin.H{"serialNumber": "AH-1001"})
	})
	return router
}

func postWithKey(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", nil)
	req.Header.Set(IdempotencyKeyHeader, "desk-1-0001")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyLogsFailedKeyStore(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := &brokenKeyStore{createErr: errors.New("disk full")}
	calls := 0
	router := idempotentRouter(store, zap.New(core), &calls)

	w := postWithKey(router)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d", w.Code)
	}
	if store.created != 1 {
		t.Fatalf("create calls = %d, want 1", store.created)
	}

	entries := logs.FilterMessage("store idempotency key failed").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d store failures, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["idempotency_key"] != "desk-1-0001" || fields["user_id"] != "u-1" {
		t.Errorf("fields = %v", fields)
	}
}

func TestIdempotencyLogsFailedLookup(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := &brokenKeyStore{getErr: errors.New("store unreadable")}
	calls := 0
	router := idempotentRouter(store, zap.New(core), &calls)

	if w := postWithKey(router); w.Code != http.StatusAccepted {
		t.Fatalf("status = %d", w.Code)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
	if logs.FilterMessageSnippet("idempotency lookup failed").Len() != 1 {
		t.Errorf("lookup failure not logged: %v", logs.All())
	}
}
