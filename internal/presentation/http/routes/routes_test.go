package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/config"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/connectivity"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/localstore"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/handler"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newOfflineRouter wires the real services over an in-memory local store.
// The desk stays offline, so no remote repository is ever called.
func newOfflineRouter(t *testing.T) (*gin.Engine, *service.ReceiptService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	kv := localstore.NewMemoryStore()
	monitor := connectivity.NewMonitor(nil, time.Minute, time.Second, logger)

	rooms := service.NewRoomService(localstore.NewRoomCache(kv), nil,
		localstore.NewQueueStore(kv, localstore.KeyRoomsQueue), monitor, logger)
	receipts := service.NewReceiptService(localstore.NewReceiptCache(kv), nil,
		localstore.NewQueueStore(kv, localstore.KeyReceiptsQueue), rooms, monitor, 0, logger)
	menu := service.NewMenuService(localstore.NewMenuCache(kv), nil, monitor, logger)
	bills := service.NewBillService(localstore.NewBillCache(kv), nil,
		localstore.NewQueueStore(kv, localstore.KeyBillsQueue), menu, monitor, logger)
	banks := service.NewBankAccountService(localstore.NewBankAccountCache(kv), nil, monitor, logger)
	invoices := service.NewInvoiceService(receipts, bills, rooms, banks, logger)
	syncSvc := service.NewSyncService(receipts, rooms, bills, menu,
		localstore.NewSyncStateStore(kv), monitor, time.Minute, logger)

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	auth := service.NewAuthService(localstore.NewUserStore(kv), jwtManager, logger)
	if err := auth.EnsureDefaultUsers(context.Background()); err != nil {
		t.Fatal(err)
	}

	router := Setup(&Handlers{
		Auth:        handler.NewAuthHandler(auth),
		Receipt:     handler.NewReceiptHandler(receipts),
		Room:        handler.NewRoomHandler(rooms),
		Bill:        handler.NewBillHandler(bills),
		Menu:        handler.NewMenuHandler(menu),
		BankAccount: handler.NewBankAccountHandler(banks),
		Invoice:     handler.NewInvoiceHandler(invoices),
		Sync:        handler.NewSyncHandler(syncSvc),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             &config.Config{App: config.AppConfig{Name: "frontdesk-api"}},
		IdempotencyRepo: localstore.NewIdempotencyRepository(kv),
		Logger:          logger,
		Online:          monitor.IsOnline,
	})
	return router, receipts
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	w, env := do(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username, "password": password, "location": "musa-yaradua",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
		t.Fatalf("no token in %s", env.Data)
	}
	return data.AccessToken
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	router, _ := newOfflineRouter(t)

	w, env := do(t, router, http.MethodGet, "/api/v1/receipts", "", nil)
	if w.Code != http.StatusUnauthorized || env.Message != apperror.ErrUnauthorized.Message {
		t.Errorf("no token: status = %d message = %q", w.Code, env.Message)
	}

	w, env = do(t, router, http.MethodGet, "/api/v1/receipts", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized || env.Message != apperror.ErrInvalidToken.Message {
		t.Errorf("bad token: status = %d message = %q", w.Code, env.Message)
	}

	w, _ = do(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}
}

func TestOfflineReceiptIsAcceptedAndReplayed(t *testing.T) {
	router, receipts := newOfflineRouter(t)
	token := login(t, router, "receptionist", "recept123")

	body := gin.H{
		"customerName": "Bola Ade",
		"roomDetails": []gin.H{
			{"roomNumber": "11/13", "numberOfDays": 2, "dailyRate": 30000},
		},
		"paymentMode": "Cash",
		"location":    "musa-yaradua",
		"checkInDate": "2026-03-14",
		"includeTax":  true,
	}

	w, env := do(t, router, http.MethodPost, "/api/v1/receipts", token, body, "Idempotency-Key", "desk-1-0001")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	var first struct {
		ID               string `json:"id"`
		SerialNumber     string `json:"serialNumber"`
		ReceptionistName string `json:"receptionistName"`
		Synced           bool   `json:"synced"`
	}
	if err := json.Unmarshal(env.Data, &first); err != nil {
		t.Fatal(err)
	}
	if first.SerialNumber != "AH-1001" || first.Synced {
		t.Errorf("receipt = %+v", first)
	}
	if first.ReceptionistName == "" {
		t.Error("receptionist name not taken from the session")
	}

	w, _ = do(t, router, http.MethodPost, "/api/v1/receipts", token, body, "Idempotency-Key", "desk-1-0001")
	if w.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Errorf("second submission was not replayed: %d %s", w.Code, w.Body.String())
	}

	all, err := receipts.ListAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("receipts stored = %d, want 1", len(all))
	}

	// the combined room is addressed with an encoded slash
	w, env = do(t, router, http.MethodGet, "/api/v1/rooms/musa-yaradua/11%2F13", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("room status = %d: %s", w.Code, w.Body.String())
	}
	var room struct {
		Number    string `json:"number"`
		Status    string `json:"status"`
		GuestName string `json:"guestName"`
	}
	if err := json.Unmarshal(env.Data, &room); err != nil {
		t.Fatal(err)
	}
	if room.Number != "11/13" || room.Status != "occupied" || room.GuestName != "Bola Ade" {
		t.Errorf("room = %+v", room)
	}

	w, env = do(t, router, http.MethodGet, "/api/v1/sync/status", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sync status = %d", w.Code)
	}
	var status struct {
		Online          bool `json:"online"`
		PendingReceipts int  `json:"pendingReceipts"`
	}
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatal(err)
	}
	if status.Online || status.PendingReceipts != 1 {
		t.Errorf("status = %+v", status)
	}
}

func TestReceiptValidationReportsFields(t *testing.T) {
	router, _ := newOfflineRouter(t)
	token := login(t, router, "admin", "admin123")

	w, env := do(t, router, http.MethodPost, "/api/v1/receipts", token, gin.H{
		"paymentMode": "BTC",
		"location":    "musa-yaradua",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", w.Code, w.Body.String())
	}
	var fields []struct {
		Field string `json:"field"`
	}
	if err := json.Unmarshal(env.Errors, &fields); err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, f := range fields {
		got[f.Field] = true
	}
	for _, want := range []string{"customerName", "roomNumber", "companyName"} {
		if !got[want] {
			t.Errorf("missing field error %q in %s", want, env.Errors)
		}
	}
}

func TestMenuManagementIsAdminOnly(t *testing.T) {
	router, _ := newOfflineRouter(t)
	token := login(t, router, "receptionist", "recept123")

	w, env := do(t, router, http.MethodPost, "/api/v1/menu", token, gin.H{"name": "Suya", "category": "Grill", "price": 3000})
	if w.Code != http.StatusForbidden || env.Message != apperror.ErrForbidden.Message {
		t.Errorf("receptionist status = %d message = %q, want 403", w.Code, env.Message)
	}

	admin := login(t, router, "admin", "admin123")
	w, _ = do(t, router, http.MethodPost, "/api/v1/menu", admin, gin.H{"name": "Suya", "category": "Grill", "price": 3000})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("offline admin status = %d, want 503", w.Code)
	}
}

func TestUnknownLocation(t *testing.T) {
	router, _ := newOfflineRouter(t)
	token := login(t, router, "admin", "admin123")

	w, _ := do(t, router, http.MethodGet, "/api/v1/rooms/lekki/stats", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
