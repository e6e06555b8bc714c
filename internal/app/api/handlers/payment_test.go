package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cineconnect/sponsorpay/internal/app/service/payment"
	"github.com/cineconnect/sponsorpay/internal/app/service/reconciler"
	"github.com/cineconnect/sponsorpay/pkg/config"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

type stubPayMgr struct {
	createRes *payment.CreateOrderResult
	createErr error
	statusRes *payment.StatusResult
	statusErr error
	verifyOK  bool
	verifyErr error
}

func (s *stubPayMgr) CreateOrder(_ context.Context, _ *payment.CreateOrderRequest) (*payment.CreateOrderResult, error) {
	return s.createRes, s.createErr
}

func (s *stubPayMgr) GetStatus(_ context.Context, _ string, _ string) (*payment.StatusResult, error) {
	return s.statusRes, s.statusErr
}

func (s *stubPayMgr) Verify(_ context.Context, _ string) (bool, error) {
	return s.verifyOK, s.verifyErr
}

func TestApiCreatePayment_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/payments", ApiCreatePayment(&stubPayMgr{
		createRes: &payment.CreateOrderResult{
			ApplicationID: "app-1",
			PaymentID:     "pay-123",
			PaymentURL:    "https://sandbox.payhere.lk/pay/pay-123",
		},
	}))

	body, _ := json.Marshal(map[string]any{
		"applicationId": "app-1",
		"amount":        2500,
		"customerEmail": "sponsor@example.com",
		"customerName":  "A Sponsor",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var got createPaymentResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "Payment order created successfully", got.Message)
	require.Equal(t, "pay-123", got.PaymentID)
	require.Equal(t, "https://sandbox.payhere.lk/pay/pay-123", got.PaymentURL)
	require.Equal(t, "app-1", got.ApplicationID)
}

func TestApiCreatePayment_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/payments", ApiCreatePayment(&stubPayMgr{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid JSON in request body")
}

func TestApiCreatePayment_ValidationErrorMapsTo400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/payments", ApiCreatePayment(&stubPayMgr{
		createErr: &payment.Error{Kind: payment.KindValidation, Message: "amount must be a positive number"},
	}))

	body, _ := json.Marshal(map[string]any{"applicationId": "app-1", "amount": -5})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got errorResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.False(t, got.Success)
	require.Equal(t, "amount must be a positive number", got.Error)
}

func TestApiGetPaymentStatus_OK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/payments", ApiGetPaymentStatus(&stubPayMgr{
		statusRes: &payment.StatusResult{
			Status:      types.PaymentStatusCompleted,
			Amount:      2500,
			Currency:    "LKR",
			LastUpdated: "2026-08-01T12:00:00Z",
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?paymentId=pay-123", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got paymentStatusResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "completed", got.PaymentStatus)
	require.Equal(t, 2500.0, got.Amount)
	require.Equal(t, "LKR", got.Currency)
}

func TestApiGetPaymentStatus_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/payments", ApiGetPaymentStatus(&stubPayMgr{
		statusErr: &payment.Error{Kind: payment.KindNotFound, Message: "Payment not found"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?paymentId=missing", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Payment not found")
}

func TestApiGetPaymentStatus_MissingIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/payments", ApiGetPaymentStatus(&stubPayMgr{
		statusErr: &payment.Error{Kind: payment.KindValidation, Message: "paymentId or applicationId is required"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "paymentId or applicationId is required")
}

func newWebhookRouter(apps *stubAppMgr) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{PayHere: config.PayHereConfig{MerchantID: "M1001"}}
	rec := reconciler.NewService(cfg, apps, nil, zap.NewNop().Sugar())
	r := gin.New()
	r.POST("/api/v1/payments/webhook", ApiPaymentWebhook(rec, zap.NewNop().Sugar()))
	return r
}

func TestApiPaymentWebhook_FormCompleted(t *testing.T) {
	apps := &stubAppMgr{}
	r := newWebhookRouter(apps)

	form := url.Values{
		"merchant_id": {"M1001"},
		"order_id":    {"app-1"},
		"payment_id":  {"pay-123"},
		"status":      {"2"},
		"amount":      {"2500.00"},
		"currency":    {"LKR"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)

	require.Len(t, apps.statusCalls, 1)
	call := apps.statusCalls[0]
	require.Equal(t, "app-1", call.id)
	require.Equal(t, types.ApplicationStatusAccepted, call.status)
	require.Equal(t, types.ApplicationPaymentStatusPaid, *call.updates.PaymentStatus)
	require.Equal(t, "pay-123", *call.updates.PaymentID)
	require.Equal(t, 2500.0, *call.updates.PaidAmount)
}

func TestApiPaymentWebhook_JSONBody(t *testing.T) {
	apps := &stubAppMgr{}
	r := newWebhookRouter(apps)

	body, _ := json.Marshal(map[string]string{
		"merchant_id": "M1001",
		"order_id":    "app-2",
		"payment_id":  "pay-456",
		"status":      "-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, apps.statusCalls, 1)
	require.Equal(t, types.ApplicationStatusRejected, apps.statusCalls[0].status)
	require.Equal(t, types.ApplicationPaymentStatusFailed, *apps.statusCalls[0].updates.PaymentStatus)
}

func TestApiPaymentWebhook_InvalidMerchant(t *testing.T) {
	apps := &stubAppMgr{}
	r := newWebhookRouter(apps)

	form := url.Values{
		"merchant_id": {"intruder"},
		"order_id":    {"app-1"},
		"payment_id":  {"pay-123"},
		"status":      {"2"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid merchant")
	require.Empty(t, apps.statusCalls)
}

func TestRegisterPaymentRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	cfg := &config.Config{PayHere: config.PayHereConfig{MerchantID: "M1001"}}
	rec := reconciler.NewService(cfg, &stubAppMgr{}, nil, zap.NewNop().Sugar())
	RegisterPaymentRoutes(g, &stubPayMgr{}, rec, zap.NewNop().Sugar())

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/payments"))
	require.True(t, contains("GET /api/v1/payments"))
	require.True(t, contains("POST /api/v1/payments/webhook"))
}
