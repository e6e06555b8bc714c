package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cineconnect/sponsorpay/internal/app/service/payment"
)

func TestApiVerifyPayment_Verified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/admin/payments/verify", ApiVerifyPayment(&stubPayMgr{verifyOK: true}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments/verify?paymentId=pay-123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"verified":true`)
}

func TestApiVerifyPayment_MissingPaymentID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/admin/payments/verify", ApiVerifyPayment(&stubPayMgr{
		verifyErr: &payment.Error{Kind: payment.KindValidation, Message: "paymentId is required"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments/verify", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Admin endpoints answer HTTP 200 with the envelope carrying the code.
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "paymentId is required")
	require.Contains(t, w.Body.String(), "40000")
}
