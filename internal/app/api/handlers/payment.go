package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cineconnect/sponsorpay/internal/app/service/payment"
	"github.com/cineconnect/sponsorpay/internal/app/service/reconciler"
	"github.com/cineconnect/sponsorpay/pkg/logctx"
	"go.uber.org/zap"
)

// The payment and application endpoints answer with the marketplace's
// public envelope ({success, error?, ...}) and real HTTP status codes; the
// admin/system endpoints use pkg/response instead.

type errorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func failJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResp{Success: false, Error: msg})
}

// paymentFail maps an orchestrator error to its HTTP status and public
// message without leaking internals.
func paymentFail(c *gin.Context, err error) {
	if pe, ok := payment.As(err); ok {
		failJSON(c, payment.HTTPStatus(err), pe.Message)
		return
	}
	failJSON(c, http.StatusInternalServerError, "Internal server error")
}

type createPaymentResp struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PaymentID     string `json:"paymentId"`
	PaymentURL    string `json:"paymentUrl"`
	ApplicationID string `json:"applicationId"`
}

// @Summary      Create payment order
// @Description  Validates the order request and opens a checkout order with the payment gateway.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.CreateOrderRequest true "Payment order request"
// @Success      201  {object}  handlers.CreatePaymentResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Router       /api/v1/payments [post]
func ApiCreatePayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			failJSON(c, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}

		res, err := mgr.CreateOrder(c.Request.Context(), &req)
		if err != nil {
			paymentFail(c, err)
			return
		}

		c.JSON(http.StatusCreated, createPaymentResp{
			Success:       true,
			Message:       "Payment order created successfully",
			PaymentID:     res.PaymentID,
			PaymentURL:    res.PaymentURL,
			ApplicationID: res.ApplicationID,
		})
	}
}

type paymentStatusResp struct {
	Success       bool    `json:"success"`
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	LastUpdated   string  `json:"lastUpdated"`
}

// @Summary      Get payment status
// @Description  Looks a payment up by gateway payment id and returns the normalized status.
// @Tags         Payment
// @Produce      json
// @Param        paymentId      query  string  false  "Gateway payment id"
// @Param        applicationId  query  string  false  "Application id (unsupported lookup path)"
// @Success      200  {object}  handlers.PaymentStatusResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      404  {object}  handlers.ErrorResponse
// @Router       /api/v1/payments [get]
func ApiGetPaymentStatus(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := mgr.GetStatus(c.Request.Context(), c.Query("paymentId"), c.Query("applicationId"))
		if err != nil {
			paymentFail(c, err)
			return
		}

		c.JSON(http.StatusOK, paymentStatusResp{
			Success:       true,
			PaymentStatus: string(res.Status),
			Amount:        res.Amount,
			Currency:      res.Currency,
			LastUpdated:   res.LastUpdated,
		})
	}
}

// @Summary      Payment gateway webhook
// @Description  Receives asynchronous payment outcome notifications from the gateway. Accepts form or JSON bodies.
// @Tags         Webhook
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Success      200  {object}  handlers.SuccessResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Router       /api/v1/payments/webhook [post]
func ApiPaymentWebhook(rec *reconciler.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var n reconciler.Notification
		if err := c.ShouldBind(&n); err != nil {
			failJSON(c, http.StatusBadRequest, "Invalid webhook payload")
			return
		}

		logctx.FromGin(c, log).Infow("webhook_received",
			"application_id", n.OrderID, "payment_id", n.PaymentID, "gateway_status", n.Status)

		if err := rec.Handle(c.Request.Context(), &n); err != nil {
			if errors.Is(err, reconciler.ErrInvalidMerchant) {
				failJSON(c, http.StatusBadRequest, "Invalid merchant")
				return
			}
			logctx.FromGin(c, log).Errorw("webhook_handle_error", "error", err.Error())
			failJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func RegisterPaymentRoutes(r gin.IRouter, mgr payment.Manager, rec *reconciler.Service, log *zap.SugaredLogger) {
	r.POST("/payments", ApiCreatePayment(mgr))
	r.GET("/payments", ApiGetPaymentStatus(mgr))
	r.POST("/payments/webhook", ApiPaymentWebhook(rec, log))
}
