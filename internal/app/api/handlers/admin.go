package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cineconnect/sponsorpay/internal/app/service/application"
	notificationlog "github.com/cineconnect/sponsorpay/internal/app/service/notification_log"
	"github.com/cineconnect/sponsorpay/internal/app/service/payment"
	"github.com/cineconnect/sponsorpay/internal/app/service/statistics"
	"github.com/cineconnect/sponsorpay/pkg/response"
)

// @Summary      Scan applications
// @Description  Paginated application listing with field filters, for the admin console.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body application.ScanRequest true "Scan request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/applications/scan [post]
func ApiScanApplications(mgr application.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req application.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := mgr.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Scan webhook delivery logs
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body notification_log.ScanRequest true "Scan request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/notification_logs/scan [post]
func ApiScanNotificationLogs(svc *notificationlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificationlog.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Funding statistics
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/statistics [get]
func ApiFundingStatistic(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := stats.FundingStatistic(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Verify payment
// @Description  Manual confirmation path: asks the gateway whether the payment is completed.
// @Tags         Admin
// @Produce      json
// @Param        paymentId  query  string  true  "Gateway payment id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/payments/verify [get]
func ApiVerifyPayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := mgr.Verify(c.Request.Context(), c.Query("paymentId"))
		if err != nil {
			if pe, isPE := payment.As(err); isPE && pe.Kind == payment.KindValidation {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, pe.Message))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(gin.H{"verified": ok}))
	}
}

func RegisterAdminRoutes(r gin.IRouter, apps application.Manager, notif *notificationlog.Service, stats *statistics.Service, payMgr payment.Manager) {
	r.POST("/applications/scan", ApiScanApplications(apps))
	r.POST("/notification_logs/scan", ApiScanNotificationLogs(notif))
	r.GET("/statistics", ApiFundingStatistic(stats))
	r.GET("/payments/verify", ApiVerifyPayment(payMgr))
}
