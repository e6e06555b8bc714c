package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cineconnect/sponsorpay/internal/app/service/application"
	notificationlog "github.com/cineconnect/sponsorpay/internal/app/service/notification_log"
	"github.com/cineconnect/sponsorpay/internal/models"
	"github.com/cineconnect/sponsorpay/pkg/config"
	"github.com/cineconnect/sponsorpay/pkg/logctx"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

// ErrInvalidMerchant is returned when the notification's merchant id does not
// match the configured merchant. No state is touched in that case.
var ErrInvalidMerchant = errors.New("invalid merchant")

// Notification is a gateway callback reporting a payment outcome. order_id
// carries the application id handed to the gateway at checkout.
type Notification struct {
	MerchantID string `form:"merchant_id" json:"merchant_id"`
	OrderID    string `form:"order_id" json:"order_id"`
	PaymentID  string `form:"payment_id" json:"payment_id"`
	Status     string `form:"status" json:"status"`
	Amount     string `form:"amount" json:"amount"`
	Currency   string `form:"currency" json:"currency"`
}

// Service is the sole path by which a webhook moves an application's payment
// state. Terminal updates are unconditional overwrites of the same fields to
// the same values, so redelivery of the same notification is idempotent.
type Service struct {
	cfg      *config.Config
	apps     application.Manager
	notifSvc *notificationlog.Service
	log      *zap.SugaredLogger
}

func NewService(cfg *config.Config, apps application.Manager, notif *notificationlog.Service, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, apps: apps, notifSvc: notif, log: log}
}

func (s *Service) saveLog(ctx context.Context, n *Notification, status models.PaymentNotificationLogStatus, handleErr error) {
	if s.notifSvc == nil {
		return
	}
	dataBytes, _ := json.Marshal(n)
	var traceID string
	if tid, ok := ctx.Value("traceID").(string); ok {
		traceID = tid
	}
	entry := &models.PaymentNotificationLog{
		GatewayID:     string(types.PaymentGatewayPayHere),
		TraceID:       traceID,
		ApplicationID: n.OrderID,
		PaymentID:     n.PaymentID,
		GatewayStatus: n.Status,
		Data:          datatypes.JSON(dataBytes),
		Status:        status,
	}
	if handleErr != nil {
		resBytes, _ := json.Marshal(map[string]any{"error": handleErr.Error()})
		entry.Result = lo.ToPtr(datatypes.JSON(resBytes))
	}
	s.notifSvc.Save(ctx, entry)
}

// Handle verifies the notification's origin and applies the payment outcome
// to the application record exactly as reported. Intermediate status codes
// are acknowledged without any state change.
func (s *Service) Handle(ctx context.Context, n *Notification) (resErr error) {
	log := logctx.FromCtx(ctx, s.log)

	// The only origin check: plaintext merchant id comparison. The gateway
	// contract carries no signature to verify.
	if n.MerchantID != s.cfg.PayHere.MerchantID {
		log.Warnw("webhook_invalid_merchant", "merchant_id", n.MerchantID, "application_id", n.OrderID)
		return ErrInvalidMerchant
	}

	s.saveLog(ctx, n, models.PaymentNotificationLogStatusReceived, nil)
	defer func() {
		status := models.PaymentNotificationLogStatusHandled
		if resErr != nil {
			status = models.PaymentNotificationLogStatusHandleFailed
		}
		s.saveLog(ctx, n, status, resErr)
	}()

	switch n.Status {
	case types.GatewayCodeCompleted:
		paidAmount, perr := strconv.ParseFloat(n.Amount, 64)
		if perr != nil {
			log.Warnw("webhook_unparseable_amount",
				"application_id", n.OrderID, "payment_id", n.PaymentID, "amount", n.Amount)
		}
		resErr = s.apps.UpdateStatus(ctx, n.OrderID, types.ApplicationStatusAccepted, &application.StatusUpdates{
			PaymentStatus: lo.ToPtr(types.ApplicationPaymentStatusPaid),
			PaymentID:     lo.ToPtr(n.PaymentID),
			PaidAmount:    lo.ToPtr(paidAmount),
			PaidCurrency:  lo.ToPtr(n.Currency),
		})
		if resErr == nil {
			log.Infow("webhook_payment_completed", "application_id", n.OrderID, "payment_id", n.PaymentID)
		}
		return resErr

	case types.GatewayCodeFailed, types.GatewayCodeCancelled:
		resErr = s.apps.UpdateStatus(ctx, n.OrderID, types.ApplicationStatusRejected, &application.StatusUpdates{
			PaymentStatus: lo.ToPtr(types.ApplicationPaymentStatusFailed),
			PaymentID:     lo.ToPtr(n.PaymentID),
		})
		if resErr == nil {
			log.Infow("webhook_payment_failed", "application_id", n.OrderID, "payment_id", n.PaymentID, "gateway_status", n.Status)
		}
		return resErr

	default:
		// Pending/intermediate notification: acknowledge, change nothing.
		log.Infow("webhook_ignored_status", "application_id", n.OrderID, "gateway_status", n.Status)
		return nil
	}
}
