package payment

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/cineconnect/sponsorpay/internal/platform/payhere"
	"github.com/cineconnect/sponsorpay/pkg/config"
	"github.com/cineconnect/sponsorpay/pkg/logctx"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

type Service struct {
	cfg     *config.Config
	gateway Gateway
	log     *zap.SugaredLogger
}

func NewService(cfg *config.Config, gateway Gateway, log *zap.SugaredLogger) Manager {
	return &Service{cfg: cfg, gateway: gateway, log: log}
}

// validate checks the order request in a fixed order and fails on the first
// violation with a message naming the offending field.
func validate(req *CreateOrderRequest) (amount float64, err *Error) {
	if req.ApplicationID == "" {
		return 0, validationErr("applicationId is required")
	}
	if req.Amount.String() == "" {
		return 0, validationErr("amount is required")
	}
	if req.CustomerEmail == "" {
		return 0, validationErr("customerEmail is required")
	}
	if req.CustomerName == "" {
		return 0, validationErr("customerName is required")
	}
	if strings.TrimSpace(req.ApplicationID) == "" {
		return 0, validationErr("applicationId must be a non-empty string")
	}
	amount, perr := req.Amount.Float64()
	if perr != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, validationErr("amount must be a positive number")
	}
	if amount > types.MaxOrderAmount {
		return 0, validationErr("amount exceeds maximum allowed value")
	}
	if !emailRe.MatchString(req.CustomerEmail) {
		return 0, validationErr("customerEmail must be a valid email address")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return 0, validationErr("customerName must be a non-empty string")
	}
	if req.CustomerPhone != "" && !phoneRe.MatchString(req.CustomerPhone) {
		return 0, validationErr("customerPhone format is invalid")
	}
	return amount, nil
}

func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error) {
	amount, verr := validate(req)
	if verr != nil {
		return nil, verr
	}

	applicationID := strings.TrimSpace(req.ApplicationID)

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = s.cfg.DefaultReturnURL()
	}
	notifyURL := req.NotifyURL
	if notifyURL == "" {
		notifyURL = s.cfg.DefaultNotifyURL()
	}

	res, err := s.gateway.CreateOrder(ctx, &payhere.CreateOrderRequest{
		ApplicationID: applicationID,
		Amount:        amount,
		Currency:      types.DefaultCurrency,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		ReturnURL:     returnURL,
		NotifyURL:     notifyURL,
	})
	if err != nil {
		if errors.Is(err, payhere.ErrMissingCredentials) {
			logctx.FromCtx(ctx, s.log).Errorw("payment_gateway_not_configured", "application_id", applicationID)
			return nil, &Error{Kind: KindConfig, Message: "Payment gateway configuration missing"}
		}
		logctx.FromCtx(ctx, s.log).Errorw("payment_create_order_failed", "application_id", applicationID, "error", err.Error())
		return nil, upstreamErr("Failed to create payment order", err)
	}

	return &CreateOrderResult{
		ApplicationID: applicationID,
		PaymentID:     res.PaymentID,
		PaymentURL:    res.PaymentURL,
	}, nil
}

func (s *Service) GetStatus(ctx context.Context, paymentID, applicationID string) (*StatusResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	applicationID = strings.TrimSpace(applicationID)

	if paymentID == "" && applicationID == "" {
		return nil, validationErr("paymentId or applicationId is required")
	}
	// Status lives gateway-side keyed by payment id; there is no reverse
	// index from application id.
	if paymentID == "" {
		return nil, validationErr("paymentId is required for status lookup")
	}

	rec, err := s.gateway.GetStatus(ctx, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, payhere.ErrPaymentNotFound):
			return nil, &Error{Kind: KindNotFound, Message: "Payment not found"}
		case errors.Is(err, payhere.ErrMissingCredentials):
			return nil, &Error{Kind: KindConfig, Message: "Payment gateway configuration missing"}
		default:
			logctx.FromCtx(ctx, s.log).Errorw("payment_get_status_failed", "payment_id", paymentID, "error", err.Error())
			return nil, upstreamErr("Failed to get payment status", err)
		}
	}

	return &StatusResult{
		Status:      rec.Status,
		Amount:      rec.Amount,
		Currency:    rec.Currency,
		LastUpdated: rec.UpdatedAt,
	}, nil
}

func (s *Service) Verify(ctx context.Context, paymentID string) (bool, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return false, validationErr("paymentId is required")
	}
	ok, err := s.gateway.Verify(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payhere.ErrMissingCredentials) {
			return false, &Error{Kind: KindConfig, Message: "Payment gateway configuration missing"}
		}
		return false, upstreamErr("Failed to verify payment", err)
	}
	return ok, nil
}
