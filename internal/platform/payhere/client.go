package payhere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cineconnect/sponsorpay/pkg/config"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

var (
	// ErrMissingCredentials is returned before any network call when the
	// merchant credential pair is not configured.
	ErrMissingCredentials = errors.New("payhere: merchant credentials missing")
	// ErrPaymentNotFound is returned when the gateway reports zero matching
	// records for a payment id.
	ErrPaymentNotFound = errors.New("payhere: payment not found")
)

// Client talks to the PayHere checkout API. Requests authenticate with HTTP
// Basic auth over the merchant id/secret pair. There is no retry: transport
// and gateway errors surface immediately.
type Client struct {
	cfg  *config.Config
	http *http.Client
	log  *zap.SugaredLogger
}

func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

type CreateOrderRequest struct {
	ApplicationID string
	Amount        float64
	Currency      string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	ReturnURL     string
	NotifyURL     string
}

type CreateOrderResult struct {
	PaymentID  string
	PaymentURL string
}

// PaymentRecord is the normalized view of a gateway-side payment returned by
// the search endpoint.
type PaymentRecord struct {
	Status    types.PaymentStatus
	Amount    float64
	Currency  string
	UpdatedAt string
}

// checkoutPayload is the wire format of POST /checkout/initiate. The order id
// carries the application id so the webhook can correlate back.
type checkoutPayload struct {
	ReturnURL string  `json:"return_url"`
	CancelURL string  `json:"cancel_url"`
	NotifyURL string  `json:"notify_url"`
	OrderID   string  `json:"order_id"`
	Items     string  `json:"items"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
}

type checkoutResponse struct {
	Success    bool   `json:"success"`
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
	Msg        string `json:"msg"`
}

type searchRecord struct {
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"created_at"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Data    []searchRecord `json:"data"`
	Msg     string         `json:"msg"`
}

func (c *Client) credentials() (id, secret string, err error) {
	id = c.cfg.PayHere.MerchantID
	secret = c.cfg.PayHere.MerchantSecret
	if id == "" || secret == "" {
		return "", "", ErrMissingCredentials
	}
	return id, secret, nil
}

// CreateOrder opens a checkout order with the gateway and returns the
// gateway-issued payment id plus the hosted payment page URL.
func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error) {
	id, secret, err := c.credentials()
	if err != nil {
		c.log.Errorw("payhere_create_order_no_credentials", "application_id", req.ApplicationID)
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = types.DefaultCurrency
	}

	payload := checkoutPayload{
		ReturnURL: req.ReturnURL,
		CancelURL: req.ReturnURL,
		NotifyURL: req.NotifyURL,
		OrderID:   req.ApplicationID,
		Items:     fmt.Sprintf("CineConnect Sponsorship - Application %s", req.ApplicationID),
		Amount:    req.Amount,
		Currency:  currency,
		FirstName: req.CustomerName,
		Email:     req.CustomerEmail,
		Phone:     req.CustomerPhone,
		Country:   "LK",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payhere: marshal checkout payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PayHere.BaseURL+"/checkout/initiate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payhere: build checkout request: %w", err)
	}
	httpReq.SetBasicAuth(id, secret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Errorw("payhere_create_order_transport_error", "error", err.Error())
		return nil, fmt.Errorf("payhere: checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	var out checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("payhere: decode checkout response: %w", err)
	}
	if !out.Success {
		msg := out.Msg
		if msg == "" {
			msg = "payment initiation failed"
		}
		c.log.Errorw("payhere_create_order_rejected", "application_id", req.ApplicationID, "msg", msg, "http_status", resp.StatusCode)
		return nil, fmt.Errorf("payhere: %s", msg)
	}

	return &CreateOrderResult{PaymentID: out.PaymentID, PaymentURL: out.PaymentURL}, nil
}

func (c *Client) search(ctx context.Context, paymentID string) (*searchRecord, error) {
	id, secret, err := c.credentials()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.PayHere.BaseURL+"/payment/search/payment_id/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("payhere: build search request: %w", err)
	}
	httpReq.SetBasicAuth(id, secret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Errorw("payhere_search_transport_error", "error", err.Error())
		return nil, fmt.Errorf("payhere: search request failed: %w", err)
	}
	defer resp.Body.Close()

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("payhere: decode search response: %w", err)
	}
	if !out.Success || len(out.Data) == 0 {
		return nil, ErrPaymentNotFound
	}
	return &out.Data[0], nil
}

// GetStatus looks a payment up by its gateway id and normalizes the status
// code. Returns ErrPaymentNotFound when the gateway has no matching record.
func (c *Client) GetStatus(ctx context.Context, paymentID string) (*PaymentRecord, error) {
	rec, err := c.search(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return &PaymentRecord{
		Status:    types.PaymentStatusFromGatewayCode(rec.Status),
		Amount:    rec.Amount,
		Currency:  rec.Currency,
		UpdatedAt: rec.CreatedAt,
	}, nil
}

// Verify reports whether the gateway considers the payment completed. Used by
// the manual/administrative confirmation path, not the webhook path.
func (c *Client) Verify(ctx context.Context, paymentID string) (bool, error) {
	rec, err := c.search(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return false, nil
		}
		return false, err
	}
	return rec.Status == types.GatewayCodeCompleted, nil
}
