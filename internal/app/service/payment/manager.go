package payment

import (
	"context"
	"encoding/json"

	"github.com/cineconnect/sponsorpay/internal/platform/payhere"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

// CreateOrderRequest is the inbound order request at the API boundary.
// Amount is a json.Number so both numeric and string bodies parse.
type CreateOrderRequest struct {
	ApplicationID string      `json:"applicationId"`
	Amount        json.Number `json:"amount"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone"`
	CustomerName  string      `json:"customerName"`
	ReturnURL     string      `json:"returnUrl"`
	NotifyURL     string      `json:"notifyUrl"`
}

type CreateOrderResult struct {
	ApplicationID string `json:"applicationId"`
	PaymentID     string `json:"paymentId"`
	PaymentURL    string `json:"paymentUrl"`
}

type StatusResult struct {
	Status      types.PaymentStatus `json:"paymentStatus"`
	Amount      float64             `json:"amount"`
	Currency    string              `json:"currency"`
	LastUpdated string              `json:"lastUpdated"`
}

// Gateway is the outbound payment processor boundary, implemented by the
// PayHere client.
type Gateway interface {
	CreateOrder(ctx context.Context, req *payhere.CreateOrderRequest) (*payhere.CreateOrderResult, error)
	GetStatus(ctx context.Context, paymentID string) (*payhere.PaymentRecord, error)
	Verify(ctx context.Context, paymentID string) (bool, error)
}

// Manager validates inbound order requests and coordinates with the gateway.
// It never touches persistence; application state changes flow through the
// webhook reconciler only.
type Manager interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error)
	// GetStatus looks a payment up by gateway id. Lookup by applicationId
	// alone is not supported and is rejected with a guidance error.
	GetStatus(ctx context.Context, paymentID, applicationID string) (*StatusResult, error)
	// Verify reports whether the gateway confirms the payment as completed.
	Verify(ctx context.Context, paymentID string) (bool, error)
}
