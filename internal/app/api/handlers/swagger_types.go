package handlers

import (
	"github.com/cineconnect/sponsorpay/internal/models"
	"github.com/cineconnect/sponsorpay/pkg/response"
)

// RespOK is the generic admin/system envelope for documentation purposes.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// ErrorResponse is the public failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

// SuccessResponse is the minimal public success envelope.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type CreatePaymentResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PaymentID     string `json:"paymentId"`
	PaymentURL    string `json:"paymentUrl"`
	ApplicationID string `json:"applicationId"`
}

type PaymentStatusResponse struct {
	Success       bool    `json:"success"`
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	LastUpdated   string  `json:"lastUpdated"`
}

type CreateApplicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
	Message       string `json:"message"`
}

type ListApplicationsResponse struct {
	Success      bool                             `json:"success"`
	Applications []*models.SponsorshipApplication `json:"applications"`
	Count        int                              `json:"count"`
}

type GetApplicationResponse struct {
	Success     bool                           `json:"success"`
	Application *models.SponsorshipApplication `json:"application"`
}
