package models

import (
	"time"

	"github.com/cineconnect/sponsorpay/pkg/types"
)

// SponsorshipApplication is a sponsor's request to fund a project's
// sponsorship package. The approval lifecycle (Status) and the payment
// lifecycle (PaymentStatus) advance independently; payment fields are written
// only by the webhook reconciler or an explicit operator status update.
type SponsorshipApplication struct {
	ID                   string                         `gorm:"column:id;primary_key;type:uuid" json:"id"`
	ProjectID            string                         `gorm:"column:project_id;type:varchar(64);not null;index:idx_project_id" json:"projectId"`
	SponsorID            string                         `gorm:"column:sponsor_id;type:varchar(64);not null;index:idx_sponsor_id" json:"sponsorId"`
	SponsorshipPackageID string                         `gorm:"column:sponsorship_package_id;type:varchar(64);not null" json:"sponsorshipPackageId"`
	Amount               float64                        `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Status               types.ApplicationStatus        `gorm:"column:status;type:varchar(32);not null" json:"status"`
	PaymentStatus        types.ApplicationPaymentStatus `gorm:"column:payment_status;type:varchar(32);not null" json:"paymentStatus"`
	// PaymentID is the gateway-issued id, recorded on a terminal webhook.
	PaymentID    *string  `gorm:"column:payment_id;type:varchar(128)" json:"paymentId,omitempty"`
	PaidAmount   *float64 `gorm:"column:paid_amount;type:numeric(12,2)" json:"paidAmount,omitempty"`
	PaidCurrency *string  `gorm:"column:paid_currency;type:varchar(8)" json:"paidCurrency,omitempty"`
	AgreementURL *string  `gorm:"column:agreement_url;type:varchar(512)" json:"agreementUrl,omitempty"`
	// ApplicationDate is set at submission; ResponseDate when Status leaves pending.
	ApplicationDate time.Time  `gorm:"column:application_date;not null" json:"applicationDate"`
	ResponseDate    *time.Time `gorm:"column:response_date" json:"responseDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (SponsorshipApplication) TableName() string {
	return "sponsorship_application"
}

func (a *SponsorshipApplication) IsPaid() bool {
	return a != nil && a.PaymentStatus == types.ApplicationPaymentStatusPaid
}
