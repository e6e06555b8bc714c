package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentNotificationLogStatus string

const (
	PaymentNotificationLogStatusReceived     PaymentNotificationLogStatus = "received"
	PaymentNotificationLogStatusHandled      PaymentNotificationLogStatus = "handled"
	PaymentNotificationLogStatusHandleFailed PaymentNotificationLogStatus = "handle_failed"
)

// PaymentNotificationLog is the audit record of every webhook delivery from
// the gateway, stored with the raw payload. Redeliveries produce additional
// rows; the log is append-only.
type PaymentNotificationLog struct {
	ID            string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	GatewayID     string `gorm:"column:gateway_id;type:varchar(64);not null" json:"gateway_id"`
	TraceID       string `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	ApplicationID string `gorm:"column:application_id;type:varchar(64);index:idx_notif_application_id" json:"application_id"`
	PaymentID     string `gorm:"column:payment_id;type:varchar(128)" json:"payment_id"`
	// GatewayStatus is the raw status code as delivered ("2", "0", "-1", "-2", ...).
	GatewayStatus string                       `gorm:"column:gateway_status;type:varchar(16)" json:"gateway_status"`
	Data          datatypes.JSON               `gorm:"column:data;type:jsonb" json:"data"`
	Result        *datatypes.JSON              `gorm:"column:result;type:jsonb" json:"result"`
	Status        PaymentNotificationLogStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

func (PaymentNotificationLog) TableName() string { return "payment_notification_log" }
