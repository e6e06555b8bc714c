package types

// PaymentGateway identifies the upstream payment processor.
type PaymentGateway string

const (
	PaymentGatewayPayHere PaymentGateway = "payhere"
)

// PaymentStatus is the normalized view of a gateway-side payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusUnknown   PaymentStatus = "unknown"
)

// Gateway status codes as delivered on the wire (checkout search + webhook).
const (
	GatewayCodeCompleted = "2"
	GatewayCodePending   = "0"
	GatewayCodeFailed    = "-1"
	GatewayCodeCancelled = "-2"
)

// PaymentStatusFromGatewayCode maps a raw gateway status code to a
// PaymentStatus. The mapping is total: any code outside the documented set
// yields PaymentStatusUnknown.
func PaymentStatusFromGatewayCode(code string) PaymentStatus {
	switch code {
	case GatewayCodeCompleted:
		return PaymentStatusCompleted
	case GatewayCodePending:
		return PaymentStatusPending
	case GatewayCodeFailed:
		return PaymentStatusFailed
	case GatewayCodeCancelled:
		return PaymentStatusCancelled
	default:
		return PaymentStatusUnknown
	}
}

// ApplicationStatus is the sponsorship application's approval lifecycle,
// independent of the payment lifecycle.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusCompleted:
		return true
	}
	return false
}

// ApplicationPaymentStatus tracks whether the application has been paid for.
// Written only by the webhook reconciler once a terminal notification arrives.
type ApplicationPaymentStatus string

const (
	ApplicationPaymentStatusPending ApplicationPaymentStatus = "pending"
	ApplicationPaymentStatusPaid    ApplicationPaymentStatus = "paid"
	ApplicationPaymentStatusFailed  ApplicationPaymentStatus = "failed"
)

// MaxOrderAmount is the largest amount accepted for a single checkout order.
const MaxOrderAmount = 999999.99

// DefaultCurrency is the only currency the gateway account is provisioned for.
const DefaultCurrency = "LKR"
