package enums

import "fmt"

// PaymentIntentStatus tracks gateway progress for an order's payment.
type PaymentIntentStatus string

const (
	PaymentIntentStatusPending    PaymentIntentStatus = "pending"
	PaymentIntentStatusAuthorized PaymentIntentStatus = "authorized"
	PaymentIntentStatusCaptured   PaymentIntentStatus = "captured"
	PaymentIntentStatusVoided     PaymentIntentStatus = "voided"
	PaymentIntentStatusFailed     PaymentIntentStatus = "failed"
)

var validPaymentIntentStatuses = []PaymentIntentStatus{
	PaymentIntentStatusPending,
	PaymentIntentStatusAuthorized,
	PaymentIntentStatusCaptured,
	PaymentIntentStatusVoided,
	PaymentIntentStatusFailed,
}

// String implements fmt.Stringer.
func (s PaymentIntentStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s PaymentIntentStatus) IsValid() bool {
	for _, candidate := range validPaymentIntentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePaymentIntentStatus converts a raw string into a PaymentIntentStatus.
func ParsePaymentIntentStatus(value string) (PaymentIntentStatus, error) {
	for _, candidate := range validPaymentIntentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment intent status %q", value)
}
