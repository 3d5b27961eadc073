package scheduling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/clinicware/admin-api/internal/model"
)

// PaymentSummary is the reconciled view of one appointment's payments.
// Total is the sum of every entry; Latest is the most recent entry and
// exists only to prefill a correction form. It is not a balance.
type PaymentSummary struct {
	Total  float64             `json:"total"`
	Latest *model.PaymentEntry `json:"latest,omitempty"`
}

// AggregatePayments filters entries down to one appointment and reduces
// them to a summary. Corrections are recorded as additional entries, so the
// displayed amount is always the sum, never the last value.
func AggregatePayments(entries []*model.PaymentEntry, appointmentID int64) PaymentSummary {
	var summary PaymentSummary
	for _, e := range entries {
		if e == nil || e.AppointmentID != appointmentID {
			continue
		}
		summary.Total += e.Amount
		if summary.Latest == nil || e.CreatedAt.After(summary.Latest.CreatedAt) {
			summary.Latest = e
		}
	}
	summary.Total = round2(summary.Total)
	return summary
}

// PaymentInput is a validated payment ready for the append-only create.
type PaymentInput struct {
	Amount      float64
	PaymentType model.PaymentType
}

// ValidatePaymentInput checks the raw form values for a payment entry.
// The amount must parse to a strictly positive number and the payment type
// must be one of the fixed enum values.
func ValidatePaymentInput(amountText string, paymentType model.PaymentType) (PaymentInput, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return PaymentInput{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amountText)
	}

	switch paymentType {
	case model.PaymentTypeCash, model.PaymentTypeOnline:
	default:
		return PaymentInput{}, ErrMissingPaymentType
	}

	return PaymentInput{Amount: round2(amount), PaymentType: paymentType}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
