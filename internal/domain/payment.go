package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeTevkifat PaymentType = "TEVKIFAT" // payroll withholding via a collecting center
	PaymentTypeElden    PaymentType = "ELDEN"    // cash
	PaymentTypeHavale   PaymentType = "HAVALE"   // bank transfer
)

// ValidPaymentType reports whether t is one of the known payment channels.
func ValidPaymentType(t PaymentType) bool {
	return t == PaymentTypeTevkifat || t == PaymentTypeElden || t == PaymentTypeHavale
}

type Payment struct {
	ID               int32           `json:"id"`
	MemberID         int32           `json:"member_id"`
	PeriodMonth      int32           `json:"period_month"` // 1-12
	PeriodYear       int32           `json:"period_year"`
	Amount           decimal.Decimal `json:"amount"` // always 2 fractional digits
	Type             PaymentType     `json:"type"`
	TevkifatCenterID *int32          `json:"tevkifat_center_id,omitempty"`
	DocumentURL      *string         `json:"document_url,omitempty"`
	Description      string          `json:"description,omitempty"`
	IsApproved       bool            `json:"is_approved"`
	ApprovedByUserID *int32          `json:"approved_by_user_id,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	CreatedOn        time.Time       `json:"created_on"`
	UpdatedOn        time.Time       `json:"updated_on"`
	Version          int32           `json:"version"`
}

// PaymentPatch carries the fields an update may change. Financial fields
// (amount, period, type, center) are frozen once the payment is approved;
// description and document attachment stay editable.
type PaymentPatch struct {
	PeriodMonth      *int32           `json:"period_month,omitempty"`
	PeriodYear       *int32           `json:"period_year,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Type             *PaymentType     `json:"type,omitempty"`
	TevkifatCenterID *int32           `json:"tevkifat_center_id,omitempty"`
	DocumentURL      *string          `json:"document_url,omitempty"`
	Description      *string          `json:"description,omitempty"`
}

// TouchesFinancialFields reports whether the patch edits anything frozen by
// approval.
func (p PaymentPatch) TouchesFinancialFields() bool {
	return p.PeriodMonth != nil || p.PeriodYear != nil || p.Amount != nil ||
		p.Type != nil || p.TevkifatCenterID != nil
}

// PaymentFilter narrows accounting queries. Nil fields match everything.
type PaymentFilter struct {
	BranchID         *int32
	TevkifatCenterID *int32
	Year             *int32
	Month            *int32
	Approved         *bool
}

// PaymentSummary is the accounting roll-up over a payment set.
type PaymentSummary struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	PendingCount   int32           `json:"pending_count"`
	PaymentCount   int32           `json:"payment_count"`
}

// SummarizePayments derives the accounting roll-up from a payment set. It is
// a pure function so any caller holding the set can re-derive the totals
// without another query. Sums are fixed-point decimal; no floats touch dues.
func SummarizePayments(payments []Payment) PaymentSummary {
	s := PaymentSummary{
		TotalAmount:    decimal.Zero,
		ApprovedAmount: decimal.Zero,
	}
	for _, p := range payments {
		s.PaymentCount++
		s.TotalAmount = s.TotalAmount.Add(p.Amount)
		if p.IsApproved {
			s.ApprovedAmount = s.ApprovedAmount.Add(p.Amount)
		} else {
			s.PendingCount++
		}
	}
	return s
}
