package service

import (
	"context"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	memberRepo  repository.MemberRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, memberRepo repository.MemberRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, memberRepo: memberRepo}
}

func validAmount(a decimal.Decimal) bool {
	// Dues are fixed-point with exactly 2 fractional digits.
	return a.IsPositive() && a.Equal(a.Round(2))
}

func validPeriodMonth(m int32) bool {
	return m >= 1 && m <= 12
}

func (s *paymentService) Record(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if !validAmount(p.Amount) {
		return nil, domain.ValidationError("amount must be positive with at most 2 fractional digits")
	}
	if !validPeriodMonth(p.PeriodMonth) {
		return nil, domain.ValidationError("period month must be between 1 and 12")
	}
	if !domain.ValidPaymentType(p.Type) {
		return nil, domain.ValidationError("unknown payment type %q", p.Type)
	}
	if p.Type == domain.PaymentTypeTevkifat && p.TevkifatCenterID == nil {
		return nil, domain.ValidationError("tevkifat payments require a collecting center")
	}

	// The owning member must exist; a missing one is the caller's error.
	if _, err := s.memberRepo.GetByID(ctx, p.MemberID); err != nil {
		return nil, err
	}

	p.IsApproved = false
	p.ApprovedByUserID = nil
	p.ApprovedAt = nil
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a patch to a payment. Once approved, the financial fields
// (amount, period, type, center) are frozen; description and the document
// attachment stay editable.
func (s *paymentService) Update(ctx context.Context, id int32, patch domain.PaymentPatch) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsApproved && patch.TouchesFinancialFields() {
		return nil, domain.ImmutableStateError("payment %d is approved; financial fields are frozen", id)
	}

	if patch.Amount != nil {
		if !validAmount(*patch.Amount) {
			return nil, domain.ValidationError("amount must be positive with at most 2 fractional digits")
		}
		p.Amount = *patch.Amount
	}
	if patch.PeriodMonth != nil {
		if !validPeriodMonth(*patch.PeriodMonth) {
			return nil, domain.ValidationError("period month must be between 1 and 12")
		}
		p.PeriodMonth = *patch.PeriodMonth
	}
	if patch.PeriodYear != nil {
		p.PeriodYear = *patch.PeriodYear
	}
	if patch.Type != nil {
		if !domain.ValidPaymentType(*patch.Type) {
			return nil, domain.ValidationError("unknown payment type %q", *patch.Type)
		}
		p.Type = *patch.Type
	}
	if patch.TevkifatCenterID != nil {
		p.TevkifatCenterID = patch.TevkifatCenterID
	}
	if p.Type == domain.PaymentTypeTevkifat && p.TevkifatCenterID == nil {
		return nil, domain.ValidationError("tevkifat payments require a collecting center")
	}
	if patch.DocumentURL != nil {
		p.DocumentURL = patch.DocumentURL
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}

	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Approve marks a payment as verified for accounting. A second approval
// fails; the original approver and timestamp are never overwritten.
func (s *paymentService) Approve(ctx context.Context, id int32, approverID int32) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsApproved {
		return nil, domain.AlreadyApprovedError(id)
	}

	now := time.Now()
	p.IsApproved = true
	p.ApprovedByUserID = &approverID
	p.ApprovedAt = &now
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) Remove(ctx context.Context, id int32) error {
	return s.paymentRepo.Delete(ctx, id)
}

func (s *paymentService) Get(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) ListForMember(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByMember(ctx, memberID)
}

// AggregateForAccounting returns the filtered payment set together with its
// roll-up. The summary is derived purely from the returned set, so callers
// holding the slice can recompute it without another query.
func (s *paymentService) AggregateForAccounting(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, domain.PaymentSummary, error) {
	if filter.Month != nil && !validPeriodMonth(*filter.Month) {
		return nil, domain.PaymentSummary{}, domain.ValidationError("period month must be between 1 and 12")
	}
	payments, err := s.paymentRepo.ListForAccounting(ctx, filter)
	if err != nil {
		return nil, domain.PaymentSummary{}, err
	}
	return payments, domain.SummarizePayments(payments), nil
}
