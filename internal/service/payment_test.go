package service_test

import (
	"context"
	"testing"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentFixtures() (*MockPaymentRepo, *MockMemberRepo, service.PaymentService) {
	paymentRepo := new(MockPaymentRepo)
	memberRepo := new(MockMemberRepo)
	svc := service.NewPaymentService(paymentRepo, memberRepo)
	return paymentRepo, memberRepo, svc
}

func duesPayment(id int32) *domain.Payment {
	return &domain.Payment{
		ID:          id,
		MemberID:    7,
		PeriodMonth: 3,
		PeriodYear:  2026,
		Amount:      decimal.RequireFromString("250.00"),
		Type:        domain.PaymentTypeElden,
		Version:     1,
	}
}

func TestRecordPayment(t *testing.T) {
	paymentRepo, memberRepo, svc := newPaymentFixtures()

	memberRepo.On("GetByID", mock.Anything, int32(7)).Return(activeMember(7), nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Payment).ID = 11
		}).
		Return(nil)

	in := duesPayment(0)
	// Caller-supplied approval state must be discarded.
	in.IsApproved = true
	approver := int32(1)
	in.ApprovedByUserID = &approver

	p, err := svc.Record(context.Background(), in)

	require.NoError(t, err)
	assert.EqualValues(t, 11, p.ID)
	assert.False(t, p.IsApproved)
	assert.Nil(t, p.ApprovedByUserID)
	assert.Nil(t, p.ApprovedAt)
}

func TestRecordPaymentValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Payment)
	}{
		{"zero amount", func(p *domain.Payment) { p.Amount = decimal.Zero }},
		{"negative amount", func(p *domain.Payment) { p.Amount = decimal.RequireFromString("-10.00") }},
		{"too many fraction digits", func(p *domain.Payment) { p.Amount = decimal.RequireFromString("10.005") }},
		{"month zero", func(p *domain.Payment) { p.PeriodMonth = 0 }},
		{"month thirteen", func(p *domain.Payment) { p.PeriodMonth = 13 }},
		{"unknown type", func(p *domain.Payment) { p.Type = domain.PaymentType("CHECK") }},
		{"tevkifat without center", func(p *domain.Payment) {
			p.Type = domain.PaymentTypeTevkifat
			p.TevkifatCenterID = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentRepo, _, svc := newPaymentFixtures()
			in := duesPayment(0)
			tt.mutate(in)

			_, err := svc.Record(context.Background(), in)

			assert.True(t, domain.IsKind(err, domain.KindValidation))
			paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordPaymentMemberMustExist(t *testing.T) {
	paymentRepo, memberRepo, svc := newPaymentFixtures()

	memberRepo.On("GetByID", mock.Anything, int32(7)).Return(nil, domain.NotFoundError("member", 7))

	_, err := svc.Record(context.Background(), duesPayment(0))

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordDuplicatePeriodAllowed(t *testing.T) {
	// Two payments for the same member and period are both accepted; the
	// accounting roll-up simply sums them.
	paymentRepo, memberRepo, svc := newPaymentFixtures()

	memberRepo.On("GetByID", mock.Anything, int32(7)).Return(activeMember(7), nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	_, err := svc.Record(context.Background(), duesPayment(0))
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), duesPayment(0))
	require.NoError(t, err)

	paymentRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestUpdatePayment(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	paymentRepo.On("GetByID", mock.Anything, int32(11)).Return(duesPayment(11), nil)
	paymentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	amount := decimal.RequireFromString("300.00")
	desc := "güncellenen aidat"
	p, err := svc.Update(context.Background(), 11, domain.PaymentPatch{
		Amount:      &amount,
		Description: &desc,
	})

	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(amount))
	assert.Equal(t, "güncellenen aidat", p.Description)
}

func TestUpdateApprovedPaymentFinancialFieldsFrozen(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	p := duesPayment(11)
	p.IsApproved = true
	paymentRepo.On("GetByID", mock.Anything, int32(11)).Return(p, nil)

	amount := decimal.RequireFromString("300.00")
	_, err := svc.Update(context.Background(), 11, domain.PaymentPatch{Amount: &amount})

	assert.True(t, domain.IsKind(err, domain.KindImmutableState))
	paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateApprovedPaymentDescriptionStillEditable(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	p := duesPayment(11)
	p.IsApproved = true
	paymentRepo.On("GetByID", mock.Anything, int32(11)).Return(p, nil)
	paymentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	desc := "makbuz eklendi"
	url := "/api/v1/files/abc.pdf"
	got, err := svc.Update(context.Background(), 11, domain.PaymentPatch{
		Description: &desc,
		DocumentURL: &url,
	})

	require.NoError(t, err)
	assert.Equal(t, "makbuz eklendi", got.Description)
	require.NotNil(t, got.DocumentURL)
	assert.Equal(t, url, *got.DocumentURL)
}

func TestUpdateSwitchToTevkifatRequiresCenter(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	paymentRepo.On("GetByID", mock.Anything, int32(11)).Return(duesPayment(11), nil)

	typ := domain.PaymentTypeTevkifat
	_, err := svc.Update(context.Background(), 11, domain.PaymentPatch{Type: &typ})

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApprovePayment(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	paymentRepo.On("GetByID", mock.Anything, int32(11)).Return(duesPayment(11), nil)
	paymentRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.IsApproved && p.ApprovedByUserID != nil && *p.ApprovedByUserID == 42 && p.ApprovedAt != nil
	})).Return(nil)

	p, err := svc.Approve(context.Background(), 11, 42)

	require.NoError(t, err)
	assert.True(t, p.IsApproved)
	paymentRepo.AssertExpectations(t)
}

func TestApprovePaymentTwice(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	originalApprover := int32(42)
	approvedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := duesPayment(11)
	p.IsApproved = true
	p.ApprovedByUserID = &originalApprover
	p.ApprovedAt = &approvedAt
	paymentRepo.On("GetByID", mock.Anything, int32(11)).Return(p, nil)

	_, err := svc.Approve(context.Background(), 11, 99)

	assert.True(t, domain.IsKind(err, domain.KindAlreadyApproved))
	// The original approval stamp is untouched.
	assert.EqualValues(t, 42, *p.ApprovedByUserID)
	assert.Equal(t, approvedAt, *p.ApprovedAt)
	paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAggregateForAccounting(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	a := *duesPayment(1)
	a.Amount = decimal.RequireFromString("250.00")
	a.IsApproved = true
	b := *duesPayment(2)
	b.Amount = decimal.RequireFromString("0.10")
	c := *duesPayment(3)
	c.Amount = decimal.RequireFromString("0.20")

	year := int32(2026)
	filter := domain.PaymentFilter{Year: &year}
	paymentRepo.On("ListForAccounting", mock.Anything, filter).Return([]domain.Payment{a, b, c}, nil)

	payments, summary, err := svc.AggregateForAccounting(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, payments, 3)
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("250.30")),
		"got %s", summary.TotalAmount)
	assert.True(t, summary.ApprovedAmount.Equal(decimal.RequireFromString("250.00")))
	assert.EqualValues(t, 3, summary.PaymentCount)
	assert.EqualValues(t, 2, summary.PendingCount)
}

func TestAggregateForAccountingBadMonth(t *testing.T) {
	paymentRepo, _, svc := newPaymentFixtures()

	month := int32(13)
	_, _, err := svc.AggregateForAccounting(context.Background(), domain.PaymentFilter{Month: &month})

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	paymentRepo.AssertNotCalled(t, "ListForAccounting", mock.Anything, mock.Anything)
}

func TestSummarizePaymentsEmpty(t *testing.T) {
	summary := domain.SummarizePayments(nil)
	assert.True(t, summary.TotalAmount.Equal(decimal.Zero))
	assert.True(t, summary.ApprovedAmount.Equal(decimal.Zero))
	assert.Zero(t, summary.PaymentCount)
	assert.Zero(t, summary.PendingCount)
}
