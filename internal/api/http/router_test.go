package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/security"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub services with pluggable behavior for the routes under test. Handlers
// for routes a test does not hit are never reached, so the zero value is fine.

type stubMemberService struct {
	apply     func(ctx context.Context, m *domain.Member) (*domain.Member, error)
	approve   func(ctx context.Context, id int32, regnum string, approverID int32) (*domain.Member, error)
	setStatus func(ctx context.Context, id int32, status domain.MemberStatus, reason string, actorID int32) (*domain.Member, error)
	delete    func(ctx context.Context, id int32, opts domain.DeleteOptions, actorID int32) error
	get       func(ctx context.Context, id int32) (*domain.Member, error)
}

func (s *stubMemberService) ApplyForMembership(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	return s.apply(ctx, m)
}
func (s *stubMemberService) Approve(ctx context.Context, id int32, regnum string, approverID int32) (*domain.Member, error) {
	return s.approve(ctx, id, regnum, approverID)
}
func (s *stubMemberService) Reject(context.Context, int32, int32) error   { return nil }
func (s *stubMemberService) Activate(context.Context, int32, int32) error { return nil }
func (s *stubMemberService) SetStatus(ctx context.Context, id int32, status domain.MemberStatus, reason string, actorID int32) (*domain.Member, error) {
	return s.setStatus(ctx, id, status, reason, actorID)
}
func (s *stubMemberService) Delete(ctx context.Context, id int32, opts domain.DeleteOptions, actorID int32) error {
	return s.delete(ctx, id, opts, actorID)
}
func (s *stubMemberService) Get(ctx context.Context, id int32) (*domain.Member, error) {
	return s.get(ctx, id)
}
func (s *stubMemberService) List(context.Context, *domain.MemberStatus) ([]domain.Member, error) {
	return nil, nil
}
func (s *stubMemberService) History(context.Context, int32) ([]domain.AuditEntry, error) {
	return nil, nil
}

type stubPaymentService struct {
	approve   func(ctx context.Context, id int32, approverID int32) (*domain.Payment, error)
	aggregate func(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, domain.PaymentSummary, error)
}

func (s *stubPaymentService) Record(context.Context, *domain.Payment) (*domain.Payment, error) {
	return nil, nil
}
func (s *stubPaymentService) Update(context.Context, int32, domain.PaymentPatch) (*domain.Payment, error) {
	return nil, nil
}
func (s *stubPaymentService) Approve(ctx context.Context, id int32, approverID int32) (*domain.Payment, error) {
	return s.approve(ctx, id, approverID)
}
func (s *stubPaymentService) Remove(context.Context, int32) error { return nil }
func (s *stubPaymentService) Get(context.Context, int32) (*domain.Payment, error) {
	return nil, domain.NotFoundError("payment", 0)
}
func (s *stubPaymentService) ListForMember(context.Context, int32) ([]domain.Payment, error) {
	return nil, nil
}
func (s *stubPaymentService) AggregateForAccounting(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, domain.PaymentSummary, error) {
	return s.aggregate(ctx, filter)
}

type stubDocumentService struct{}

func (stubDocumentService) Render(context.Context, int32, int32, int32) (*domain.RenderResult, error) {
	return nil, nil
}
func (stubDocumentService) RecordUpload(context.Context, int32, domain.DocumentType, string, string, int32) (*domain.GeneratedDocument, error) {
	return nil, nil
}
func (stubDocumentService) ListForMember(context.Context, int32) ([]domain.GeneratedDocument, error) {
	return nil, nil
}
func (stubDocumentService) ListTemplates(context.Context, bool) ([]domain.DocumentTemplate, error) {
	return nil, nil
}
func (stubDocumentService) CreateTemplate(context.Context, *domain.DocumentTemplate) error {
	return nil
}
func (stubDocumentService) UpdateTemplate(context.Context, *domain.DocumentTemplate) error {
	return nil
}

type stubStorage struct{}

func (stubStorage) Save(string, io.Reader) error       { return nil }
func (stubStorage) Open(string) (io.ReadCloser, error) { return nil, domain.NotFoundError("file", 0) }
func (stubStorage) Delete(string) error                { return nil }
func (stubStorage) URL(key string) string              { return "/api/v1/files/" + key }

type routerFixtures struct {
	members  *stubMemberService
	payments *stubPaymentService
	tm       security.TokenManager
	router   http.Handler
}

func newRouterFixtures(t *testing.T) *routerFixtures {
	t.Helper()
	f := &routerFixtures{
		members:  &stubMemberService{},
		payments: &stubPaymentService{},
		tm:       security.NewTokenManager("test-secret", 60),
	}
	f.router = NewRouter(f.members, f.payments, stubDocumentService{}, stubStorage{}, f.tm)
	return f
}

func (f *routerFixtures) request(t *testing.T, method, target string, body string, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	if roles != nil {
		token, err := f.tm.GenerateAccessToken(42, "clerk@example.com", roles)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouterRequiresToken(t *testing.T) {
	f := newRouterFixtures(t)

	rec := f.request(t, http.MethodGet, "/api/v1/members/7", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRejectsGarbageToken(t *testing.T) {
	f := newRouterFixtures(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/7", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthzIsOpen(t *testing.T) {
	f := newRouterFixtures(t)

	rec := f.request(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplyMember(t *testing.T) {
	f := newRouterFixtures(t)
	f.members.apply = func(_ context.Context, m *domain.Member) (*domain.Member, error) {
		m.ID = 7
		m.Status = domain.MemberStatusPending
		return m, nil
	}

	rec := f.request(t, http.MethodPost, "/api/v1/members",
		`{"national_id":"12345678901","first_name":"Ayşe","last_name":"Yılmaz"}`, "CLERK")

	require.Equal(t, http.StatusCreated, rec.Code)
	var m domain.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.EqualValues(t, 7, m.ID)
	assert.Equal(t, domain.MemberStatusPending, m.Status)
}

func TestApproveMemberCarriesActor(t *testing.T) {
	f := newRouterFixtures(t)
	var gotApprover int32
	f.members.approve = func(_ context.Context, id int32, regnum string, approverID int32) (*domain.Member, error) {
		gotApprover = approverID
		m := &domain.Member{ID: id, Status: domain.MemberStatusApproved, RegistrationNumber: &regnum}
		return m, nil
	}

	rec := f.request(t, http.MethodPost, "/api/v1/members/7/approve",
		`{"registration_number":"1001"}`, "CLERK")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 42, gotApprover)
}

func TestErrorKindToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError("bad"), http.StatusBadRequest},
		{"not found", domain.NotFoundError("member", 7), http.StatusNotFound},
		{"invalid transition", domain.InvalidTransitionError(domain.MemberStatusActive, domain.MemberStatusApproved), http.StatusConflict},
		{"conflict", domain.ConflictError("stale"), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixtures(t)
			f.members.approve = func(context.Context, int32, string, int32) (*domain.Member, error) {
				return nil, tt.err
			}

			rec := f.request(t, http.MethodPost, "/api/v1/members/7/approve", `{}`, "CLERK")

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestInternalErrorBodyIsGeneric(t *testing.T) {
	f := newRouterFixtures(t)
	f.members.approve = func(context.Context, int32, string, int32) (*domain.Member, error) {
		return nil, assert.AnError
	}

	rec := f.request(t, http.MethodPost, "/api/v1/members/7/approve", `{}`, "CLERK")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestMemberDeleteNeedsAdmin(t *testing.T) {
	f := newRouterFixtures(t)
	called := false
	f.members.delete = func(_ context.Context, id int32, opts domain.DeleteOptions, _ int32) error {
		called = true
		assert.True(t, opts.DeletePayments)
		assert.False(t, opts.DeleteDocuments)
		return nil
	}

	rec := f.request(t, http.MethodDelete, "/api/v1/members/7?delete_payments=true", "", "CLERK")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = f.request(t, http.MethodDelete, "/api/v1/members/7?delete_payments=true", "", security.RoleAdmin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestPaymentApproveNeedsAdmin(t *testing.T) {
	f := newRouterFixtures(t)
	f.payments.approve = func(_ context.Context, id int32, approverID int32) (*domain.Payment, error) {
		return &domain.Payment{ID: id, IsApproved: true}, nil
	}

	rec := f.request(t, http.MethodPost, "/api/v1/payments/11/approve", "", "CLERK")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/v1/payments/11/approve", "", security.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountingRouteIsNotAPaymentID(t *testing.T) {
	f := newRouterFixtures(t)
	f.payments.aggregate = func(_ context.Context, filter domain.PaymentFilter) ([]domain.Payment, domain.PaymentSummary, error) {
		require.NotNil(t, filter.Year)
		assert.EqualValues(t, 2026, *filter.Year)
		return []domain.Payment{}, domain.PaymentSummary{
			TotalAmount:    decimal.Zero,
			ApprovedAmount: decimal.Zero,
		}, nil
	}

	rec := f.request(t, http.MethodGet, "/api/v1/payments/accounting?year=2026", "", security.RoleAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "summary"))
}
