package service_test

import (
	"bytes"
	"context"
	"io"

	"sendika-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member, entry *domain.AuditEntry) error {
	args := m.Called(ctx, member, entry)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context, status *domain.MemberStatus) ([]domain.Member, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) UpdateStatus(ctx context.Context, member *domain.Member, entry *domain.AuditEntry) error {
	args := m.Called(ctx, member, entry)
	return args.Error(0)
}
func (m *MockMemberRepo) Delete(ctx context.Context, member *domain.Member, opts domain.DeleteOptions, entry *domain.AuditEntry) error {
	args := m.Called(ctx, member, opts, entry)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListForAccounting(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, d *domain.GeneratedDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, id int32) (*domain.GeneratedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedDocument), args.Error(1)
}
func (m *MockDocumentRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.GeneratedDocument, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedDocument), args.Error(1)
}

// MockTemplateRepo
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, t *domain.DocumentTemplate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTemplateRepo) GetByID(ctx context.Context, id int32) (*domain.DocumentTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTemplate), args.Error(1)
}
func (m *MockTemplateRepo) Update(ctx context.Context, t *domain.DocumentTemplate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTemplateRepo) List(ctx context.Context, onlyActive bool) ([]domain.DocumentTemplate, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentTemplate), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendApplicationReceived(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmail) SendMembershipApproved(ctx context.Context, email, name, registrationNumber string) error {
	args := m.Called(ctx, email, name, registrationNumber)
	return args.Error(0)
}
func (m *MockEmail) SendMembershipCancelled(ctx context.Context, email, name string, status domain.MemberStatus, reason string) error {
	args := m.Called(ctx, email, name, status, reason)
	return args.Error(0)
}
func (m *MockEmail) SendDuesReminder(ctx context.Context, email, name string, month, year int32) error {
	args := m.Called(ctx, email, name, month, year)
	return args.Error(0)
}

// MockLookup implements domain.LookupGateway with fixed names.
type MockLookup struct {
	Regions      map[int32]string
	Branches     map[int32]string
	Institutions map[int32]string
	Centers      map[int32]string
}

func (m *MockLookup) lookup(table map[int32]string, id int32, entity string) (string, error) {
	if name, ok := table[id]; ok {
		return name, nil
	}
	return "", domain.NotFoundError(entity, id)
}
func (m *MockLookup) RegionName(_ context.Context, id int32) (string, error) {
	return m.lookup(m.Regions, id, "region")
}
func (m *MockLookup) BranchName(_ context.Context, id int32) (string, error) {
	return m.lookup(m.Branches, id, "branch")
}
func (m *MockLookup) InstitutionName(_ context.Context, id int32) (string, error) {
	return m.lookup(m.Institutions, id, "institution")
}
func (m *MockLookup) TevkifatCenterName(_ context.Context, id int32) (string, error) {
	return m.lookup(m.Centers, id, "tevkifat center")
}

// MemoryStorage implements storage.Backend in memory for tests.
type MemoryStorage struct {
	Files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Files: make(map[string][]byte)}
}

func (s *MemoryStorage) Save(key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.Files[key] = data
	return nil
}

func (s *MemoryStorage) Open(key string) (io.ReadCloser, error) {
	data, ok := s.Files[key]
	if !ok {
		return nil, domain.NotFoundError("file", 0)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStorage) Delete(key string) error {
	delete(s.Files, key)
	return nil
}

func (s *MemoryStorage) URL(key string) string {
	return "memory://" + key
}
