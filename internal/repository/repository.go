package repository

import (
	"context"
	"sendika-backend/internal/domain"
)

// MemberRepository persists members. Create, UpdateStatus and Delete each run
// inside a single DB transaction together with their audit entry, so a status
// change can never be recorded without its history row. UpdateStatus applies
// an optimistic version check and returns a conflict error when a concurrent
// writer got there first.
type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member, entry *domain.AuditEntry) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error)
	List(ctx context.Context, status *domain.MemberStatus) ([]domain.Member, error)
	UpdateStatus(ctx context.Context, m *domain.Member, entry *domain.AuditEntry) error
	Delete(ctx context.Context, m *domain.Member, opts domain.DeleteOptions, entry *domain.AuditEntry) error
}

// PaymentRepository persists dues payments. Update carries the optimistic
// version check used to serialize concurrent edit/approve races.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id int32) error
	ListByMember(ctx context.Context, memberID int32) ([]domain.Payment, error)
	ListForAccounting(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.GeneratedDocument) error
	GetByID(ctx context.Context, id int32) (*domain.GeneratedDocument, error)
	ListByMember(ctx context.Context, memberID int32) ([]domain.GeneratedDocument, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.DocumentTemplate) error
	GetByID(ctx context.Context, id int32) (*domain.DocumentTemplate, error)
	Update(ctx context.Context, t *domain.DocumentTemplate) error
	List(ctx context.Context, onlyActive bool) ([]domain.DocumentTemplate, error)
}

// AuditLogRepository is append-only. Entries outlive the member they
// describe; nothing ever deletes from this store.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListByMember(ctx context.Context, memberID int32) ([]domain.AuditEntry, error)
}

// LookupRepository reads the shared reference tables (regions, branches,
// institutions, tevkifat centers) by ID.
type LookupRepository interface {
	RegionName(ctx context.Context, id int32) (string, error)
	BranchName(ctx context.Context, id int32) (string, error)
	InstitutionName(ctx context.Context, id int32) (string, error)
	TevkifatCenterName(ctx context.Context, id int32) (string, error)
}
