package service

import (
	"context"

	"sendika-backend/internal/domain"
)

// MemberService owns the membership lifecycle state machine. Deleting a
// member requires an admin caller; the transport layer enforces the role,
// the service documents it.
type MemberService interface {
	ApplyForMembership(ctx context.Context, m *domain.Member) (*domain.Member, error)
	Approve(ctx context.Context, id int32, registrationNumber string, approverID int32) (*domain.Member, error)
	Reject(ctx context.Context, id int32, actorID int32) error
	Activate(ctx context.Context, id int32, actorID int32) error
	SetStatus(ctx context.Context, id int32, status domain.MemberStatus, reason string, actorID int32) (*domain.Member, error)
	Delete(ctx context.Context, id int32, opts domain.DeleteOptions, actorID int32) error
	Get(ctx context.Context, id int32) (*domain.Member, error)
	List(ctx context.Context, status *domain.MemberStatus) ([]domain.Member, error)
	History(ctx context.Context, memberID int32) ([]domain.AuditEntry, error)
}

// PaymentService owns the dues ledger and its approval gating.
type PaymentService interface {
	Record(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	Update(ctx context.Context, id int32, patch domain.PaymentPatch) (*domain.Payment, error)
	Approve(ctx context.Context, id int32, approverID int32) (*domain.Payment, error)
	Remove(ctx context.Context, id int32) error
	Get(ctx context.Context, id int32) (*domain.Payment, error)
	ListForMember(ctx context.Context, memberID int32) ([]domain.Payment, error)
	AggregateForAccounting(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, domain.PaymentSummary, error)
}

// DocumentService renders member documents from stored templates and records
// uploaded artifacts. Template management rides along because the store is
// narrow.
type DocumentService interface {
	Render(ctx context.Context, memberID, templateID int32, actorID int32) (*domain.RenderResult, error)
	RecordUpload(ctx context.Context, memberID int32, docType domain.DocumentType, fileRef, fileName string, actorID int32) (*domain.GeneratedDocument, error)
	ListForMember(ctx context.Context, memberID int32) ([]domain.GeneratedDocument, error)

	ListTemplates(ctx context.Context, onlyActive bool) ([]domain.DocumentTemplate, error)
	CreateTemplate(ctx context.Context, t *domain.DocumentTemplate) error
	UpdateTemplate(ctx context.Context, t *domain.DocumentTemplate) error
}

// EmailService delivers best-effort notifications; lifecycle operations never
// fail because a mail did not go out.
type EmailService interface {
	SendApplicationReceived(ctx context.Context, email, name string) error
	SendMembershipApproved(ctx context.Context, email, name, registrationNumber string) error
	SendMembershipCancelled(ctx context.Context, email, name string, status domain.MemberStatus, reason string) error
	SendDuesReminder(ctx context.Context, email, name string, month, year int32) error
}
