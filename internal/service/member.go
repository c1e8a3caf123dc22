package service

import (
	"context"
	"fmt"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/logger"
	"sendika-backend/internal/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
	auditRepo  repository.AuditLogRepository
	emailSvc   EmailService
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	auditRepo repository.AuditLogRepository,
	emailSvc EmailService,
) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		auditRepo:  auditRepo,
		emailSvc:   emailSvc,
	}
}

func validNationalID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *memberService) ApplyForMembership(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	if !validNationalID(m.NationalID) {
		return nil, domain.ValidationError("national id must be 11 digits")
	}
	if m.FirstName == "" || m.LastName == "" {
		return nil, domain.ValidationError("first and last name are required")
	}

	if existing, err := s.memberRepo.GetByNationalID(ctx, m.NationalID); err == nil && existing != nil {
		return nil, domain.ConflictError("a member record with national id %s already exists", m.NationalID)
	} else if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	m.Status = domain.MemberStatusPending
	m.RegistrationNumber = nil
	m.CancellationReason = ""
	m.CancelledAt = nil
	m.ApprovedAt = nil
	m.ApprovedByUserID = nil

	entry := &domain.AuditEntry{
		Action:   domain.AuditActionApply,
		ToStatus: domain.MemberStatusPending,
	}
	if err := s.memberRepo.Create(ctx, m, entry); err != nil {
		return nil, err
	}

	if m.Email != "" {
		if err := s.emailSvc.SendApplicationReceived(ctx, m.Email, m.FullName()); err != nil {
			logger.Warn("application received mail failed", "member_id", m.ID, "error", err)
		}
	}
	return m, nil
}

// Approve moves a PENDING applicant to APPROVED, assigning the registration
// number (defaulted from the member id when the approver leaves it blank) and
// stamping the approval fields exactly once.
func (s *memberService) Approve(ctx context.Context, id int32, registrationNumber string, approverID int32) (*domain.Member, error) {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != domain.MemberStatusPending {
		return nil, domain.InvalidTransitionError(m.Status, domain.MemberStatusApproved)
	}

	if registrationNumber == "" {
		registrationNumber = fmt.Sprintf("%06d", m.ID)
	}
	now := time.Now()
	from := m.Status
	m.Status = domain.MemberStatusApproved
	m.RegistrationNumber = &registrationNumber
	m.ApprovedAt = &now
	m.ApprovedByUserID = &approverID

	entry := &domain.AuditEntry{
		MemberID:   m.ID,
		ActorID:    approverID,
		Action:     domain.AuditActionApprove,
		FromStatus: from,
		ToStatus:   m.Status,
	}
	if err := s.memberRepo.UpdateStatus(ctx, m, entry); err != nil {
		return nil, err
	}

	if m.Email != "" {
		if err := s.emailSvc.SendMembershipApproved(ctx, m.Email, m.FullName(), registrationNumber); err != nil {
			logger.Warn("membership approved mail failed", "member_id", m.ID, "error", err)
		}
	}
	return m, nil
}

func (s *memberService) Reject(ctx context.Context, id int32, actorID int32) error {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status != domain.MemberStatusPending {
		return domain.InvalidTransitionError(m.Status, domain.MemberStatusRejected)
	}

	from := m.Status
	m.Status = domain.MemberStatusRejected
	entry := &domain.AuditEntry{
		MemberID:   m.ID,
		ActorID:    actorID,
		Action:     domain.AuditActionReject,
		FromStatus: from,
		ToStatus:   m.Status,
	}
	return s.memberRepo.UpdateStatus(ctx, m, entry)
}

func (s *memberService) Activate(ctx context.Context, id int32, actorID int32) error {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status != domain.MemberStatusApproved {
		return domain.InvalidTransitionError(m.Status, domain.MemberStatusActive)
	}

	from := m.Status
	m.Status = domain.MemberStatusActive
	entry := &domain.AuditEntry{
		MemberID:   m.ID,
		ActorID:    actorID,
		Action:     domain.AuditActionActivate,
		FromStatus: from,
		ToStatus:   m.Status,
	}
	return s.memberRepo.UpdateStatus(ctx, m, entry)
}

// SetStatus handles the post-activation dispositions: resignation, expulsion,
// dormancy, and reactivation out of any of those. Reactivating clears the
// current disposition from the member row; the audit log keeps the history.
func (s *memberService) SetStatus(ctx context.Context, id int32, status domain.MemberStatus, reason string, actorID int32) (*domain.Member, error) {
	if !domain.ValidMemberStatus(status) {
		return nil, domain.ValidationError("unknown status %q", status)
	}

	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := m.Status

	switch {
	case from == domain.MemberStatusActive &&
		(status == domain.MemberStatusResigned || status == domain.MemberStatusExpelled):
		if reason == "" {
			return nil, domain.ValidationError("cancellation reason is required for %s", status)
		}
		now := time.Now()
		m.Status = status
		m.CancellationReason = reason
		m.CancelledAt = &now

	case from == domain.MemberStatusActive && status == domain.MemberStatusInactive:
		m.Status = status
		m.CancellationReason = reason // optional for dormancy

	case from.Cancelled() && status == domain.MemberStatusActive:
		m.Status = status
		m.CancellationReason = ""
		m.CancelledAt = nil

	default:
		return nil, domain.InvalidTransitionError(from, status)
	}

	entry := &domain.AuditEntry{
		MemberID:   m.ID,
		ActorID:    actorID,
		Action:     domain.AuditActionSetStatus,
		FromStatus: from,
		ToStatus:   m.Status,
		Reason:     reason,
	}
	if err := s.memberRepo.UpdateStatus(ctx, m, entry); err != nil {
		return nil, err
	}

	if m.Email != "" && (m.Status == domain.MemberStatusResigned || m.Status == domain.MemberStatusExpelled) {
		if err := s.emailSvc.SendMembershipCancelled(ctx, m.Email, m.FullName(), m.Status, reason); err != nil {
			logger.Warn("membership cancelled mail failed", "member_id", m.ID, "error", err)
		}
	}
	return m, nil
}

// Delete purges the member row and, per opts, its payments and documents.
// Admin-only: the HTTP layer enforces the role before this is reached. The
// audit log survives the purge.
func (s *memberService) Delete(ctx context.Context, id int32, opts domain.DeleteOptions, actorID int32) error {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	entry := &domain.AuditEntry{
		MemberID:   m.ID,
		ActorID:    actorID,
		Action:     domain.AuditActionDelete,
		FromStatus: m.Status,
		Reason:     fmt.Sprintf("delete_payments=%t delete_documents=%t", opts.DeletePayments, opts.DeleteDocuments),
	}
	return s.memberRepo.Delete(ctx, m, opts, entry)
}

func (s *memberService) Get(ctx context.Context, id int32) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) List(ctx context.Context, status *domain.MemberStatus) ([]domain.Member, error) {
	if status != nil && !domain.ValidMemberStatus(*status) {
		return nil, domain.ValidationError("unknown status %q", *status)
	}
	return s.memberRepo.List(ctx, status)
}

func (s *memberService) History(ctx context.Context, memberID int32) ([]domain.AuditEntry, error) {
	return s.auditRepo.ListByMember(ctx, memberID)
}
