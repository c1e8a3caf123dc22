package domain

import "time"

type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "PENDING"
	MemberStatusApproved MemberStatus = "APPROVED"
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusRejected MemberStatus = "REJECTED"
	MemberStatusResigned MemberStatus = "RESIGNED"
	MemberStatusExpelled MemberStatus = "EXPELLED"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// ValidMemberStatus reports whether s is one of the known statuses.
func ValidMemberStatus(s MemberStatus) bool {
	switch s {
	case MemberStatusPending, MemberStatusApproved, MemberStatusActive,
		MemberStatusRejected, MemberStatusResigned, MemberStatusExpelled,
		MemberStatusInactive:
		return true
	}
	return false
}

// RequiresRegistrationNumber reports whether a member in status s must carry
// a registration number. Only applicants and rejected applicants go without.
func (s MemberStatus) RequiresRegistrationNumber() bool {
	return s != MemberStatusPending && s != MemberStatusRejected
}

// Cancelled reports whether s is one of the cancellation dispositions that a
// member can be reactivated out of.
func (s MemberStatus) Cancelled() bool {
	return s == MemberStatusResigned || s == MemberStatusExpelled || s == MemberStatusInactive
}

type Member struct {
	ID                 int32        `json:"id"`
	NationalID         string       `json:"national_id"`
	RegistrationNumber *string      `json:"registration_number,omitempty"`
	FirstName          string       `json:"first_name"`
	LastName           string       `json:"last_name"`
	BirthDate          string       `json:"birth_date"` // YYYY-MM-DD
	BirthPlace         string       `json:"birth_place"`
	Phone              string       `json:"phone"`
	Email              string       `json:"email"`
	Address            string       `json:"address"`
	RegionID           *int32       `json:"region_id,omitempty"`
	BranchID           *int32       `json:"branch_id,omitempty"`
	InstitutionID      *int32       `json:"institution_id,omitempty"`
	Status             MemberStatus `json:"status"`
	CancellationReason string       `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time   `json:"cancelled_at,omitempty"`
	ApprovedAt         *time.Time   `json:"approved_at,omitempty"`
	ApprovedByUserID   *int32       `json:"approved_by_user_id,omitempty"`
	CreatedOn          time.Time    `json:"created_on"`
	UpdatedOn          time.Time    `json:"updated_on"`
	// Version guards against lost updates; every mutation bumps it and
	// a stale version on write fails with a conflict.
	Version int32 `json:"version"`
}

// FullName is the display name substituted into generated documents.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// DeleteOptions controls which owned rows an explicit member purge takes
// with it. The audit log is retained unconditionally.
type DeleteOptions struct {
	DeletePayments  bool `json:"delete_payments"`
	DeleteDocuments bool `json:"delete_documents"`
}
