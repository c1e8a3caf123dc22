package domain

import "time"

// AuditAction names the lifecycle operation that produced an audit entry.
type AuditAction string

const (
	AuditActionApply     AuditAction = "APPLY"
	AuditActionApprove   AuditAction = "APPROVE"
	AuditActionReject    AuditAction = "REJECT"
	AuditActionActivate  AuditAction = "ACTIVATE"
	AuditActionSetStatus AuditAction = "SET_STATUS"
	AuditActionDelete    AuditAction = "DELETE"
)

// AuditEntry is one row of the append-only member audit log. Entries are
// written in the same transaction as the transition they record and are
// retained even after the member row is deleted.
type AuditEntry struct {
	ID         int64        `json:"id"`
	MemberID   int32        `json:"member_id"`
	ActorID    int32        `json:"actor_id"`
	Action     AuditAction  `json:"action"`
	FromStatus MemberStatus `json:"from_status,omitempty"`
	ToStatus   MemberStatus `json:"to_status,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	CreatedOn  time.Time    `json:"created_on"`
}
