package postgres

import (
	"context"
	"database/sql"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

// appendAuditTx inserts an audit entry inside an open transaction. Member
// transitions use this so the history row commits or rolls back with the
// transition itself.
func appendAuditTx(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error {
	query := `INSERT INTO member_audit_log (member_id, actor_id, action, from_status, to_status, reason, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := tx.QueryRowContext(ctx, query,
		entry.MemberID, entry.ActorID, entry.Action, entry.FromStatus, entry.ToStatus, entry.Reason, now,
	).Scan(&entry.ID)
	if err != nil {
		return err
	}
	entry.CreatedOn = now
	return nil
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO member_audit_log (member_id, actor_id, action, from_status, to_status, reason, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		entry.MemberID, entry.ActorID, entry.Action, entry.FromStatus, entry.ToStatus, entry.Reason, now,
	).Scan(&entry.ID)
	if err != nil {
		return err
	}
	entry.CreatedOn = now
	return nil
}

// ListByMember works on member_audit_log alone; it keeps returning history
// after the member row itself has been purged.
func (r *auditLogRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.AuditEntry, error) {
	query := `SELECT id, member_id, actor_id, action, COALESCE(from_status, ''), to_status, COALESCE(reason, ''), created_on
	          FROM member_audit_log WHERE member_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.ActorID, &e.Action, &e.FromStatus, &e.ToStatus, &e.Reason, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
