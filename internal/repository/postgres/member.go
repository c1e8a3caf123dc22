package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, national_id, registration_number, first_name, last_name, birth_date,
	birth_place, phone, email, address, region_id, branch_id, institution_id,
	status, COALESCE(cancellation_reason, ''), cancelled_at, approved_at, approved_by_user_id,
	created_on, updated_on, version`

func scanMember(row interface{ Scan(...any) error }) (*domain.Member, error) {
	m := &domain.Member{}
	var cancellationReason string
	err := row.Scan(
		&m.ID, &m.NationalID, &m.RegistrationNumber, &m.FirstName, &m.LastName, &m.BirthDate,
		&m.BirthPlace, &m.Phone, &m.Email, &m.Address, &m.RegionID, &m.BranchID, &m.InstitutionID,
		&m.Status, &cancellationReason, &m.CancelledAt, &m.ApprovedAt, &m.ApprovedByUserID,
		&m.CreatedOn, &m.UpdatedOn, &m.Version,
	)
	if err != nil {
		return nil, err
	}
	m.CancellationReason = cancellationReason
	return m, nil
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO members (national_id, registration_number, first_name, last_name, birth_date,
	            birth_place, phone, email, address, region_id, branch_id, institution_id,
	            status, created_on, updated_on, version)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1)
	          RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		m.NationalID, m.RegistrationNumber, m.FirstName, m.LastName, m.BirthDate,
		m.BirthPlace, m.Phone, m.Email, m.Address, m.RegionID, m.BranchID, m.InstitutionID,
		m.Status, now, now,
	).Scan(&m.ID)
	if err != nil {
		return translateErr(err, "member", 0)
	}

	entry.MemberID = m.ID
	if err := appendAuditTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	m.CreatedOn = now
	m.UpdatedOn = now
	m.Version = 1
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE id = $1`, memberColumns)
	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(err, "member", id)
	}
	return m, nil
}

func (r *memberRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE national_id = $1`, memberColumns)
	m, err := scanMember(r.db.QueryRowContext(ctx, query, nationalID))
	if err != nil {
		return nil, translateErr(err, "member", 0)
	}
	return m, nil
}

func (r *memberRepository) List(ctx context.Context, status *domain.MemberStatus) ([]domain.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members ORDER BY id`, memberColumns)
	args := []any{}
	if status != nil {
		query = fmt.Sprintf(`SELECT %s FROM members WHERE status = $1 ORDER BY id`, memberColumns)
		args = append(args, *status)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// UpdateStatus writes the full transition outcome (status, registration
// number, disposition and approval fields) plus its audit entry in one
// transaction. The WHERE clause pins the version the caller loaded; losing a
// concurrent race surfaces as a conflict, not a silent overwrite.
func (r *memberRepository) UpdateStatus(ctx context.Context, m *domain.Member, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE members
	          SET status = $1, registration_number = $2, cancellation_reason = $3, cancelled_at = $4,
	              approved_at = $5, approved_by_user_id = $6, updated_on = $7, version = version + 1
	          WHERE id = $8 AND version = $9`
	res, err := tx.ExecContext(ctx, query,
		m.Status, m.RegistrationNumber, m.CancellationReason, m.CancelledAt,
		m.ApprovedAt, m.ApprovedByUserID, time.Now(),
		m.ID, m.Version,
	)
	if err != nil {
		return translateErr(err, "member", m.ID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.staleWriteErr(ctx, tx, m.ID)
	}

	if err := appendAuditTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	m.Version++
	return nil
}

// Delete removes the member row and, per opts, its payments and generated
// documents. The audit log is untouched; the deletion itself is appended to
// it inside the same transaction.
func (r *memberRepository) Delete(ctx context.Context, m *domain.Member, opts domain.DeleteOptions, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if opts.DeletePayments {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE member_id = $1`, m.ID); err != nil {
			return err
		}
	}
	if opts.DeleteDocuments {
		if _, err := tx.ExecContext(ctx, `DELETE FROM generated_documents WHERE member_id = $1`, m.ID); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1 AND version = $2`, m.ID, m.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.staleWriteErr(ctx, tx, m.ID)
	}

	if err := appendAuditTx(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

// staleWriteErr decides whether a zero-row write lost a version race or hit
// a row that no longer exists.
func (r *memberRepository) staleWriteErr(ctx context.Context, tx *sql.Tx, id int32) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.NotFoundError("member", id)
	}
	return domain.ConflictError("member %d was modified concurrently", id)
}
