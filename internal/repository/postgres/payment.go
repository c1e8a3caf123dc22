package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `p.id, p.member_id, p.period_month, p.period_year, p.amount, p.type,
	p.tevkifat_center_id, p.document_url, COALESCE(p.description, ''), p.is_approved,
	p.approved_by_user_id, p.approved_at, p.created_on, p.updated_on, p.version`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(
		&p.ID, &p.MemberID, &p.PeriodMonth, &p.PeriodYear, &p.Amount, &p.Type,
		&p.TevkifatCenterID, &p.DocumentURL, &p.Description, &p.IsApproved,
		&p.ApprovedByUserID, &p.ApprovedAt, &p.CreatedOn, &p.UpdatedOn, &p.Version,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (member_id, period_month, period_year, amount, type,
	            tevkifat_center_id, document_url, description, is_approved, created_on, updated_on, version)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, 1)
	          RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		p.MemberID, p.PeriodMonth, p.PeriodYear, p.Amount, p.Type,
		p.TevkifatCenterID, p.DocumentURL, p.Description, now, now,
	).Scan(&p.ID)
	if err != nil {
		return translateErr(err, "payment", 0)
	}
	p.IsApproved = false
	p.CreatedOn = now
	p.UpdatedOn = now
	p.Version = 1
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments p WHERE p.id = $1`, paymentColumns)
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(err, "payment", id)
	}
	return p, nil
}

// Update rewrites all mutable columns under the version the caller loaded;
// a concurrent writer makes this a conflict rather than a lost update.
func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments
	          SET period_month = $1, period_year = $2, amount = $3, type = $4,
	              tevkifat_center_id = $5, document_url = $6, description = $7,
	              is_approved = $8, approved_by_user_id = $9, approved_at = $10,
	              updated_on = $11, version = version + 1
	          WHERE id = $12 AND version = $13`
	res, err := r.db.ExecContext(ctx, query,
		p.PeriodMonth, p.PeriodYear, p.Amount, p.Type,
		p.TevkifatCenterID, p.DocumentURL, p.Description,
		p.IsApproved, p.ApprovedByUserID, p.ApprovedAt,
		time.Now(), p.ID, p.Version,
	)
	if err != nil {
		return translateErr(err, "payment", p.ID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.NotFoundError("payment", p.ID)
		}
		return domain.ConflictError("payment %d was modified concurrently", p.ID)
	}
	p.Version++
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError("payment", id)
	}
	return nil
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments p WHERE p.member_id = $1
	          ORDER BY p.period_year DESC, p.period_month DESC, p.id DESC`, paymentColumns)
	return r.queryPayments(ctx, query, memberID)
}

// ListForAccounting narrows the ledger by branch, tevkifat center, period and
// approval state. Branch filtering goes through the owning member since
// payments do not carry the branch themselves.
func (r *paymentRepository) ListForAccounting(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.BranchID != nil {
		add(`p.member_id IN (SELECT id FROM members WHERE branch_id = $%d)`, *filter.BranchID)
	}
	if filter.TevkifatCenterID != nil {
		add(`p.tevkifat_center_id = $%d`, *filter.TevkifatCenterID)
	}
	if filter.Year != nil {
		add(`p.period_year = $%d`, *filter.Year)
	}
	if filter.Month != nil {
		add(`p.period_month = $%d`, *filter.Month)
	}
	if filter.Approved != nil {
		add(`p.is_approved = $%d`, *filter.Approved)
	}

	query := fmt.Sprintf(`SELECT %s FROM payments p`, paymentColumns)
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY p.period_year DESC, p.period_month DESC, p.id DESC`

	return r.queryPayments(ctx, query, args...)
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
