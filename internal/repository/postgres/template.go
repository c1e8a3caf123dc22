package postgres

import (
	"context"
	"database/sql"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"
)

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, t *domain.DocumentTemplate) error {
	query := `INSERT INTO document_templates (name, type, body, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, t.Name, t.Type, t.Body, t.IsActive, now, now).Scan(&t.ID)
	if err != nil {
		return translateErr(err, "template", 0)
	}
	t.CreatedOn = now
	t.UpdatedOn = now
	return nil
}

func (r *templateRepository) GetByID(ctx context.Context, id int32) (*domain.DocumentTemplate, error) {
	t := &domain.DocumentTemplate{}
	query := `SELECT id, name, type, body, is_active, created_on, updated_on FROM document_templates WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Type, &t.Body, &t.IsActive, &t.CreatedOn, &t.UpdatedOn,
	)
	if err != nil {
		return nil, translateErr(err, "template", id)
	}
	return t, nil
}

func (r *templateRepository) Update(ctx context.Context, t *domain.DocumentTemplate) error {
	query := `UPDATE document_templates SET name = $1, type = $2, body = $3, is_active = $4, updated_on = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, t.Name, t.Type, t.Body, t.IsActive, time.Now(), t.ID)
	if err != nil {
		return translateErr(err, "template", t.ID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError("template", t.ID)
	}
	return nil
}

func (r *templateRepository) List(ctx context.Context, onlyActive bool) ([]domain.DocumentTemplate, error) {
	query := `SELECT id, name, type, body, is_active, created_on, updated_on FROM document_templates ORDER BY name`
	if onlyActive {
		query = `SELECT id, name, type, body, is_active, created_on, updated_on FROM document_templates WHERE is_active = TRUE ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.DocumentTemplate
	for rows.Next() {
		var t domain.DocumentTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Body, &t.IsActive, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
