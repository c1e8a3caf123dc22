package postgres

import (
	"context"
	"database/sql"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *domain.GeneratedDocument) error {
	query := `INSERT INTO generated_documents (member_id, template_id, document_type, file_name, storage_key, rendered_at, generated_by_user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if d.RenderedAt.IsZero() {
		d.RenderedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		d.MemberID, d.TemplateID, d.DocumentType, d.FileName, d.StorageKey, d.RenderedAt, d.GeneratedByUserID,
	).Scan(&d.ID)
	return translateErr(err, "document", 0)
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.GeneratedDocument, error) {
	d := &domain.GeneratedDocument{}
	query := `SELECT id, member_id, template_id, document_type, file_name, storage_key, rendered_at, generated_by_user_id
	          FROM generated_documents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.MemberID, &d.TemplateID, &d.DocumentType, &d.FileName, &d.StorageKey, &d.RenderedAt, &d.GeneratedByUserID,
	)
	if err != nil {
		return nil, translateErr(err, "document", id)
	}
	return d, nil
}

func (r *documentRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.GeneratedDocument, error) {
	query := `SELECT id, member_id, template_id, document_type, file_name, storage_key, rendered_at, generated_by_user_id
	          FROM generated_documents WHERE member_id = $1 ORDER BY rendered_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.GeneratedDocument
	for rows.Next() {
		var d domain.GeneratedDocument
		if err := rows.Scan(&d.ID, &d.MemberID, &d.TemplateID, &d.DocumentType, &d.FileName, &d.StorageKey, &d.RenderedAt, &d.GeneratedByUserID); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
