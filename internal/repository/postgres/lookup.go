package postgres

import (
	"context"
	"database/sql"

	"sendika-backend/internal/repository"
)

type lookupRepository struct {
	db *sql.DB
}

func NewLookupRepository(db *sql.DB) repository.LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) name(ctx context.Context, query string, id int32, entity string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&name)
	if err != nil {
		return "", translateErr(err, entity, id)
	}
	return name, nil
}

func (r *lookupRepository) RegionName(ctx context.Context, id int32) (string, error) {
	return r.name(ctx, `SELECT name FROM regions WHERE id = $1`, id, "region")
}

func (r *lookupRepository) BranchName(ctx context.Context, id int32) (string, error) {
	return r.name(ctx, `SELECT name FROM branches WHERE id = $1`, id, "branch")
}

func (r *lookupRepository) InstitutionName(ctx context.Context, id int32) (string, error) {
	return r.name(ctx, `SELECT name FROM institutions WHERE id = $1`, id, "institution")
}

func (r *lookupRepository) TevkifatCenterName(ctx context.Context, id int32) (string, error) {
	return r.name(ctx, `SELECT name FROM tevkifat_centers WHERE id = $1`, id, "tevkifat center")
}
