package postgres

import (
	"database/sql"
	"errors"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.PaymentRepository
	repository.DocumentRepository
	repository.TemplateRepository
	repository.AuditLogRepository
	repository.LookupRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		MemberRepository:   NewMemberRepository(db),
		PaymentRepository:  NewPaymentRepository(db),
		DocumentRepository: NewDocumentRepository(db),
		TemplateRepository: NewTemplateRepository(db),
		AuditLogRepository: NewAuditLogRepository(db),
		LookupRepository:   NewLookupRepository(db),
	}
}

// translateErr maps driver-level failures onto domain error kinds so callers
// never have to inspect pq internals.
func translateErr(err error, entity string, id int32) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError(entity, id)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ConflictError("%s violates unique constraint %s", entity, pqErr.Constraint)
	}
	return err
}
