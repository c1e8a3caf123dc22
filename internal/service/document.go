package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/logger"
	"sendika-backend/internal/render"
	"sendika-backend/internal/repository"
	"sendika-backend/internal/storage"
)

type documentService struct {
	docRepo      repository.DocumentRepository
	templateRepo repository.TemplateRepository
	memberRepo   repository.MemberRepository
	paymentRepo  repository.PaymentRepository
	lookups      domain.LookupGateway
	files        storage.Backend
}

func NewDocumentService(
	docRepo repository.DocumentRepository,
	templateRepo repository.TemplateRepository,
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	lookups domain.LookupGateway,
	files storage.Backend,
) DocumentService {
	return &documentService{
		docRepo:      docRepo,
		templateRepo: templateRepo,
		memberRepo:   memberRepo,
		paymentRepo:  paymentRepo,
		lookups:      lookups,
		files:        files,
	}
}

// Render loads the member's current field snapshot and the template, runs the
// single-pass substitution, stores the rendered bytes and records the
// artifact. Lookup calls happen up front on read-only data; no mutation
// transaction is open while they run.
func (s *documentService) Render(ctx context.Context, memberID, templateID int32, actorID int32) (*domain.RenderResult, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !tmpl.IsActive {
		return nil, domain.TemplateInactiveError(templateID)
	}

	payments, err := s.paymentRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	fields := s.buildFields(ctx, m, payments)
	res := render.Render(tmpl.Body, fields)

	renderedAt := time.Now()
	fileName := fmt.Sprintf("%s-%d-%s.txt",
		strings.ToLower(string(tmpl.Type)), m.ID, renderedAt.Format("20060102-150405"))
	key := storage.NewKey(fileName)
	if err := s.files.Save(key, bytes.NewReader([]byte(res.Body))); err != nil {
		return nil, err
	}

	doc := &domain.GeneratedDocument{
		MemberID:          m.ID,
		TemplateID:        &tmpl.ID,
		DocumentType:      tmpl.Type,
		FileName:          fileName,
		StorageKey:        key,
		RenderedAt:        renderedAt,
		GeneratedByUserID: actorID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return &domain.RenderResult{
		Document:            doc,
		Content:             []byte(res.Body),
		EmptyOptionalFields: res.EmptyFields,
	}, nil
}

// buildFields flattens the member snapshot plus derived labels into the
// key→value map the renderer consumes. Lookup failures degrade to empty
// labels so rendering still goes through and the gap is reported back.
func (s *documentService) buildFields(ctx context.Context, m *domain.Member, payments []domain.Payment) map[string]string {
	summary := domain.SummarizePayments(payments)

	fields := map[string]string{
		"firstName":          m.FirstName,
		"lastName":           m.LastName,
		"fullName":           m.FullName(),
		"nationalId":         m.NationalID,
		"registrationNumber": "",
		"birthDate":          m.BirthDate,
		"birthPlace":         m.BirthPlace,
		"phone":              m.Phone,
		"email":              m.Email,
		"address":            m.Address,
		"status":             string(m.Status),
		"cancellationReason": m.CancellationReason,
		"memberSince":        "",
		"today":              time.Now().Format("02.01.2006"),
		"duesTotal":          summary.TotalAmount.StringFixed(2),
		"duesApprovedTotal":  summary.ApprovedAmount.StringFixed(2),
		"lastPaymentPeriod":  "",
		"regionName":         "",
		"branchName":         "",
		"institutionName":    "",
	}
	if m.RegistrationNumber != nil {
		fields["registrationNumber"] = *m.RegistrationNumber
	}
	if m.ApprovedAt != nil {
		fields["memberSince"] = m.ApprovedAt.Format("02.01.2006")
	}
	if len(payments) > 0 {
		// ListByMember orders by period descending.
		fields["lastPaymentPeriod"] = fmt.Sprintf("%d/%d", payments[0].PeriodMonth, payments[0].PeriodYear)
	}

	resolve := func(field string, id *int32, fn func(context.Context, int32) (string, error)) {
		if id == nil {
			return
		}
		name, err := fn(ctx, *id)
		if err != nil {
			logger.Warn("lookup failed", "field", field, "id", *id, "error", err)
			return
		}
		fields[field] = name
	}
	resolve("regionName", m.RegionID, s.lookups.RegionName)
	resolve("branchName", m.BranchID, s.lookups.BranchName)
	resolve("institutionName", m.InstitutionID, s.lookups.InstitutionName)

	return fields
}

// RecordUpload registers a manually uploaded file. No template is involved,
// so TemplateID stays nil.
func (s *documentService) RecordUpload(ctx context.Context, memberID int32, docType domain.DocumentType, fileRef, fileName string, actorID int32) (*domain.GeneratedDocument, error) {
	if fileRef == "" || fileName == "" {
		return nil, domain.ValidationError("file reference and file name are required")
	}
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	doc := &domain.GeneratedDocument{
		MemberID:          memberID,
		TemplateID:        nil,
		DocumentType:      docType,
		FileName:          fileName,
		StorageKey:        fileRef,
		RenderedAt:        time.Now(),
		GeneratedByUserID: actorID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListForMember(ctx context.Context, memberID int32) ([]domain.GeneratedDocument, error) {
	return s.docRepo.ListByMember(ctx, memberID)
}

func (s *documentService) ListTemplates(ctx context.Context, onlyActive bool) ([]domain.DocumentTemplate, error) {
	return s.templateRepo.List(ctx, onlyActive)
}

func (s *documentService) CreateTemplate(ctx context.Context, t *domain.DocumentTemplate) error {
	if t.Name == "" || t.Body == "" {
		return domain.ValidationError("template name and body are required")
	}
	return s.templateRepo.Create(ctx, t)
}

func (s *documentService) UpdateTemplate(ctx context.Context, t *domain.DocumentTemplate) error {
	if t.Name == "" || t.Body == "" {
		return domain.ValidationError("template name and body are required")
	}
	return s.templateRepo.Update(ctx, t)
}
