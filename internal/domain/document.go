package domain

import "time"

type DocumentType string

const (
	DocumentTypeMembershipCard DocumentType = "MEMBERSHIP_CARD"
	DocumentTypeLetter         DocumentType = "LETTER"
	DocumentTypeCertificate    DocumentType = "CERTIFICATE"
	DocumentTypeOther          DocumentType = "OTHER"
)

// DocumentTemplate is a stored document body with {{token}} placeholders.
type DocumentTemplate struct {
	ID        int32        `json:"id"`
	Name      string       `json:"name"`
	Type      DocumentType `json:"type"`
	Body      string       `json:"body"`
	IsActive  bool         `json:"is_active"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}

// GeneratedDocument records a rendered or manually uploaded artifact.
// TemplateID is nil for uploads. Rows are never mutated after creation.
type GeneratedDocument struct {
	ID                int32        `json:"id"`
	MemberID          int32        `json:"member_id"`
	TemplateID        *int32       `json:"template_id,omitempty"`
	DocumentType      DocumentType `json:"document_type"`
	FileName          string       `json:"file_name"`
	StorageKey        string       `json:"storage_key"`
	RenderedAt        time.Time    `json:"rendered_at"`
	GeneratedByUserID int32        `json:"generated_by_user_id"`
}

// RenderResult is the outcome of a template render: the recorded document,
// the rendered bytes, and the tokens that resolved to an empty value so the
// operator can be warned before printing.
type RenderResult struct {
	Document            *GeneratedDocument `json:"document"`
	Content             []byte             `json:"-"`
	EmptyOptionalFields []string           `json:"empty_optional_fields,omitempty"`
}
