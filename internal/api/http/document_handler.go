package http

import (
	"encoding/json"
	"io"
	"net/http"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/service"
	"sendika-backend/internal/storage"

	"github.com/gorilla/mux"
)

const maxUploadBytes = 10 << 20 // 10 MB

// DocumentHandler exposes rendering, uploads and the template store.
type DocumentHandler struct {
	documents service.DocumentService
	files     storage.Backend
}

func NewDocumentHandler(documents service.DocumentService, files storage.Backend) *DocumentHandler {
	return &DocumentHandler{documents: documents, files: files}
}

func (h *DocumentHandler) Render(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		TemplateID int32 `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	res, err := h.documents.Render(r.Context(), memberID, body.TemplateID, actorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Upload receives the raw file bytes, stores them and records the document.
// File name and type travel as query parameters so the body stays a plain
// byte stream.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	fileName := r.URL.Query().Get("file_name")
	docType := domain.DocumentType(r.URL.Query().Get("document_type"))
	if fileName == "" {
		writeError(w, domain.ValidationError("file_name query parameter is required"))
		return
	}
	if docType == "" {
		docType = domain.DocumentTypeOther
	}

	key := storage.NewKey(fileName)
	if err := h.files.Save(key, io.LimitReader(r.Body, maxUploadBytes)); err != nil {
		writeError(w, err)
		return
	}

	doc, err := h.documents.RecordUpload(r.Context(), memberID, docType, key, fileName, actorID(r.Context()))
	if err != nil {
		// The upload is registered nowhere; remove the orphaned file.
		_ = h.files.Delete(key)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) ListForMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	docs, err := h.documents.ListForMember(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Download streams a stored file back by its storage key.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	f, err := h.files.Open(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "file not found"})
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, f)
}

func (h *DocumentHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	templates, err := h.documents.ListTemplates(r.Context(), onlyActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *DocumentHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t domain.DocumentTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	if err := h.documents.CreateTemplate(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *DocumentHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var t domain.DocumentTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	t.ID = id
	if err := h.documents.UpdateTemplate(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
