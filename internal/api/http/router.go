package http

import (
	"net/http"

	"sendika-backend/internal/security"
	"sendika-backend/internal/service"
	"sendika-backend/internal/storage"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface. Everything under /api/v1 requires a
// valid token; destructive and accounting operations additionally require
// the ADMIN role.
func NewRouter(
	members service.MemberService,
	payments service.PaymentService,
	documents service.DocumentService,
	files storage.Backend,
	tm security.TokenManager,
) *mux.Router {
	memberHandler := NewMemberHandler(members)
	paymentHandler := NewPaymentHandler(payments)
	documentHandler := NewDocumentHandler(documents, files)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Authenticate(tm))

	// Member lifecycle
	api.HandleFunc("/members", memberHandler.Apply).Methods(http.MethodPost)
	api.HandleFunc("/members", memberHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/members/{id}", memberHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/members/{id}", RequireRole(security.RoleAdmin, memberHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/members/{id}/approve", memberHandler.Approve).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}/reject", memberHandler.Reject).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}/activate", memberHandler.Activate).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}/status", memberHandler.SetStatus).Methods(http.MethodPut)
	api.HandleFunc("/members/{id}/history", memberHandler.History).Methods(http.MethodGet)

	// Payment ledger
	api.HandleFunc("/members/{id}/payments", paymentHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}/payments", paymentHandler.ListForMember).Methods(http.MethodGet)
	// Registered before /payments/{id} so "accounting" never parses as an id.
	api.HandleFunc("/payments/accounting", RequireRole(security.RoleAdmin, paymentHandler.Accounting)).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", paymentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", paymentHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/payments/{id}", paymentHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/payments/{id}/approve", RequireRole(security.RoleAdmin, paymentHandler.Approve)).Methods(http.MethodPost)

	// Documents and templates
	api.HandleFunc("/members/{id}/documents/render", documentHandler.Render).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}/documents", documentHandler.Upload).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}/documents", documentHandler.ListForMember).Methods(http.MethodGet)
	api.HandleFunc("/files/{key}", documentHandler.Download).Methods(http.MethodGet)
	api.HandleFunc("/templates", documentHandler.ListTemplates).Methods(http.MethodGet)
	api.HandleFunc("/templates", RequireRole(security.RoleAdmin, documentHandler.CreateTemplate)).Methods(http.MethodPost)
	api.HandleFunc("/templates/{id}", RequireRole(security.RoleAdmin, documentHandler.UpdateTemplate)).Methods(http.MethodPut)

	return r
}
