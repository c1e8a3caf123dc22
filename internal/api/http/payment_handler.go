package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/service"
)

// PaymentHandler exposes the dues ledger over REST.
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var p domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	p.MemberID = memberID
	created, err := h.payments.Record(r.Context(), &p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.PaymentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	p, err := h.payments.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.payments.Approve(r.Context(), id, actorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.payments.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.payments.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) ListForMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payments, err := h.payments.ListForMember(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func queryInt32(r *http.Request, name string) *int32 {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.ParseInt(s, 10, 32); err == nil {
			v32 := int32(v)
			return &v32
		}
	}
	return nil
}

// Accounting returns the filtered payment set plus its roll-up summary.
func (h *PaymentHandler) Accounting(w http.ResponseWriter, r *http.Request) {
	filter := domain.PaymentFilter{
		BranchID:         queryInt32(r, "branch_id"),
		TevkifatCenterID: queryInt32(r, "tevkifat_center_id"),
		Year:             queryInt32(r, "year"),
		Month:            queryInt32(r, "month"),
	}
	if s := r.URL.Query().Get("approved"); s != "" {
		approved := s == "true"
		filter.Approved = &approved
	}

	payments, summary, err := h.payments.AggregateForAccounting(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payments": payments,
		"summary":  summary,
	})
}
