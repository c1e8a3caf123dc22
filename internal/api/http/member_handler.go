package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/service"

	"github.com/gorilla/mux"
)

// MemberHandler exposes the membership lifecycle over REST.
type MemberHandler struct {
	members service.MemberService
}

func NewMemberHandler(members service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, domain.ValidationError("invalid %s", name)
	}
	return int32(id), nil
}

func (h *MemberHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var m domain.Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	created, err := h.members.ApplyForMembership(r.Context(), &m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MemberHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		RegistrationNumber string `json:"registration_number"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body) // empty body means default the number
	}
	m, err := h.members.Approve(r.Context(), id, body.RegistrationNumber, actorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.members.Reject(r.Context(), id, actorID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MemberHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.members.Activate(r.Context(), id, actorID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MemberHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status domain.MemberStatus `json:"status"`
		Reason string              `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ValidationError("invalid request body"))
		return
	}
	m, err := h.members.SetStatus(r.Context(), id, body.Status, body.Reason, actorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	opts := domain.DeleteOptions{
		DeletePayments:  r.URL.Query().Get("delete_payments") == "true",
		DeleteDocuments: r.URL.Query().Get("delete_documents") == "true",
	}
	if err := h.members.Delete(r.Context(), id, opts, actorID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := h.members.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.MemberStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.MemberStatus(s)
		status = &st
	}
	members, err := h.members.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.members.History(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
