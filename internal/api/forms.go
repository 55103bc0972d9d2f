package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harperhq/anvil/internal/events"
	"github.com/harperhq/anvil/internal/memory"
)

// mapForm handles POST /api/v1/forms/acord125 and /acord126. The body is the
// raw memory payload in any recognized shape; mapping is total, so the only
// client error is an unreadable body.
func (s *Server) mapForm(formType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := decodeMemory(w, r)
		if !ok {
			return
		}

		var form any
		switch formType {
		case "acord125":
			form = s.mapper.MapACORD125(raw)
		case "acord126":
			form = s.mapper.MapACORD126(raw)
		}

		companyID := rawCompanyID(raw)
		s.persistAndAnnounce(r, companyID, formType, form)
		writeJSON(w, http.StatusOK, form)
	}
}

type generateRequest struct {
	Memory any `json:"memory"`
}

// generateForm handles POST /api/v1/forms/generate: the quick-fill path that
// pre-fills the flat form with one model extraction plus derived
// underwriting numbers.
func (s *Server) generateForm(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Memory == nil {
		writeError(w, http.StatusBadRequest, "Memory data is required")
		return
	}

	form, err := s.quickfill.Generate(r.Context(), req.Memory)
	if err != nil {
		s.logger.Error("quick-fill generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate form")
		return
	}

	companyID := rawCompanyID(req.Memory)
	s.persistAndAnnounce(r, companyID, "quickfill", form)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": form})
}

// listForms handles GET /api/v1/forms/{companyID}.
func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "form storage not configured")
		return
	}
	companyID := chi.URLParam(r, "companyID")

	recs, err := s.db.ListForms(r.Context(), companyID)
	if err != nil {
		s.logger.Error("list forms failed", "company_id", companyID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list forms")
		return
	}

	type formSummary struct {
		ID        string          `json:"id"`
		FormType  string          `json:"form_type"`
		Payload   json.RawMessage `json:"payload"`
		CreatedAt string          `json:"created_at"`
	}
	out := make([]formSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, formSummary{
			ID:        rec.ID.String(),
			FormType:  rec.FormType,
			Payload:   rec.Payload,
			CreatedAt: rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"company_id": companyID, "forms": out})
}

// persistAndAnnounce stores the generated form and emits the lifecycle
// event. Both are best-effort: a storage or publish failure is logged and
// the request still succeeds with the generated form.
func (s *Server) persistAndAnnounce(r *http.Request, companyID, formType string, form any) {
	var formID string
	if s.db != nil {
		id, err := s.db.SaveForm(r.Context(), companyID, formType, form)
		if err != nil {
			s.logger.Error("store form failed", "company_id", companyID, "form_type", formType, "error", err)
		} else {
			formID = id.String()
		}
	}
	if s.events != nil {
		err := s.events.Publish(events.SubjectFormGenerated, events.FormGenerated{
			CompanyID: companyID,
			FormType:  formType,
			FormID:    formID,
		})
		if err != nil {
			s.logger.Warn("publish form event failed", "company_id", companyID, "error", err)
		}
	}
}

// decodeMemory reads the request body as one JSON value. An empty body maps
// like a nil payload.
func decodeMemory(w http.ResponseWriter, r *http.Request) (any, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}
	if len(body) == 0 {
		return nil, true
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, false
	}
	return raw, true
}

// rawCompanyID pulls a company identifier out of any memory shape, falling
// back to "unknown" the way the normalizer does for id-less payloads.
func rawCompanyID(raw any) string {
	if m, ok := raw.(map[string]any); ok {
		c := memory.Company(m)
		if id := c.Str("company_id"); id != "" {
			return id
		}
		if id := c.Str("id"); id != "" {
			return id
		}
	}
	if id := memory.Normalize(raw).Company.Str("id"); id != "" {
		return id
	}
	return "unknown"
}
