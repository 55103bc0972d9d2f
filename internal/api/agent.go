package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/harperhq/anvil/internal/acord"
	"github.com/harperhq/anvil/internal/events"
)

type messageRequest struct {
	Message        string              `json:"message"`
	FormData       acord.InsuranceForm `json:"formData"`
	CompanyID      string              `json:"companyId"`
	ConversationID string              `json:"conversationId"`
}

// agentMessage handles POST /api/v1/agent/message: one conversational turn
// against the flat form. The pipeline itself never fails; this handler only
// rejects malformed requests.
func (s *Server) agentMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	reply := s.pipeline.Run(r.Context(), req.Message, req.FormData, req.CompanyID, req.ConversationID)

	if s.db != nil {
		_, err := s.db.SaveTurn(r.Context(), req.ConversationID, req.CompanyID, req.Message, reply.Explanation, reply.Updates)
		if err != nil {
			s.logger.Error("store turn failed", "conversation_id", req.ConversationID, "error", err)
		}
	}
	if s.events != nil && len(reply.Updates) > 0 {
		err := s.events.Publish(events.SubjectFormUpdated, events.FormUpdated{
			CompanyID:      req.CompanyID,
			ConversationID: req.ConversationID,
			Updates:        reply.Updates,
		})
		if err != nil {
			s.logger.Warn("publish update event failed", "conversation_id", req.ConversationID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updates":        reply.Updates,
		"explanation":    reply.Explanation,
		"currentSection": reply.CurrentSection,
		"conversationId": req.ConversationID,
	})
}
