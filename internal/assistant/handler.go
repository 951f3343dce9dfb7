package assistant

import (
	"encoding/json"
	"net/http"

	"github.com/buildforge/buildforge/internal/httputil"
	"github.com/buildforge/buildforge/internal/logging"
)

// Handler contains the HTTP handler for the assistant endpoint
type Handler struct {
	logger *logging.Logger
}

func NewHandler(logger *logging.Logger) *Handler {
	return &Handler{logger: logger}
}

// RespondRequest represents the assistant request body. ProjectID is
// accepted for API compatibility but unused; see the package doc.
type RespondRequest struct {
	Prompt    string `json:"prompt"`
	ProjectID string `json:"project_id"`
}

// RespondResponse represents the assistant response body
type RespondResponse struct {
	Response string `json:"response"`
}

// Respond handles assistant prompts
// @Summary      Ask the assistant
// @Description  Returns a canned response matched on prompt keywords; no component state is changed
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RespondRequest true "Prompt"
// @Success      200 {object} RespondResponse
// @Router       /api/ai-assistant [post]
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid assistant request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	httputil.RespondJSON(w, RespondResponse{Response: Respond(req.Prompt)}, http.StatusOK)
}
