// Package deploy implements the mock deployment endpoint. No artifacts are
// uploaded anywhere; the handler validates ownership of the project and
// returns a deterministic fake deployment URL.
package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/httputil"
	"github.com/buildforge/buildforge/internal/logging"
	"github.com/buildforge/buildforge/internal/project"
)

// DefaultPlatform is used when the request names no target platform.
const DefaultPlatform = "vercel"

// Handler contains the HTTP handler for the deploy endpoint
type Handler struct {
	projects project.Store
	logger   *logging.Logger
}

func NewHandler(projects project.Store, logger *logging.Logger) *Handler {
	return &Handler{projects: projects, logger: logger}
}

// DeployRequest represents the deploy request body
type DeployRequest struct {
	ProjectID string `json:"project_id"`
	Platform  string `json:"platform"`
}

// DeployResponse represents the mock deployment result
type DeployResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Deploy handles mock deployment requests
// @Summary      Deploy a project
// @Description  Mock deployment; returns a synthetic URL without uploading anything
// @Tags         deploy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DeployRequest true "Deployment target"
// @Success      200 {object} DeployResponse
// @Failure      404 {object} httputil.ErrorResponse "Project not found"
// @Router       /api/deploy [post]
func (h *Handler) Deploy(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid deploy request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}

	if _, err := h.projects.Get(r.Context(), userID, projectID); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			httputil.RespondError(w, "Project not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to load project for deploy", "error", err.Error())
		httputil.RespondError(w, "failed to deploy project", http.StatusInternalServerError)
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = DefaultPlatform
	}

	logger.Info("project deployed", "project_id", projectID, "platform", platform)
	httputil.RespondJSON(w, DeployResponse{
		Status:  "success",
		Message: fmt.Sprintf("Project deployed to %s successfully", platform),
		URL:     fmt.Sprintf("https://%s.%s.app", projectID, platform),
	}, http.StatusOK)
}
