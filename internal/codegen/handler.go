package codegen

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/component"
	"github.com/buildforge/buildforge/internal/httputil"
	"github.com/buildforge/buildforge/internal/logging"
	"github.com/buildforge/buildforge/internal/project"
)

// Handler contains the HTTP handler for code generation
type Handler struct {
	projects   project.Store
	components component.Store
	generator  *Generator
	cache      *Cache
	logger     *logging.Logger
}

// NewHandler creates a generation handler. cache may be nil, in which case
// every request regenerates.
func NewHandler(projects project.Store, components component.Store, generator *Generator, cache *Cache, logger *logging.Logger) *Handler {
	return &Handler{
		projects:   projects,
		components: components,
		generator:  generator,
		cache:      cache,
		logger:     logger,
	}
}

// GenerateRequest represents the code generation request body
type GenerateRequest struct {
	ProjectID string `json:"project_id"`
}

// Generate handles code generation for a project
// @Summary      Generate site artifacts for a project
// @Description  Produce HTML/CSS/JS, a server stub and a database schema from the project's components
// @Tags         codegen
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GenerateRequest true "Project to generate"
// @Success      200 {object} Result
// @Failure      404 {object} httputil.ErrorResponse "Project not found"
// @Router       /api/generate-code [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid generate request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}

	p, err := h.projects.Get(r.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			httputil.RespondError(w, "Project not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to get project for generation", "error", err.Error())
		httputil.RespondError(w, "failed to generate code", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		cached, err := h.cache.Get(r.Context(), p.ID, p.UpdatedAt)
		if err != nil {
			logger.Warn("codegen cache read failed", "error", err.Error())
		} else if cached != nil {
			httputil.RespondJSON(w, cached, http.StatusOK)
			return
		}
	}

	components, err := h.components.ListByProject(r.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			httputil.RespondError(w, "Project not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to list components for generation", "error", err.Error())
		httputil.RespondError(w, "failed to generate code", http.StatusInternalServerError)
		return
	}

	result, err := h.generator.Generate(p, components)
	if err != nil {
		logger.Error("generation failed", "error", err.Error())
		httputil.RespondError(w, "failed to generate code", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), p.ID, p.UpdatedAt, result); err != nil {
			logger.Warn("codegen cache write failed", "error", err.Error())
		}
	}

	logger.Info("code generated", "project_id", p.ID, "components", len(components))
	httputil.RespondJSON(w, result, http.StatusOK)
}
