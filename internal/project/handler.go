package project

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/httputil"
	"github.com/buildforge/buildforge/internal/logging"
)

// Handler contains HTTP handlers for project endpoints
type Handler struct {
	store  Store
	logger *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// CreateRequest represents the project creation request body. Absent fields
// get defaults; an explicit empty string is kept as-is.
type CreateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateRequest represents the partial project update request body
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// MessageResponse represents a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// List handles listing the caller's projects
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Project
// @Router       /api/projects [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projects, err := h.store.List(r.Context(), userID)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to list projects", "error", err.Error())
		httputil.RespondError(w, "failed to list projects", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, projects, http.StatusOK)
}

// Create handles project creation
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest false "Project fields"
// @Success      201 {object} Project
// @Router       /api/projects [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	// An empty body is a valid create request; all fields have defaults.
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("invalid project create request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name := DefaultName
	if req.Name != nil {
		name = *req.Name
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	created, err := h.store.Create(r.Context(), userID, name, description)
	if err != nil {
		logger.Error("failed to create project", "error", err.Error())
		httputil.RespondError(w, "failed to create project", http.StatusInternalServerError)
		return
	}

	logger.Info("project created", "project_id", created.ID)
	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Get handles fetching a single project
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project id"
// @Success      200 {object} Project
// @Failure      404 {object} httputil.ErrorResponse "Project not found"
// @Router       /api/projects/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projectID, ok := parseProjectID(r)
	if !ok {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}

	p, err := h.store.Get(r.Context(), userID, projectID)
	if err != nil {
		h.respondStoreError(w, r, err, "failed to get project")
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Update handles partial project updates
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project id"
// @Param        request body UpdateRequest true "Fields to update"
// @Success      200 {object} Project
// @Failure      404 {object} httputil.ErrorResponse "Project not found"
// @Router       /api/projects/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projectID, ok := parseProjectID(r)
	if !ok {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid project update request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.store.Update(r.Context(), userID, projectID, UpdateFields{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondStoreError(w, r, err, "failed to update project")
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles project deletion with component cascade
// @Summary      Delete a project and its components
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project id"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} httputil.ErrorResponse "Project not found"
// @Router       /api/projects/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projectID, ok := parseProjectID(r)
	if !ok {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}

	if err := h.store.Delete(r.Context(), userID, projectID); err != nil {
		h.respondStoreError(w, r, err, "failed to delete project")
		return
	}

	logger.Info("project deleted", "project_id", projectID)
	httputil.RespondJSON(w, MessageResponse{Message: "Project deleted successfully"}, http.StatusOK)
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}
	logging.GetLoggerFromContext(r.Context()).Error(internalMsg, "error", err.Error())
	httputil.RespondError(w, internalMsg, http.StatusInternalServerError)
}

// parseProjectID reads the project id path parameter. A malformed id cannot
// name an existing project, so it reports not-found rather than bad-request.
func parseProjectID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
