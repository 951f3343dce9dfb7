package component

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/httputil"
	"github.com/buildforge/buildforge/internal/logging"
	"github.com/buildforge/buildforge/internal/project"
)

// Handler contains HTTP handlers for component endpoints
type Handler struct {
	store  Store
	logger *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// AddRequest represents the component creation request body
type AddRequest struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Content    string         `json:"content"`
	Position   *Position      `json:"position"`
}

// UpdateRequest represents the partial component update request body
type UpdateRequest struct {
	Properties map[string]any `json:"properties"`
	Content    *string        `json:"content"`
	Position   *Position      `json:"position"`
}

// MessageResponse represents a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// Add handles component creation
// @Summary      Add a component to a project
// @Tags         components
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project id"
// @Param        request body AddRequest true "Component fields"
// @Success      201 {object} Component
// @Failure      404 {object} httputil.ErrorResponse "Project not found"
// @Router       /api/projects/{id}/components [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projectID, ok := parsePathID(r, "projectID")
	if !ok {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid component add request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.store.Add(r.Context(), userID, projectID, AddParams{
		Type:       req.Type,
		Properties: req.Properties,
		Content:    req.Content,
		Position:   req.Position,
	})
	if err != nil {
		h.respondStoreError(w, r, err, "failed to add component")
		return
	}

	logger.Info("component added", "project_id", projectID, "component_id", created.ID, "type", created.Type)
	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Update handles partial component updates
// @Summary      Update a component
// @Tags         components
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project id"
// @Param        cid path string true "Component id"
// @Param        request body UpdateRequest true "Fields to update"
// @Success      200 {object} Component
// @Failure      404 {object} httputil.ErrorResponse "Project or component not found"
// @Router       /api/projects/{id}/components/{cid} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projectID, ok := parsePathID(r, "projectID")
	if !ok {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}
	componentID, ok := parsePathID(r, "componentID")
	if !ok {
		httputil.RespondError(w, "Component not found", http.StatusNotFound)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid component update request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.store.Update(r.Context(), userID, projectID, componentID, UpdateFields{
		Properties: req.Properties,
		Content:    req.Content,
		Position:   req.Position,
	})
	if err != nil {
		h.respondStoreError(w, r, err, "failed to update component")
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles component deletion
// @Summary      Delete a component
// @Tags         components
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project id"
// @Param        cid path string true "Component id"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} httputil.ErrorResponse "Project or component not found"
// @Router       /api/projects/{id}/components/{cid} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	projectID, ok := parsePathID(r, "projectID")
	if !ok {
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
		return
	}
	componentID, ok := parsePathID(r, "componentID")
	if !ok {
		httputil.RespondError(w, "Component not found", http.StatusNotFound)
		return
	}

	if err := h.store.Delete(r.Context(), userID, projectID, componentID); err != nil {
		h.respondStoreError(w, r, err, "failed to delete component")
		return
	}

	logger.Info("component deleted", "project_id", projectID, "component_id", componentID)
	httputil.RespondJSON(w, MessageResponse{Message: "Component deleted successfully"}, http.StatusOK)
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, project.ErrNotFound):
		httputil.RespondError(w, "Project not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		httputil.RespondError(w, "Component not found", http.StatusNotFound)
	default:
		logging.GetLoggerFromContext(r.Context()).Error(internalMsg, "error", err.Error())
		httputil.RespondError(w, internalMsg, http.StatusInternalServerError)
	}
}

func parsePathID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
