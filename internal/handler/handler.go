package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stackmap/internal/codec"
	"stackmap/internal/domain"
	"stackmap/internal/service"
	"stackmap/internal/theme"
	"stackmap/internal/view"
)

// MaxImportBytes limits the size of an uploaded layout document
const MaxImportBytes = 1 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ViewHandler handles the diagram API
type ViewHandler struct {
	svc    *service.ViewService
	logger *zap.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(svc *service.ViewService, logger *zap.Logger) *ViewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewHandler{svc: svc, logger: logger}
}

// GetView returns the state and graph
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.View(), http.StatusOK)
}

// GetCatalog returns nodes, edges, scenarios and roles
func (h *ViewHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Catalog(), http.StatusOK)
}

// SwitchLayout activates the layout named in the path
func (h *ViewHandler) SwitchLayout(w http.ResponseWriter, r *http.Request) {
	mode := domain.LayoutMode(chi.URLParam(r, "mode"))
	model, err := h.svc.SwitchLayout(r.Context(), mode)
	if err != nil {
		h.fail(w, "Failed to switch layout", err)
		return
	}
	h.writeJSON(w, model, http.StatusOK)
}

// ResetLayout restores the preset; requires ?confirm=true
func (h *ViewHandler) ResetLayout(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	confirmer := view.ConfirmFunc(func(string) bool { return confirmed })

	model, err := h.svc.ResetLayout(r.Context(), confirmer)
	if err != nil {
		h.fail(w, "Failed to reset layout", err)
		return
	}
	h.writeJSON(w, model, http.StatusOK)
}

type positionRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// UpdatePosition records the drop position of a dragged node
func (h *ViewHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.X == nil || req.Y == nil {
		h.writeError(w, "Invalid request body", "x and y are required", http.StatusBadRequest)
		return
	}

	model, err := h.svc.DragStop(r.Context(), nodeID, domain.Position{X: *req.X, Y: *req.Y})
	if err != nil {
		h.fail(w, "Failed to update position", err)
		return
	}
	h.writeJSON(w, model, http.StatusOK)
}

// SetScenario selects the scenario named in the path
func (h *ViewHandler) SetScenario(w http.ResponseWriter, r *http.Request) {
	model, err := h.svc.SetScenario(chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, "Failed to set scenario", err)
		return
	}
	h.writeJSON(w, model, http.StatusOK)
}

// TogglePlay flips edge animation
func (h *ViewHandler) TogglePlay(w http.ResponseWriter, r *http.Request) {
	model, err := h.svc.TogglePlay()
	if err != nil {
		h.fail(w, "Failed to toggle animation", err)
		return
	}
	h.writeJSON(w, model, http.StatusOK)
}

// Export downloads the active layout document as json (default) or yaml
func (h *ViewHandler) Export(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.fail(w, "Failed to export layout", err)
		return
	}

	doc := h.svc.ExportState()
	filename := fmt.Sprintf("stackmap-%s.%s", doc.Layout, c.Format())

	w.Header().Set("Content-Type", c.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := c.Export(doc, w); err != nil {
		// Can't write error response as we already set headers
		h.logger.Error("failed to export layout", zap.Error(err))
	}
}

// Import applies an uploaded layout document. The format follows Content-Type.
func (h *ViewHandler) Import(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForContentType(r.Header.Get("Content-Type"))
	if err != nil {
		h.fail(w, "Failed to import layout", err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, MaxImportBytes)
	model, err := h.svc.ImportState(r.Context(), body, c)
	if err != nil {
		h.fail(w, "Failed to import layout", err)
		return
	}
	h.writeJSON(w, model, http.StatusOK)
}

// GetPayload returns the example payload for an edge
func (h *ViewHandler) GetPayload(w http.ResponseWriter, r *http.Request) {
	text := h.svc.Payload(chi.URLParam(r, "edgeID"))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Debug("failed to write payload", zap.Error(err))
	}
}

// GetTheme returns the current theme
func (h *ViewHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Theme(r.Context()), http.StatusOK)
}

// SetTheme replaces the theme
func (h *ViewHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var t domain.Theme
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.SetTheme(r.Context(), t)
	if err != nil {
		h.fail(w, "Failed to save theme", err)
		return
	}
	h.writeJSON(w, saved, http.StatusOK)
}

// ResetTheme restores the default theme
func (h *ViewHandler) ResetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.ResetTheme(r.Context())
	if err != nil {
		h.fail(w, "Failed to reset theme", err)
		return
	}
	h.writeJSON(w, t, http.StatusOK)
}

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, view.ErrUnknownLayout),
		errors.Is(err, view.ErrUnknownNode),
		errors.Is(err, view.ErrUnknownScenario):
		return http.StatusNotFound
	case errors.Is(err, view.ErrNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, view.ErrInvalidDocument),
		errors.Is(err, theme.ErrInvalidTheme):
		if errors.As(err, &maxBytes) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	case errors.Is(err, codec.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func (h *ViewHandler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	h.writeError(w, message, err.Error(), status)
}

// Helper methods

func (h *ViewHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Debug("failed to encode JSON", zap.Error(err))
	}
}

func (h *ViewHandler) writeError(w http.ResponseWriter, message, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	}); err != nil {
		h.logger.Debug("failed to encode error response", zap.Error(err))
	}
}
