package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kiosk/internal/kiosk"
	"kiosk/internal/snapshot"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Inspector is the read-only view of the kiosk sessions the kitchen needs.
type Inspector interface {
	Sessions() []kiosk.SessionSummary
	SavedSelection(ctx context.Context, sessionID string) ([]byte, error)
}

type Handler struct {
	inspector Inspector
	logger    *zap.Logger
}

func NewHandler(inspector Inspector, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{inspector: inspector, logger: logger}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/sessions", h.ListSessions)
	r.GET("/snapshots/:session", h.GetSnapshot)
}

// --------------------------------------------------
// GET /admin/sessions
// --------------------------------------------------
func (h *Handler) ListSessions(c *gin.Context) {
	outputJSON(c, http.StatusOK, h.inspector.Sessions())
}

// --------------------------------------------------
// GET /admin/snapshots/:session
// --------------------------------------------------
func (h *Handler) GetSnapshot(c *gin.Context) {
	sessionID := c.Param("session")

	data, err := h.inspector.SavedSelection(c.Request.Context(), sessionID)
	if errors.Is(err, snapshot.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "no saved selection"})
		return
	}
	if err != nil {
		h.logger.Error("read snapshot failed", zap.String("session", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "internal error"})
		return
	}

	outputJSON(c, http.StatusOK, json.RawMessage(data))
}

func outputJSON(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"data":   data,
		"status": "ok",
	})
}
