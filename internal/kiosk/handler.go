package kiosk

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"kiosk/internal/cart"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// notices shown on the page after a form post redirects back to it
var notices = map[string]string{
	"saved":       "선택한 메뉴를 저장했습니다.",
	"restored":    "저장된 메뉴를 불러왔습니다.",
	"no-snapshot": "저장된 메뉴가 없습니다.",
}

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// --------------------------------------------------
// Page + form posts
// --------------------------------------------------

func (h *Handler) Page(c *gin.Context) {
	var buf bytes.Buffer
	notice := notices[c.Query("notice")]

	if err := h.service.RenderPage(c.Request.Context(), sessionID(c), &buf, notice); err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// SelectionFragment returns only the selection container markup.
func (h *Handler) SelectionFragment(c *gin.Context) {
	sel, err := h.service.Selection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(sel.HTML))
}

func (h *Handler) SelectForm(c *gin.Context) {
	req := SelectRequest{
		ItemID: c.Param("id"),
		Name:   c.PostForm("name"),
	}
	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid price")
			return
		}
		req.Price = &price
	}

	if _, err := h.service.SelectItem(c.Request.Context(), sessionID(c), req); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) QuantityForm(c *gin.Context) {
	delta, err := strconv.Atoi(c.PostForm("delta"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid delta")
		return
	}

	if _, err := h.service.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("id"), delta); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) SaveForm(c *gin.Context) {
	if _, err := h.service.SaveSelection(c.Request.Context(), sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/?notice=saved")
}

func (h *Handler) RestoreForm(c *gin.Context) {
	_, restored, err := h.service.LoadSelection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	target := "/?notice=restored"
	if !restored {
		target = "/?notice=no-snapshot"
	}
	c.Redirect(http.StatusSeeOther, target)
}

// EndSession discards the session cart and its cookie.
func (h *Handler) EndSession(c *gin.Context) {
	if id, err := c.Cookie(SessionCookie); err == nil {
		h.service.Reset(c.Request.Context(), id)
	}
	clearSession(c)
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// JSON API
// --------------------------------------------------

func (h *Handler) GetSelection(c *gin.Context) {
	sel, err := h.service.Selection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h *Handler) SelectItem(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Price *int64 `json:"price"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	sel, err := h.service.SelectItem(c.Request.Context(), sessionID(c), SelectRequest{
		ItemID: c.Param("id"),
		Name:   req.Name,
		Price:  req.Price,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Delta *int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Delta == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta is required"})
		return
	}

	sel, err := h.service.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("id"), *req.Delta)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h *Handler) SaveSelection(c *gin.Context) {
	sel, err := h.service.SaveSelection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h *Handler) LoadSelection(c *gin.Context) {
	sel, restored, err := h.service.LoadSelection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restored":  restored,
		"selection": sel,
	})
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidItem), errors.Is(err, ErrInvalidSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("kiosk request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
