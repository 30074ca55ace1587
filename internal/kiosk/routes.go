package kiosk

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Page)

	page := r.Group("/kiosk")
	{
		page.GET("/selection", h.SelectionFragment)
		page.POST("/items/:id/select", h.SelectForm)
		page.POST("/items/:id/quantity", h.QuantityForm)
		page.POST("/save", h.SaveForm)
		page.POST("/restore", h.RestoreForm)
		page.DELETE("/session", h.EndSession)
	}

	api := r.Group("/api/kiosk")
	{
		api.GET("/selection", h.GetSelection)
		api.POST("/items/:id/select", h.SelectItem)
		api.POST("/items/:id/quantity", h.UpdateQuantity)
		api.POST("/save", h.SaveSelection)
		api.POST("/restore", h.LoadSelection)
		api.DELETE("/session", h.EndSession)
	}
}
