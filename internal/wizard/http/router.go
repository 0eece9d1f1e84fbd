package http

import "github.com/gin-gonic/gin"

// Register attaches wizard session routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/:id", h.view)
	rg.DELETE("/:id", h.close)
	rg.POST("/:id/commands", h.command)
	rg.POST("/:id/estimate", h.estimate)
	rg.POST("/:id/finalize", h.finalize)
	rg.POST("/:id/view-saved", h.viewSaved)
	rg.GET("/:id/pdf", h.pdf)
}
