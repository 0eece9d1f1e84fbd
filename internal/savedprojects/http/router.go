package http

import "github.com/gin-gonic/gin"

// Register attaches saved-project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.rename)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/pdf", h.pdf)
}
