package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/logging"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return 0, false
	}
	return id, true
}

// writeError maps store and gateway errors to a status and JSON body.
func writeError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	var ve *estimate.ValidationError
	var se *estimate.ServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "project not found"
	case errors.Is(err, domain.ErrInvalidName):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupported):
		status = http.StatusNotImplemented
	case errors.As(err, &ve), errors.As(err, &se):
		status, msg = http.StatusBadGateway, estimate.Message(err)
	}

	if status >= http.StatusInternalServerError {
		logging.NewLogger(c.Request.Context()).LogError(op, err)
	}
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.Owner(c))
	if err != nil {
		writeError(c, "list_saved_projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), auth.Owner(c), id)
	if err != nil {
		writeError(c, "get_saved_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) rename(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Rename(c.Request.Context(), auth.Owner(c), id, req.Name)
	if err != nil {
		writeError(c, "rename_saved_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.Owner(c), id); err != nil {
		writeError(c, "delete_saved_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) pdf(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	body, name, err := h.svc.PDF(c.Request.Context(), auth.Owner(c), id)
	if err != nil {
		writeError(c, "saved_project_pdf", err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", body, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}
