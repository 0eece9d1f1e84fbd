package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/logging"
	saved "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/service"
)

// writeError maps wizard, store and gateway errors to a status and JSON body.
func writeError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	var ve *estimate.ValidationError
	var se *estimate.ServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, saved.ErrNotFound):
		status, msg = http.StatusNotFound, "project not found"
	case errors.Is(err, domain.ErrWrongScreen),
		errors.Is(err, domain.ErrNotReady),
		errors.Is(err, domain.ErrReadOnly):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnknownOption),
		errors.Is(err, domain.ErrUnknownCommand):
		status = http.StatusBadRequest
	case errors.As(err, &ve), errors.As(err, &se):
		status, msg = http.StatusBadGateway, estimate.Message(err)
	}

	if status >= http.StatusInternalServerError {
		logging.NewLogger(c.Request.Context()).LogError(op, err)
	}
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

func (h *Handler) create(c *gin.Context) {
	id, v := h.svc.Start()
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session_id": id, "view": v})
}

func (h *Handler) view(c *gin.Context) {
	v, err := h.svc.View(c.Param("id"))
	if err != nil {
		writeError(c, "wizard_view", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": v})
}

func (h *Handler) close(c *gin.Context) {
	if err := h.svc.Close(c.Param("id")); err != nil {
		writeError(c, "wizard_close", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) command(c *gin.Context) {
	var cmd service.Command
	if err := c.ShouldBindJSON(&cmd); err != nil || cmd.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid command"})
		return
	}

	v, err := h.svc.Apply(c.Param("id"), cmd)
	if err != nil {
		writeError(c, "wizard_command", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": v})
}

// estimate runs the estimator call for the session. A gateway failure is
// part of the view, so it still answers 200.
func (h *Handler) estimate(c *gin.Context) {
	v, err := h.svc.Estimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "wizard_estimate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": v})
}

func (h *Handler) finalize(c *gin.Context) {
	v, p, err := h.svc.Finalize(c.Request.Context(), c.Param("id"), auth.Owner(c))
	if err != nil {
		writeError(c, "wizard_finalize", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": v, "project": p})
}

func (h *Handler) viewSaved(c *gin.Context) {
	var req viewSavedReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	v, err := h.svc.OpenSaved(c.Request.Context(), c.Param("id"), auth.Owner(c), req.ProjectID)
	if err != nil {
		writeError(c, "wizard_view_saved", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": v})
}

func (h *Handler) pdf(c *gin.Context) {
	body, name, err := h.svc.PDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "wizard_pdf", err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", body, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}
