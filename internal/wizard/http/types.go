package http

import "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/service"

// Handler bundles the dependencies for wizard session endpoints.
type Handler struct {
	svc *service.WizardService
}

func New(svc *service.WizardService) *Handler {
	return &Handler{svc: svc}
}

type viewSavedReq struct {
	ProjectID int64 `json:"project_id" binding:"required"`
}
