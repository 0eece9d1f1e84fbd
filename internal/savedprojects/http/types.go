package http

import "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/service"

// Handler bundles the dependencies for saved-project endpoints.
type Handler struct {
	svc *service.SavedProjectService
}

func New(svc *service.SavedProjectService) *Handler {
	return &Handler{svc: svc}
}

type renameReq struct {
	Name string `json:"name"`
}
