package routes

import (
	"github.com/gin-gonic/gin"

	authmw "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth/middleware"
	savedhttp "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/http"
	savedsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/service"
	wizardhttp "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/http"
	wizardsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/service"
)

type V1Deps struct {
	Wizard        *wizardsvc.WizardService
	SavedProjects *savedsvc.SavedProjectService
	// Verifier is nil when Firebase is not configured.
	Verifier authmw.TokenVerifier
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(authmw.FirebaseAuth(dep.Verifier))

	wizardhttp.New(dep.Wizard).Register(api.Group("/wizard/sessions"))
	savedhttp.New(dep.SavedProjects).Register(api.Group("/saved-projects"))
}
