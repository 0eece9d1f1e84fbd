package service

import (
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/signature"
)

// Command types accepted by Controller.Apply.
const (
	CmdStart            = "start"
	CmdOpenSaved        = "open-saved"
	CmdBack             = "back"
	CmdHome             = "home"
	CmdProceed          = "proceed"
	CmdSelectProject    = "select-project"
	CmdSelectPlot       = "select-plot"
	CmdSelectDimensions = "select-dimensions"
	CmdAnswer           = "answer"
	CmdSelectFloors     = "select-floors"
	CmdSelectPlan       = "select-plan"
	CmdToggleUpgrade    = "toggle-upgrade"
	CmdSelectInterior   = "select-interior"
	CmdSetRequirements  = "set-requirements"
	CmdViewBreakdown    = "view-breakdown"
	CmdUpgradeDecision  = "upgrade-decision"
	CmdAcceptUpgrade    = "accept-upgrade"
	CmdToggleFeature    = "toggle-feature"
	CmdSign             = "sign"
	CmdClearSignature   = "clear-signature"
	CmdAgree            = "agree"
	CmdSetClientName    = "set-client-name"
)

// Command is one user action. Only the fields the command type reads are set.
type Command struct {
	Type string `json:"type"`

	ProjectType domain.ProjectType `json:"project_type,omitempty"`
	PlotSize    domain.PlotSize    `json:"plot_size,omitempty"`

	// Choice is a dimension or floor option; "custom" reads Length/Width or Custom.
	Choice string `json:"choice,omitempty"`
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Custom string `json:"custom,omitempty"`

	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`

	Plan     string          `json:"plan,omitempty"`
	Category domain.Category `json:"category,omitempty"`
	Option   string          `json:"option,omitempty"`
	Interior domain.Interior `json:"interior,omitempty"`

	CompoundWall *bool   `json:"compound_wall,omitempty"`
	RainWater    *bool   `json:"rain_water,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	WantsUpgrade *bool  `json:"wants_upgrade,omitempty"`
	Tier         string `json:"tier,omitempty"`
	FeatureID    string `json:"feature_id,omitempty"`

	Stroke []signature.Point `json:"stroke,omitempty"`
	Agreed *bool             `json:"agreed,omitempty"`
	Name   string            `json:"name,omitempty"`
}
