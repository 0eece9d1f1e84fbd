package domain

// Screen names one state of the wizard navigation machine.
type Screen string

const (
	ScreenGreeting            Screen = "greeting"
	ScreenProject             Screen = "project"
	ScreenAdditionalQuestions Screen = "additional-questions"
	ScreenDreamHouseFloorPlan Screen = "dream-house-floor-plan"
	ScreenRentalFloorPlan     Screen = "rental-floor-plan"
	ScreenPlanDetails         Screen = "plan-details"
	ScreenInterior            Screen = "interior"
	ScreenSummary             Screen = "summary"
	ScreenEstimate            Screen = "estimate"
	ScreenBreakdown           Screen = "breakdown"
	ScreenAnalysisLoading     Screen = "analysis-loading"
	ScreenTierDetail          Screen = "tier-detail"
	ScreenOrderSummary        Screen = "order-summary"
	ScreenSaved               Screen = "saved"
)

// IsFloorPlan reports whether s is one of the two floor-plan screens.
func (s Screen) IsFloorPlan() bool {
	return s == ScreenDreamHouseFloorPlan || s == ScreenRentalFloorPlan
}

// ProjectStep is the sub-step inside the project screen.
type ProjectStep string

const (
	StepProjectSelection   ProjectStep = "project-selection"
	StepPlotSelection      ProjectStep = "plot-selection"
	StepDimensionSelection ProjectStep = "dimension-selection"
)

// EstimateStatus tracks the gateway call owned by an estimate screen instance.
type EstimateStatus string

const (
	EstimatePending EstimateStatus = "pending"
	EstimateLoading EstimateStatus = "loading"
	EstimateReady   EstimateStatus = "ready"
	EstimateFailed  EstimateStatus = "failed"
)
