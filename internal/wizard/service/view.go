package service

import (
	"time"

	saved "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/resolver"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/signature"
)

// View is what the renderer needs to draw the current screen.
type View struct {
	Screen         domain.Screen       `json:"screen"`
	PreviousScreen domain.Screen       `json:"previous_screen,omitempty"`
	Step           domain.ProjectStep  `json:"step,omitempty"`
	ReadOnly       bool                `json:"read_only"`
	Draft          domain.ProjectDraft `json:"draft"`
	CanProceed     bool                `json:"can_proceed"`

	Options   *OptionsView       `json:"options,omitempty"`
	Upgrades  *resolver.Snapshot `json:"upgrades,omitempty"`
	Estimate  *EstimateView      `json:"estimate,omitempty"`
	Signature *SignatureView     `json:"signature,omitempty"`
	Tier      *TierView          `json:"tier,omitempty"`
	Order     *OrderView         `json:"order,omitempty"`

	AnalysisUntil *time.Time          `json:"analysis_until,omitempty"`
	Record        *saved.SavedProject `json:"record,omitempty"`
}

// OptionsView lists the choices offered on the current screen.
type OptionsView struct {
	ProjectTypes []domain.ProjectType                `json:"project_types,omitempty"`
	PlotSizes    []domain.PlotSize                   `json:"plot_sizes,omitempty"`
	Dimensions   []string                            `json:"dimensions,omitempty"`
	Questions    []domain.Question                   `json:"questions,omitempty"`
	Floors       []string                            `json:"floors,omitempty"`
	Plans        []domain.Plan                       `json:"plans,omitempty"`
	Catalog      map[domain.Category][]domain.Option `json:"catalog,omitempty"`
	Interiors    []domain.Interior                   `json:"interiors,omitempty"`
}

type EstimateView struct {
	Status       domain.EstimateStatus  `json:"status"`
	Generation   uint64                 `json:"generation"`
	Result       *domain.EstimateResult `json:"result,omitempty"`
	Error        string                 `json:"error,omitempty"`
	InvalidInput bool                   `json:"invalid_input,omitempty"`
	WantsUpgrade *bool                  `json:"wants_upgrade,omitempty"`
	TotalCost    float64                `json:"total_cost"`
	UpgradesCost float64                `json:"upgrades_cost"`
	// ActiveUpgrades is the plan-details upgrade count for this draft.
	ActiveUpgrades int `json:"active_upgrades"`
}

type SignatureView struct {
	State       signature.State `json:"state"`
	ReadOnly    bool            `json:"read_only"`
	Image       string          `json:"image,omitempty"`
	Agreed      bool            `json:"agreed"`
	Saved       bool            `json:"saved"`
	CanFinalize bool            `json:"can_finalize"`
}

type FeatureView struct {
	domain.TierFeature
	Included bool `json:"included"`
}

type TierView struct {
	Tier        string        `json:"tier"`
	Description string        `json:"description"`
	BaseCost    float64       `json:"base_cost"`
	UpgradeCost float64       `json:"upgrade_cost"`
	Features    []FeatureView `json:"features"`
}

type OrderView struct {
	Tier           string               `json:"tier"`
	BaseCost       float64              `json:"base_cost"`
	UpgradeCost    float64              `json:"upgrade_cost"`
	TotalCost      float64              `json:"total_cost"`
	ActiveUpgrades int                  `json:"active_upgrades"`
	Features       []domain.TierFeature `json:"features"`
}

var allProjectTypes = []domain.ProjectType{
	domain.ProjectDreamHouse,
	domain.ProjectRentalHomes,
	domain.ProjectCommercial,
	domain.ProjectVilla,
	domain.ProjectInterior,
	domain.ProjectExterior,
}

var allPlans = []domain.Plan{domain.PlanBase, domain.PlanClassic, domain.PlanPremium, domain.PlanLuxury}

// View renders the current state.
func (c *Controller) View() View {
	c.Advance(c.opts.Now())

	v := View{
		Screen:   c.screen,
		ReadOnly: c.readOnly,
		Draft:    c.draft.Clone(),
	}
	if c.screen == domain.ScreenEstimate || c.screen == domain.ScreenBreakdown {
		v.PreviousScreen = c.previous
	}
	if c.record != nil {
		rec := *c.record
		v.Record = &rec
	}

	switch c.screen {
	case domain.ScreenProject:
		v.Step = c.step
		v.Options = c.projectOptions()
	case domain.ScreenAdditionalQuestions:
		qs := resolver.ResolveQuestions(c.draft.ProjectType, c.draft.PlotSize)
		v.Options = &OptionsView{Questions: qs}
		v.CanProceed = resolver.AllAnswered(qs, c.draft.Answers)
	case domain.ScreenDreamHouseFloorPlan, domain.ScreenRentalFloorPlan:
		v.Options = &OptionsView{Floors: domain.FloorOptions(c.draft.ProjectType), Plans: allPlans}
		v.CanProceed = c.draft.Floors != "" && c.draft.Plan != ""
	case domain.ScreenPlanDetails:
		snap := resolver.Summarize(c.draft.Upgrades, c.draft.Plan)
		v.Upgrades = &snap
		v.Options = &OptionsView{Catalog: domain.UpgradeCatalog}
		v.CanProceed = true
	case domain.ScreenInterior:
		v.Options = &OptionsView{Interiors: domain.InteriorOptions}
		v.CanProceed = c.draft.Interior.Valid() && c.draft.Interior != domain.InteriorNone
	case domain.ScreenSummary:
		snap := resolver.Summarize(c.draft.Upgrades, c.draft.Plan)
		v.Upgrades = &snap
		v.CanProceed = true
	case domain.ScreenEstimate, domain.ScreenBreakdown:
		v.Estimate = c.estimateView()
		if pad, gate, err := c.activeSignature(); err == nil {
			v.Signature = signatureView(pad, gate)
		}
	case domain.ScreenAnalysisLoading:
		until := c.analysisUntil
		v.AnalysisUntil = &until
	case domain.ScreenTierDetail:
		v.Tier = c.tierView()
		v.CanProceed = true
	case domain.ScreenOrderSummary:
		v.Order = c.orderView()
		v.Signature = signatureView(c.orderPad, c.orderGate)
	}
	return v
}

func (c *Controller) projectOptions() *OptionsView {
	switch c.step {
	case domain.StepPlotSelection:
		return &OptionsView{PlotSizes: domain.PlotOptions(c.draft.ProjectType)}
	case domain.StepDimensionSelection:
		return &OptionsView{Dimensions: append(domain.DimensionOptions(c.draft.PlotSize), domain.CustomChoice)}
	default:
		return &OptionsView{ProjectTypes: allProjectTypes}
	}
}

func (c *Controller) estimateView() *EstimateView {
	ev := &EstimateView{
		Status:         c.estimate.status,
		Generation:     c.estimate.generation,
		Result:         c.estimate.result,
		Error:          c.estimate.err,
		InvalidInput:   c.estimate.invalidInput,
		WantsUpgrade:   c.estimate.wantsUpgrade,
		TotalCost:      c.baseCost(),
		ActiveUpgrades: resolver.CountActiveUpgrades(c.draft.Upgrades, c.draft.Plan),
	}
	if c.readOnly && c.record != nil {
		ev.TotalCost = c.record.TotalCost
		ev.UpgradesCost = c.record.UpgradesCost
	}
	return ev
}

func signatureView(pad *signature.Pad, gate *signature.Gate) *SignatureView {
	if pad == nil || gate == nil {
		return nil
	}
	return &SignatureView{
		State:       pad.State(),
		ReadOnly:    pad.ReadOnly(),
		Image:       pad.Snapshot(),
		Agreed:      gate.Agreed(),
		Saved:       gate.Saved(),
		CanFinalize: gate.Enabled(pad),
	}
}

func (c *Controller) tierView() *TierView {
	if c.tier == nil {
		return nil
	}
	tv := &TierView{
		Tier:        c.tier.suggestion.Tier,
		Description: c.tier.suggestion.Description,
		BaseCost:    c.baseCost(),
		UpgradeCost: c.tier.cost(),
	}
	for _, f := range domain.FeaturesFor(c.tier.suggestion.Tier) {
		tv.Features = append(tv.Features, FeatureView{TierFeature: f, Included: !c.tier.excluded[f.ID]})
	}
	return tv
}

func (c *Controller) orderView() *OrderView {
	if c.tier == nil {
		return nil
	}
	upgrade := c.orderUpgradeCost()
	return &OrderView{
		Tier:           c.tier.suggestion.Tier,
		BaseCost:       c.baseCost(),
		UpgradeCost:    upgrade,
		TotalCost:      c.baseCost() + upgrade,
		ActiveUpgrades: resolver.CountActiveUpgrades(c.draft.Upgrades, c.draft.Plan),
		Features:       c.tier.includedFeatures(),
	}
}
