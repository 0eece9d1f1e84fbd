package service

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
	saved "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/resolver"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/signature"
)

// Options configure a Controller. Zero values are usable.
type Options struct {
	AnalysisDelay time.Duration
	Now           func() time.Time
	Metrics       *metrics.Metrics
}

// estimateState belongs to one estimate screen instance.
type estimateState struct {
	generation uint64
	status     domain.EstimateStatus
	result     *domain.EstimateResult
	err        string

	// invalidInput marks err as the estimator rejecting the draft (HTTP 422).
	invalidInput bool
	// nil until the user answers the upgrade prompt
	wantsUpgrade *bool
}

// tierSelection is the provisional upgrade tier explored on tier-detail.
type tierSelection struct {
	suggestion domain.UpgradeSuggestion
	excluded   map[string]bool
}

// Controller is the wizard navigation machine for one session. It is not
// safe for concurrent use; Registry serializes access per session.
type Controller struct {
	opts Options

	screen   domain.Screen
	previous domain.Screen
	step     domain.ProjectStep
	draft    domain.ProjectDraft
	readOnly bool

	estimate      estimateState
	generations   uint64
	tier          *tierSelection
	analysisUntil time.Time

	pad       *signature.Pad
	gate      *signature.Gate
	orderPad  *signature.Pad
	orderGate *signature.Gate

	// record is the stored project in read-only mode, or the one just saved.
	record *saved.SavedProject
	// committed stays set for the rest of the draft once it has been stored.
	committed bool
}

// NewController returns a controller on the greeting screen.
func NewController(opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Controller{opts: opts}
	c.reset()
	return c
}

// reset clears every piece of run state.
func (c *Controller) reset() {
	c.screen = domain.ScreenGreeting
	c.previous = ""
	c.step = domain.StepProjectSelection
	c.draft = domain.NewDraft()
	c.readOnly = false
	c.estimate = estimateState{}
	c.tier = nil
	c.analysisUntil = time.Time{}
	c.pad = signature.NewPad(0, 0)
	c.gate = signature.NewGate()
	c.orderPad = nil
	c.orderGate = nil
	c.record = nil
	c.committed = false
}

func (c *Controller) Screen() domain.Screen { return c.screen }

func (c *Controller) ReadOnly() bool { return c.readOnly }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() domain.ProjectDraft { return c.draft.Clone() }

func (c *Controller) moveTo(s domain.Screen) {
	c.screen = s
	c.opts.Metrics.RecordTransition(string(s))
}

func (c *Controller) require(screens ...domain.Screen) error {
	for _, s := range screens {
		if c.screen == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrWrongScreen, c.screen)
}

// Advance moves the transient analysis state on once its deadline passes.
func (c *Controller) Advance(now time.Time) {
	if c.screen == domain.ScreenAnalysisLoading && !now.Before(c.analysisUntil) {
		c.moveTo(domain.ScreenTierDetail)
	}
}

// readOnlyAllowed lists the commands a replayed project still accepts.
var readOnlyAllowed = map[string]bool{
	CmdBack:          true,
	CmdHome:          true,
	CmdViewBreakdown: true,
}

// Apply runs one command. A command that is not available on the current
// screen, or whose preconditions are unmet, returns an error and leaves the
// state untouched.
func (c *Controller) Apply(cmd Command) error {
	c.Advance(c.opts.Now())
	if c.readOnly && !readOnlyAllowed[cmd.Type] {
		return domain.ErrReadOnly
	}

	var err error
	switch cmd.Type {
	case CmdHome:
		c.reset()
		c.moveTo(domain.ScreenGreeting)
	case CmdStart:
		err = c.start()
	case CmdOpenSaved:
		if err = c.require(domain.ScreenGreeting); err == nil {
			c.moveTo(domain.ScreenSaved)
		}
	case CmdBack:
		err = c.back()
	case CmdProceed:
		err = c.proceed()
	case CmdSelectProject:
		err = c.selectProject(cmd.ProjectType)
	case CmdSelectPlot:
		err = c.selectPlot(cmd.PlotSize)
	case CmdSelectDimensions:
		err = c.selectDimensions(cmd.Choice, cmd.Length, cmd.Width)
	case CmdAnswer:
		err = c.answer(cmd.Question, cmd.Answer)
	case CmdSelectFloors:
		err = c.selectFloors(cmd.Choice, cmd.Custom)
	case CmdSelectPlan:
		err = c.selectPlan(cmd.Plan)
	case CmdToggleUpgrade:
		err = c.toggleUpgrade(cmd.Category, cmd.Option)
	case CmdSelectInterior:
		err = c.selectInterior(cmd.Interior)
	case CmdSetRequirements:
		err = c.setRequirements(cmd)
	case CmdViewBreakdown:
		err = c.viewBreakdown()
	case CmdUpgradeDecision:
		err = c.upgradeDecision(cmd.WantsUpgrade)
	case CmdAcceptUpgrade:
		err = c.acceptUpgrade(cmd.Tier)
	case CmdToggleFeature:
		err = c.toggleFeature(cmd.FeatureID)
	case CmdSign:
		err = c.sign(cmd.Stroke)
	case CmdClearSignature:
		err = c.clearSignature()
	case CmdAgree:
		err = c.agree(cmd.Agreed)
	case CmdSetClientName:
		err = c.setClientName(cmd.Name)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Type)
	}
	if err != nil {
		return err
	}
	c.Advance(c.opts.Now())
	return nil
}

func (c *Controller) start() error {
	if err := c.require(domain.ScreenGreeting); err != nil {
		return err
	}
	c.step = domain.StepProjectSelection
	c.moveTo(domain.ScreenProject)
	return nil
}

func (c *Controller) floorPlanScreen() domain.Screen {
	if c.draft.ProjectType == domain.ProjectRentalHomes {
		return domain.ScreenRentalFloorPlan
	}
	return domain.ScreenDreamHouseFloorPlan
}

// back follows the single back edge of the current screen.
func (c *Controller) back() error {
	switch c.screen {
	case domain.ScreenProject:
		switch c.step {
		case domain.StepDimensionSelection:
			c.draft.Dimensions = ""
			c.step = domain.StepPlotSelection
		case domain.StepPlotSelection:
			c.draft.PlotSize = ""
			c.step = domain.StepProjectSelection
		default:
			c.draft.ProjectType = ""
			c.moveTo(domain.ScreenGreeting)
		}
	case domain.ScreenAdditionalQuestions:
		c.step = domain.StepDimensionSelection
		c.moveTo(domain.ScreenProject)
	case domain.ScreenDreamHouseFloorPlan, domain.ScreenRentalFloorPlan:
		c.moveTo(domain.ScreenAdditionalQuestions)
	case domain.ScreenPlanDetails:
		c.moveTo(c.floorPlanScreen())
	case domain.ScreenInterior:
		c.moveTo(domain.ScreenPlanDetails)
	case domain.ScreenSummary:
		c.moveTo(domain.ScreenInterior)
	case domain.ScreenEstimate:
		c.leaveEstimate()
	case domain.ScreenBreakdown:
		c.moveTo(domain.ScreenEstimate)
	case domain.ScreenAnalysisLoading, domain.ScreenTierDetail:
		c.tier = nil
		c.moveTo(domain.ScreenEstimate)
	case domain.ScreenOrderSummary:
		c.moveTo(domain.ScreenTierDetail)
	case domain.ScreenSaved:
		c.reset()
		c.moveTo(domain.ScreenGreeting)
	default:
		return fmt.Errorf("%w: no back action on %s", domain.ErrWrongScreen, c.screen)
	}
	return nil
}

// proceed follows the forward edge of the current screen once its inputs
// are complete.
func (c *Controller) proceed() error {
	switch c.screen {
	case domain.ScreenAdditionalQuestions:
		qs := resolver.ResolveQuestions(c.draft.ProjectType, c.draft.PlotSize)
		if !resolver.AllAnswered(qs, c.draft.Answers) {
			return fmt.Errorf("%w: answer every question", domain.ErrNotReady)
		}
		c.moveTo(c.floorPlanScreen())
	case domain.ScreenDreamHouseFloorPlan, domain.ScreenRentalFloorPlan:
		if c.draft.Floors == "" || c.draft.Plan == "" {
			return fmt.Errorf("%w: floors and plan are required", domain.ErrNotReady)
		}
		c.draft.Upgrades = resolver.InitUpgrades(c.draft.Plan, c.draft.Upgrades)
		c.moveTo(domain.ScreenPlanDetails)
	case domain.ScreenPlanDetails:
		c.moveTo(domain.ScreenInterior)
	case domain.ScreenInterior:
		if !c.draft.Interior.Valid() || c.draft.Interior == domain.InteriorNone {
			return fmt.Errorf("%w: choose an interior package", domain.ErrNotReady)
		}
		c.moveTo(domain.ScreenSummary)
	case domain.ScreenSummary:
		c.enterEstimate(domain.ScreenSummary)
	case domain.ScreenTierDetail:
		c.orderPad = signature.NewPad(0, 0)
		c.orderGate = signature.NewGate()
		c.moveTo(domain.ScreenOrderSummary)
	default:
		return fmt.Errorf("%w: no forward action on %s", domain.ErrWrongScreen, c.screen)
	}
	return nil
}

func (c *Controller) selectProject(t domain.ProjectType) error {
	if c.screen != domain.ScreenProject || c.step != domain.StepProjectSelection {
		return fmt.Errorf("%w: project type is chosen on the first project step", domain.ErrWrongScreen)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: project type %q", domain.ErrUnknownOption, t)
	}
	if c.draft.ProjectType != t {
		c.draft.Answers = map[string]string{}
		c.draft.Floors = ""
	}
	c.draft.ProjectType = t
	c.step = domain.StepPlotSelection
	return nil
}

func (c *Controller) selectPlot(p domain.PlotSize) error {
	if c.screen != domain.ScreenProject || c.step != domain.StepPlotSelection {
		return fmt.Errorf("%w: plot size is chosen on the plot step", domain.ErrWrongScreen)
	}
	if !domain.PlotAllowed(c.draft.ProjectType, p) {
		return fmt.Errorf("%w: plot size %q for %s", domain.ErrUnknownOption, p, c.draft.ProjectType)
	}
	c.draft.PlotSize = p
	c.step = domain.StepDimensionSelection
	return nil
}

// selectDimensions completes the project screen. Entering the question set
// applies the rental forced defaults.
func (c *Controller) selectDimensions(choice, length, width string) error {
	if c.screen != domain.ScreenProject || c.step != domain.StepDimensionSelection {
		return fmt.Errorf("%w: dimensions are chosen on the dimension step", domain.ErrWrongScreen)
	}
	dims, err := domain.ResolveDimensions(c.draft.PlotSize, choice, length, width)
	if err != nil {
		return err
	}
	c.draft.Dimensions = dims
	c.draft.Answers = resolver.ApplyForcedDefaults(c.draft.ProjectType, c.draft.PlotSize, c.draft.Answers)
	c.moveTo(domain.ScreenAdditionalQuestions)
	return nil
}

func (c *Controller) answer(id, value string) error {
	if err := c.require(domain.ScreenAdditionalQuestions); err != nil {
		return err
	}
	qs := resolver.ResolveQuestions(c.draft.ProjectType, c.draft.PlotSize)
	q, ok := resolver.FindQuestion(qs, id)
	if !ok {
		return fmt.Errorf("%w: question %q", domain.ErrUnknownOption, id)
	}
	if !q.Accepts(value) {
		return fmt.Errorf("%w: %q is not an answer to %s", domain.ErrUnknownOption, value, id)
	}
	answers := make(map[string]string, len(c.draft.Answers)+1)
	for k, v := range c.draft.Answers {
		answers[k] = v
	}
	answers[id] = value
	c.draft.Answers = answers
	return nil
}

func (c *Controller) selectFloors(choice, custom string) error {
	if !c.screen.IsFloorPlan() {
		return fmt.Errorf("%w: %s", domain.ErrWrongScreen, c.screen)
	}
	floors, err := domain.ResolveFloors(c.draft.ProjectType, choice, custom)
	if err != nil {
		return err
	}
	c.draft.Floors = floors
	return nil
}

// selectPlan sets the construction grade. Changing it discards upgrade
// selections made under the previous plan.
func (c *Controller) selectPlan(s string) error {
	if !c.screen.IsFloorPlan() {
		return fmt.Errorf("%w: %s", domain.ErrWrongScreen, c.screen)
	}
	plan, ok := domain.ParsePlan(s)
	if !ok {
		return fmt.Errorf("%w: plan %q", domain.ErrUnknownOption, s)
	}
	if plan != c.draft.Plan {
		c.draft.Upgrades = domain.Upgrades{}
	}
	c.draft.Plan = plan
	return nil
}

func (c *Controller) toggleUpgrade(category domain.Category, option string) error {
	if err := c.require(domain.ScreenPlanDetails); err != nil {
		return err
	}
	next, err := resolver.ToggleSelection(c.draft.Upgrades, c.draft.Plan, category, option)
	if err != nil {
		return err
	}
	c.draft.Upgrades = next
	return nil
}

func (c *Controller) selectInterior(i domain.Interior) error {
	if err := c.require(domain.ScreenInterior); err != nil {
		return err
	}
	if !i.Valid() || i == domain.InteriorNone {
		return fmt.Errorf("%w: interior %q", domain.ErrUnknownOption, i)
	}
	c.draft.Interior = i
	return nil
}

func (c *Controller) setRequirements(cmd Command) error {
	if err := c.require(domain.ScreenSummary); err != nil {
		return err
	}
	if cmd.CompoundWall != nil {
		c.draft.AdditionalRequirements.CompoundWall = *cmd.CompoundWall
	}
	if cmd.RainWater != nil {
		c.draft.AdditionalRequirements.RainWater = *cmd.RainWater
	}
	if cmd.Notes != nil {
		c.draft.AdditionalRequirements.Notes = *cmd.Notes
	}
	return nil
}
