package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/signature"
)

// Ticket authorizes one gateway call for one estimate screen instance.
type Ticket struct {
	Generation uint64
	Payload    estimate.Payload
}

// enterEstimate opens a fresh estimate screen instance. Any response still
// in flight for an earlier instance will no longer match.
func (c *Controller) enterEstimate(from domain.Screen) {
	c.generations++
	c.estimate = estimateState{generation: c.generations, status: domain.EstimatePending}
	c.previous = from
	c.tier = nil
	c.record = nil
	c.pad = signature.NewPad(0, 0)
	c.gate = signature.NewGate()
	c.moveTo(domain.ScreenEstimate)
}

// leaveEstimate follows the estimate screen's back edge: to the saved list
// when the project was opened from there or has just been saved, otherwise
// to the summary.
func (c *Controller) leaveEstimate() {
	c.generations++
	if c.previous == domain.ScreenSaved || c.committed {
		c.reset()
		c.moveTo(domain.ScreenSaved)
		return
	}
	c.estimate = estimateState{}
	c.moveTo(domain.ScreenSummary)
}

// BeginEstimate marks the current estimate screen as loading and returns the
// ticket the caller must hand back with the gateway's answer.
func (c *Controller) BeginEstimate() (Ticket, error) {
	c.Advance(c.opts.Now())
	if err := c.require(domain.ScreenEstimate); err != nil {
		return Ticket{}, err
	}
	if c.readOnly {
		return Ticket{}, domain.ErrReadOnly
	}
	if c.estimate.status != domain.EstimatePending {
		return Ticket{}, fmt.Errorf("%w: estimate is %s", domain.ErrNotReady, c.estimate.status)
	}
	c.estimate.status = domain.EstimateLoading
	return Ticket{Generation: c.estimate.generation, Payload: estimate.BuildPayload(c.draft)}, nil
}

// CompleteEstimate applies a gateway answer. It reports false, and changes
// nothing, when the ticket belongs to an estimate screen the user has left.
func (c *Controller) CompleteEstimate(t Ticket, res *domain.EstimateResult, callErr error) bool {
	if c.screen != domain.ScreenEstimate ||
		c.estimate.generation != t.Generation ||
		c.estimate.status != domain.EstimateLoading {
		c.opts.Metrics.RecordStale()
		return false
	}
	if callErr != nil {
		c.estimate.status = domain.EstimateFailed
		c.estimate.err = "Estimation Error: " + estimate.Message(callErr)
		c.estimate.invalidInput = estimate.IsValidation(callErr)
		return true
	}
	if res == nil {
		res = &domain.EstimateResult{}
	}
	c.estimate.status = domain.EstimateReady
	c.estimate.result = res
	return true
}

func (c *Controller) requireReadyEstimate() error {
	if err := c.require(domain.ScreenEstimate); err != nil {
		return err
	}
	if c.estimate.status != domain.EstimateReady {
		return fmt.Errorf("%w: estimate is not ready", domain.ErrNotReady)
	}
	return nil
}

func (c *Controller) viewBreakdown() error {
	if err := c.requireReadyEstimate(); err != nil {
		return err
	}
	c.moveTo(domain.ScreenBreakdown)
	return nil
}

// upgradeDecision records the answer to "upgrade?". The answer may change
// until the project is saved; switching drops any signature in progress.
func (c *Controller) upgradeDecision(wants *bool) error {
	if err := c.requireReadyEstimate(); err != nil {
		return err
	}
	if wants == nil {
		return fmt.Errorf("%w: wants_upgrade is required", domain.ErrNotReady)
	}
	if c.gate.Saved() {
		return fmt.Errorf("%w: project already saved", domain.ErrNotReady)
	}
	if prev := c.estimate.wantsUpgrade; prev == nil || *prev != *wants {
		c.pad = signature.NewPad(0, 0)
		c.gate = signature.NewGate()
	}
	v := *wants
	c.estimate.wantsUpgrade = &v
	return nil
}

func (c *Controller) findSuggestion(tier string) (domain.UpgradeSuggestion, bool) {
	if c.estimate.result == nil {
		return domain.UpgradeSuggestion{}, false
	}
	for _, s := range c.estimate.result.UpgradeSuggestions {
		if strings.EqualFold(s.Tier, tier) {
			return s, true
		}
	}
	return domain.UpgradeSuggestion{}, false
}

// acceptUpgrade stores the chosen suggestion and starts the analysis delay.
func (c *Controller) acceptUpgrade(tier string) error {
	if err := c.requireReadyEstimate(); err != nil {
		return err
	}
	if c.estimate.wantsUpgrade == nil || !*c.estimate.wantsUpgrade {
		return fmt.Errorf("%w: choose to upgrade first", domain.ErrNotReady)
	}
	s, ok := c.findSuggestion(tier)
	if !ok {
		return fmt.Errorf("%w: no suggestion for tier %q", domain.ErrUnknownOption, tier)
	}
	c.tier = &tierSelection{suggestion: s, excluded: map[string]bool{}}
	c.analysisUntil = c.opts.Now().Add(c.opts.AnalysisDelay)
	c.moveTo(domain.ScreenAnalysisLoading)
	return nil
}

func (c *Controller) toggleFeature(id string) error {
	if err := c.require(domain.ScreenTierDetail); err != nil {
		return err
	}
	for _, f := range domain.FeaturesFor(c.tier.suggestion.Tier) {
		if f.ID == id {
			c.tier.excluded[id] = !c.tier.excluded[id]
			return nil
		}
	}
	return fmt.Errorf("%w: feature %q", domain.ErrUnknownOption, id)
}

// includedFeatures lists the tier features the user kept.
func (t *tierSelection) includedFeatures() []domain.TierFeature {
	var out []domain.TierFeature
	for _, f := range domain.FeaturesFor(t.suggestion.Tier) {
		if !t.excluded[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

// cost is the suggestion's upgrade cost less the weighted share of every
// excluded feature.
func (t *tierSelection) cost() float64 {
	feats := domain.FeaturesFor(t.suggestion.Tier)
	if len(feats) == 0 {
		return t.suggestion.UpgradeCost
	}
	var kept float64
	for _, f := range t.includedFeatures() {
		kept += f.Weight
	}
	return math.Round(t.suggestion.UpgradeCost * kept)
}

func (c *Controller) baseCost() float64 {
	if c.estimate.result == nil {
		return 0
	}
	return c.estimate.result.Breakdown.TotalCost
}

// orderUpgradeCost is the tier-detail cost when positive, otherwise the
// fallback uplift of the base total.
func (c *Controller) orderUpgradeCost() float64 {
	if c.tier == nil {
		return 0
	}
	if cost := c.tier.cost(); cost > 0 {
		return cost
	}
	return math.Round(c.baseCost() * domain.FallbackUplift(c.tier.suggestion.Tier))
}

// activeSignature returns the pad and gate of the screen that owns the
// finalize action.
func (c *Controller) activeSignature() (*signature.Pad, *signature.Gate, error) {
	switch c.screen {
	case domain.ScreenEstimate:
		if err := c.requireReadyEstimate(); err != nil {
			return nil, nil, err
		}
		if c.estimate.wantsUpgrade == nil || *c.estimate.wantsUpgrade {
			return nil, nil, fmt.Errorf("%w: sign after declining the upgrade", domain.ErrNotReady)
		}
		return c.pad, c.gate, nil
	case domain.ScreenOrderSummary:
		return c.orderPad, c.orderGate, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", domain.ErrWrongScreen, c.screen)
}

func (c *Controller) sign(stroke []signature.Point) error {
	pad, gate, err := c.activeSignature()
	if err != nil {
		return err
	}
	if gate.Saved() {
		return fmt.Errorf("%w: project already saved", domain.ErrNotReady)
	}
	return pad.Draw(stroke)
}

func (c *Controller) clearSignature() error {
	pad, gate, err := c.activeSignature()
	if err != nil {
		return err
	}
	if gate.Saved() {
		return fmt.Errorf("%w: project already saved", domain.ErrNotReady)
	}
	pad.Clear()
	return nil
}

func (c *Controller) agree(v *bool) error {
	_, gate, err := c.activeSignature()
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: agreed is required", domain.ErrNotReady)
	}
	gate.SetAgreed(*v)
	return nil
}

func (c *Controller) setClientName(name string) error {
	if _, _, err := c.activeSignature(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrNotReady)
	}
	c.draft.ClientName = name
	return nil
}
