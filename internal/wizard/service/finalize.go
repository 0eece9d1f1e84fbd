package service

import (
	"context"
	"fmt"
	"strings"

	saved "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/signature"
)

// Saver persists a finalized project for an owner.
type Saver interface {
	Save(ctx context.Context, owner string, p saved.SavedProject) (saved.SavedProject, error)
}

// flatten turns the draft and the current estimate into a saved project.
func (c *Controller) flatten(sig string) saved.SavedProject {
	d := c.draft
	p := saved.SavedProject{
		ClientName:             d.ClientName,
		ProjectType:            d.ProjectType,
		PlotSize:               d.PlotSize,
		Dimensions:             d.Dimensions,
		Floors:                 saved.Floors(d.Floors),
		Plan:                   string(d.Plan),
		Answers:                d.Clone().Answers,
		Upgrades:               d.Upgrades.Clone(),
		Interior:               d.Interior,
		AdditionalRequirements: d.AdditionalRequirements,
		TotalCost:              c.baseCost(),
		Signature:              sig,
	}
	if p.Plan == "" {
		p.Plan = string(domain.PlanClassic)
	}
	if c.estimate.result != nil {
		p.Breakdown = c.estimate.result.Breakdown
		p.Explanation = c.estimate.result.Explanation
	}
	if c.screen == domain.ScreenOrderSummary && c.tier != nil {
		p.Plan = tierPlan(c.tier.suggestion.Tier)
		p.UpgradesCost = c.orderUpgradeCost()
		p.Breakdown.UpgradesCost = p.UpgradesCost
		p.Breakdown.ActiveUpgradeFeatures = c.tier.includedFeatures()
	}
	return p
}

// tierPlan stores a tier under its plan name when it has one.
func tierPlan(tier string) string {
	if plan, ok := domain.ParsePlan(tier); ok {
		return string(plan)
	}
	return strings.ToLower(tier)
}

// Finalize commits the signed draft through saver. The gate admits exactly
// one commit per draft instance; a failed save reopens it and keeps the
// draft. Finalizing from the estimate screen stays there in the saved
// state; finalizing the order summary moves to the saved-projects list.
func (c *Controller) Finalize(ctx context.Context, saver Saver, owner string) (saved.SavedProject, error) {
	c.Advance(c.opts.Now())
	if c.readOnly {
		return saved.SavedProject{}, domain.ErrReadOnly
	}
	if c.committed {
		return saved.SavedProject{}, fmt.Errorf("%w: project already saved", domain.ErrNotReady)
	}
	pad, gate, err := c.activeSignature()
	if err != nil {
		return saved.SavedProject{}, err
	}
	sig, err := gate.Commit(pad)
	if err != nil {
		return saved.SavedProject{}, err
	}

	rec, err := saver.Save(ctx, owner, c.flatten(sig))
	if err != nil {
		gate.Rollback()
		return saved.SavedProject{}, fmt.Errorf("failed to save project: %w", err)
	}

	if c.screen == domain.ScreenOrderSummary {
		c.reset()
		c.moveTo(domain.ScreenSaved)
	} else {
		c.committed = true
	}
	c.record = &rec
	return rec, nil
}

// Restore opens a saved project read-only on the estimate screen. The
// stored totals and signature are shown as they were; the gateway is not
// called again.
func (c *Controller) Restore(p saved.SavedProject) error {
	c.Advance(c.opts.Now())
	if err := c.require(domain.ScreenSaved); err != nil {
		return err
	}

	pad := signature.NewPad(0, 0)
	if err := pad.Load(p.Signature); err != nil {
		return err
	}

	c.reset()
	c.pad = pad
	c.draft = p.Draft()
	c.readOnly = true
	c.generations++
	c.previous = domain.ScreenSaved

	breakdown := p.Breakdown
	if breakdown.TotalCost == 0 {
		breakdown.TotalCost = p.TotalCost
	}
	declined := false
	c.estimate = estimateState{
		generation:   c.generations,
		status:       domain.EstimateReady,
		result:       &domain.EstimateResult{Breakdown: breakdown, Explanation: p.Explanation},
		wantsUpgrade: &declined,
	}
	c.gate.SetAgreed(true)
	rec := p
	c.record = &rec
	c.moveTo(domain.ScreenEstimate)
	return nil
}

// PDFRecord returns the flattened project the PDF endpoint renders: the
// stored record when one exists, else the live draft with its estimate.
func (c *Controller) PDFRecord() (saved.SavedProject, error) {
	c.Advance(c.opts.Now())
	if c.record != nil {
		return *c.record, nil
	}
	if c.estimate.status != domain.EstimateReady {
		return saved.SavedProject{}, fmt.Errorf("%w: no estimate to render", domain.ErrNotReady)
	}
	pad := c.pad
	if c.screen == domain.ScreenOrderSummary {
		pad = c.orderPad
	}
	return c.flatten(pad.Snapshot()), nil
}
