package resolver

import "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"

var planDefaults = map[domain.Plan]domain.Upgrades{
	domain.PlanBase: {
		domain.CategoryFlooring:   "ceramic",
		domain.CategoryWalls:      "basic",
		domain.CategoryElectrical: "basic",
		domain.CategoryPlumbing:   "basic",
		domain.CategorySecurity:   "basic",
	},
	domain.PlanClassic: {
		domain.CategoryFlooring:   "granite",
		domain.CategoryWalls:      "emulsion",
		domain.CategoryElectrical: "branded",
		domain.CategoryPlumbing:   "branded",
		domain.CategorySecurity:   "basic",
	},
	domain.PlanPremium: {
		domain.CategoryFlooring:   "marble",
		domain.CategoryWalls:      "texture",
		domain.CategoryElectrical: "branded",
		domain.CategoryPlumbing:   "branded",
		domain.CategorySecurity:   "advanced",
	},
	domain.PlanLuxury: {
		domain.CategoryFlooring:   "italian-marble",
		domain.CategoryWalls:      "texture",
		domain.CategoryElectrical: "smart",
		domain.CategoryPlumbing:   "luxury",
		domain.CategorySecurity:   "premium",
	},
}

// ResolveDefaults returns the baseline upgrade selection for a plan.
// Unknown or missing plans fall back to base. The result is a fresh map.
func ResolveDefaults(plan domain.Plan) domain.Upgrades {
	d, ok := planDefaults[plan]
	if !ok {
		d = planDefaults[domain.PlanBase]
	}
	return d.Clone()
}
