package resolver

import (
	"fmt"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// InitUpgrades seeds the plan defaults and overlays existing selections when
// a draft is resumed. Unknown categories or options in existing are dropped.
func InitUpgrades(plan domain.Plan, existing domain.Upgrades) domain.Upgrades {
	out := ResolveDefaults(plan)
	for c, v := range existing {
		if !domain.ValidCategory(c) {
			continue
		}
		if v == "" {
			out[c] = ""
			continue
		}
		if _, ok := domain.LookupOption(c, v); ok {
			out[c] = v
		}
	}
	return out
}

// ToggleSelection returns a new mapping with optionID toggled for category.
// Selecting an unselected option sets it. Selecting the current option
// reverts to the plan default, or clears the category when the default was
// the current value. current is never modified.
func ToggleSelection(current domain.Upgrades, plan domain.Plan, category domain.Category, optionID string) (domain.Upgrades, error) {
	if !domain.ValidCategory(category) {
		return current, fmt.Errorf("%w: category %q", domain.ErrUnknownOption, category)
	}
	if _, ok := domain.LookupOption(category, optionID); !ok {
		return current, fmt.Errorf("%w: %s option %q", domain.ErrUnknownOption, category, optionID)
	}

	next := current.Clone()
	if current[category] != optionID {
		next[category] = optionID
		return next, nil
	}

	def := ResolveDefaults(plan)[category]
	if def == optionID {
		next[category] = ""
	} else {
		next[category] = def
	}
	return next, nil
}

// ActiveCategories lists, in display order, the categories whose selection
// differs from the plan default.
func ActiveCategories(m domain.Upgrades, plan domain.Plan) []domain.Category {
	defaults := ResolveDefaults(plan)
	var out []domain.Category
	for _, c := range domain.Categories {
		if m[c] != defaults[c] {
			out = append(out, c)
		}
	}
	return out
}

// CountActiveUpgrades is the number of categories that differ from the plan
// default. Every summary shown to the user derives its count from here.
func CountActiveUpgrades(m domain.Upgrades, plan domain.Plan) int {
	return len(ActiveCategories(m, plan))
}

// UpgradeLine is one row of the upgrade snapshot summary.
type UpgradeLine struct {
	Category     domain.Category `json:"category"`
	Selected     string          `json:"selected"`
	Default      string          `json:"default"`
	PricePerSqft int             `json:"price_per_sqft"`
	Active       bool            `json:"active"`
}

// Snapshot is the upgrade summary rendered on the plan and order screens.
type Snapshot struct {
	Lines       []UpgradeLine `json:"lines"`
	ActiveCount int           `json:"active_count"`
}

// Summarize builds the snapshot summary for m under plan.
func Summarize(m domain.Upgrades, plan domain.Plan) Snapshot {
	defaults := ResolveDefaults(plan)
	snap := Snapshot{ActiveCount: CountActiveUpgrades(m, plan)}
	for _, c := range domain.Categories {
		line := UpgradeLine{Category: c, Selected: m[c], Default: defaults[c], Active: m[c] != defaults[c]}
		if o, ok := domain.LookupOption(c, m[c]); ok {
			line.PricePerSqft = o.PricePerSqft
		}
		snap.Lines = append(snap.Lines, line)
	}
	return snap
}
