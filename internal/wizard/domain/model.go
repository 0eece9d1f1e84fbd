package domain

import "strings"

type ProjectType string

const (
	ProjectDreamHouse  ProjectType = "dream-house"
	ProjectRentalHomes ProjectType = "rental-homes"
	ProjectCommercial  ProjectType = "commercial"
	ProjectVilla       ProjectType = "villa"
	ProjectInterior    ProjectType = "interior"
	ProjectExterior    ProjectType = "exterior"
)

var projectTypes = []ProjectType{
	ProjectDreamHouse, ProjectRentalHomes, ProjectCommercial,
	ProjectVilla, ProjectInterior, ProjectExterior,
}

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	for _, v := range projectTypes {
		if v == t {
			return true
		}
	}
	return false
}

type PlotSize string

const (
	PlotHalfSite   PlotSize = "half-site"
	PlotFullSite   PlotSize = "full-site"
	PlotDoubleSite PlotSize = "double-site"
)

func (p PlotSize) Valid() bool {
	return p == PlotHalfSite || p == PlotFullSite || p == PlotDoubleSite
}

// SiteType is the short form the estimator expects ("half", "full", "double").
func (p PlotSize) SiteType() string {
	switch p {
	case PlotDoubleSite:
		return "double"
	case PlotHalfSite:
		return "half"
	default:
		return "full"
	}
}

type Plan string

const (
	PlanBase    Plan = "base"
	PlanClassic Plan = "classic"
	PlanPremium Plan = "premium"
	PlanLuxury  Plan = "luxury"
)

// ParsePlan accepts plan ids and tier names in any case ("Premium" -> premium).
// Unknown values return ok=false.
func ParsePlan(s string) (Plan, bool) {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanBase:
		return PlanBase, true
	case PlanClassic:
		return PlanClassic, true
	case PlanPremium:
		return PlanPremium, true
	case PlanLuxury:
		return PlanLuxury, true
	}
	return "", false
}

// Tier is the display name used by the estimator's suggestions.
func (p Plan) Tier() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

type Interior string

const (
	InteriorNone           Interior = "none"
	InteriorBase           Interior = "base"
	InteriorSemiFurnished  Interior = "semi-furnished"
	InteriorFullyFurnished Interior = "fully-furnished"
)

func (i Interior) Valid() bool {
	switch i {
	case InteriorNone, InteriorBase, InteriorSemiFurnished, InteriorFullyFurnished:
		return true
	}
	return false
}

type Category string

const (
	CategoryFlooring   Category = "flooring"
	CategoryWalls      Category = "walls"
	CategoryElectrical Category = "electrical"
	CategoryPlumbing   Category = "plumbing"
	CategorySecurity   Category = "security"
)

// Categories lists upgrade categories in display order.
var Categories = []Category{
	CategoryFlooring, CategoryWalls, CategoryElectrical, CategoryPlumbing, CategorySecurity,
}

// Upgrades maps category to the selected option id. An empty value means
// the category was cleared.
type Upgrades map[Category]string

func (u Upgrades) Clone() Upgrades {
	out := make(Upgrades, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

type AdditionalRequirements struct {
	CompoundWall bool   `json:"compoundWall"`
	RainWater    bool   `json:"rainWater"`
	Notes        string `json:"notes,omitempty"`
}

// ProjectDraft is the record threaded through every wizard screen.
type ProjectDraft struct {
	ProjectType            ProjectType            `json:"projectType,omitempty"`
	PlotSize               PlotSize               `json:"plotSize,omitempty"`
	Dimensions             string                 `json:"dimensions,omitempty"`
	Floors                 string                 `json:"floors,omitempty"`
	Plan                   Plan                   `json:"plan,omitempty"`
	Answers                map[string]string      `json:"answers"`
	Upgrades               Upgrades               `json:"upgrades"`
	Interior               Interior               `json:"interior,omitempty"`
	AdditionalRequirements AdditionalRequirements `json:"additionalRequirements"`
	Signature              string                 `json:"signature,omitempty"`
	ClientName             string                 `json:"client_name,omitempty"`
}

// NewDraft returns an empty draft with initialized maps.
func NewDraft() ProjectDraft {
	return ProjectDraft{
		Answers:  map[string]string{},
		Upgrades: Upgrades{},
	}
}

// Clone deep-copies the draft so callers never share maps.
func (d ProjectDraft) Clone() ProjectDraft {
	out := d
	out.Answers = make(map[string]string, len(d.Answers))
	for k, v := range d.Answers {
		out.Answers[k] = v
	}
	out.Upgrades = d.Upgrades.Clone()
	return out
}

// EstimateResult is the estimator's response. Only the fields the wizard
// reads are typed; everything else rides along in Explanation.
type EstimateResult struct {
	Breakdown          Breakdown           `json:"breakdown"`
	UpgradeSuggestions []UpgradeSuggestion `json:"upgrade_suggestions"`
	Explanation        map[string]any      `json:"explanation,omitempty"`
}

type Breakdown struct {
	TotalCost             float64       `json:"total_cost"`
	UpgradesCost          float64       `json:"upgrades_cost,omitempty"`
	PinToPinDetails       []PinItem     `json:"pin_to_pin_details"`
	ActiveUpgradeFeatures []TierFeature `json:"active_upgrade_features,omitempty"`
}

type PinItem struct {
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
}

type UpgradeSuggestion struct {
	Tier        string  `json:"tier"`
	UpgradeCost float64 `json:"upgrade_cost"`
	Description string  `json:"description"`
}

type QuestionKind string

const (
	KindToggle           QuestionKind = "toggle"
	KindChoice           QuestionKind = "choice"
	KindChoiceWithCustom QuestionKind = "choice-with-custom"
)

// Question is one entry of the additional-questions screen.
type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Kind    QuestionKind `json:"kind"`
	Options []string     `json:"options"`
}

// CustomOption is the literal option that asks for a free-form answer.
const CustomOption = "Custom"

// Accepts reports whether answer is valid for the question. Free-form
// answers are accepted for choice-with-custom questions as long as they are
// non-empty and not the bare "Custom" marker.
func (q Question) Accepts(answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, CustomOption) {
		return false
	}
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return q.Kind == KindChoiceWithCustom
}
