package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Option is a selectable upgrade choice with its per-sqft price.
type Option struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PricePerSqft int    `json:"price_per_sqft"`
}

// UpgradeCatalog lists the options offered for every category.
var UpgradeCatalog = map[Category][]Option{
	CategoryFlooring: {
		{ID: "ceramic", Name: "Ceramic Tiles", PricePerSqft: 0},
		{ID: "granite", Name: "Granite Flooring", PricePerSqft: 120},
		{ID: "marble", Name: "Marble Flooring", PricePerSqft: 250},
		{ID: "italian-marble", Name: "Italian Marble", PricePerSqft: 450},
	},
	CategoryWalls: {
		{ID: "basic", Name: "Basic Paint", PricePerSqft: 0},
		{ID: "emulsion", Name: "Emulsion Paint", PricePerSqft: 40},
		{ID: "texture", Name: "Texture & Royal", PricePerSqft: 85},
	},
	CategoryElectrical: {
		{ID: "basic", Name: "Standard", PricePerSqft: 0},
		{ID: "branded", Name: "Premium Branded", PricePerSqft: 65},
		{ID: "smart", Name: "Home Automation", PricePerSqft: 180},
	},
	CategoryPlumbing: {
		{ID: "basic", Name: "Standard", PricePerSqft: 0},
		{ID: "branded", Name: "Premium Brand", PricePerSqft: 90},
		{ID: "luxury", Name: "Luxury Suite", PricePerSqft: 220},
	},
	CategorySecurity: {
		{ID: "basic", Name: "Basic Locks", PricePerSqft: 0},
		{ID: "advanced", Name: "Digital Security", PricePerSqft: 110},
		{ID: "premium", Name: "Smart Security", PricePerSqft: 250},
	},
}

// LookupOption finds an option of category by id.
func LookupOption(c Category, id string) (Option, bool) {
	for _, o := range UpgradeCatalog[c] {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// ValidCategory reports whether c is one of the upgrade categories.
func ValidCategory(c Category) bool {
	_, ok := UpgradeCatalog[c]
	return ok
}

// CustomChoice marks a free-form dimension or floor entry.
const CustomChoice = "custom"

var dimensionCatalog = map[PlotSize][]string{
	PlotHalfSite:   {"15x30", "15x40", "20x30"},
	PlotFullSite:   {"30x40", "30x50", "40x60"},
	PlotDoubleSite: {"60x40", "60x50", "80x60"},
}

// DimensionOptions returns the catalog dimensions for a plot size.
func DimensionOptions(p PlotSize) []string {
	return append([]string(nil), dimensionCatalog[p]...)
}

// PlotOptions returns the plot sizes offered for a project type. Dream
// houses are never built on a half site.
func PlotOptions(t ProjectType) []PlotSize {
	if t == ProjectDreamHouse {
		return []PlotSize{PlotFullSite, PlotDoubleSite}
	}
	return []PlotSize{PlotHalfSite, PlotFullSite, PlotDoubleSite}
}

// PlotAllowed reports whether p may be chosen for t.
func PlotAllowed(t ProjectType, p PlotSize) bool {
	for _, v := range PlotOptions(t) {
		if v == p {
			return true
		}
	}
	return false
}

// ResolveDimensions validates a dimension choice. A catalog value is returned
// as is; "custom" requires a positive numeric length and width and yields
// "LxW".
func ResolveDimensions(p PlotSize, choice, length, width string) (string, error) {
	if choice == CustomChoice {
		length, width = strings.TrimSpace(length), strings.TrimSpace(width)
		if length == "" || width == "" {
			return "", fmt.Errorf("%w: custom dimensions need length and width", ErrNotReady)
		}
		for _, v := range []string{length, width} {
			if n, err := strconv.ParseFloat(v, 64); err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
				return "", fmt.Errorf("%w: dimension %q is not a positive number", ErrUnknownOption, v)
			}
		}
		return length + "x" + width, nil
	}
	for _, d := range dimensionCatalog[p] {
		if d == choice {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: dimension %q for %s", ErrUnknownOption, choice, p)
}

// FloorOptions returns the floor tags offered for a project type.
func FloorOptions(t ProjectType) []string {
	switch t {
	case ProjectDreamHouse:
		return []string{"g+1", "g+2", CustomChoice}
	case ProjectRentalHomes:
		return []string{"g+1", "g+2", "g+3", CustomChoice}
	default:
		return []string{"duplex", "triplex", CustomChoice}
	}
}

// ResolveFloors validates a floor choice. "custom" requires a non-empty value.
func ResolveFloors(t ProjectType, choice, custom string) (string, error) {
	if choice == CustomChoice {
		custom = strings.TrimSpace(custom)
		if custom == "" {
			return "", fmt.Errorf("%w: custom floors need a value", ErrNotReady)
		}
		return custom, nil
	}
	for _, f := range FloorOptions(t) {
		if strings.EqualFold(f, choice) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: floors %q for %s", ErrUnknownOption, choice, t)
}

// InteriorOptions lists the interior packages offered on the interior screen.
var InteriorOptions = []Interior{InteriorBase, InteriorSemiFurnished, InteriorFullyFurnished}

// TierFeature is one weighted line of a tier's upgrade package.
type TierFeature struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Weight   float64 `json:"weight"`
}

// TierFeatures maps a tier name to its feature list. Weights per tier sum to 1.
var TierFeatures = map[string][]TierFeature{
	"Classic": {
		{ID: "c1", Category: "Flooring", Item: "Premium Granite Flooring", Weight: 0.40},
		{ID: "c2", Category: "Designer", Item: "Custom Finishes", Weight: 0.075},
		{ID: "c3", Category: "Joinery", Item: "Teak Wood Main Frame", Weight: 0.075},
		{ID: "c4", Category: "Electrical", Item: "Modular Upgrades", Weight: 0.075},
		{ID: "c5", Category: "Features", Item: "Premium Sanitaryware", Weight: 0.075},
		{ID: "c6", Category: "Kitchen", Item: "Granite Platform", Weight: 0.075},
		{ID: "c7", Category: "Windows", Item: "UPVC Windows", Weight: 0.075},
		{ID: "c8", Category: "Plumbing", Item: "CPVC/UPVC Piping", Weight: 0.075},
		{ID: "c9", Category: "Painting", Item: "Premium Emulsion", Weight: 0.075},
	},
	"Premium": {
		{ID: "p1", Category: "Flooring", Item: "Italian Marble & Granite Stairs", Weight: 0.40},
		{ID: "p2", Category: "Automation", Item: "Smart Security System", Weight: 0.05},
		{ID: "p3", Category: "Joinery", Item: "Full Teak Wood Main Door", Weight: 0.05},
		{ID: "p4", Category: "Walls", Item: "Royale Texture Finishes", Weight: 0.05},
		{ID: "p5", Category: "Sanitary", Item: "Kohler Premium Series", Weight: 0.05},
		{ID: "p6", Category: "Kitchen", Item: "Acrylic Modular Framework", Weight: 0.05},
		{ID: "p7", Category: "Electrical", Item: "Schneider Livia/Zencelo", Weight: 0.05},
		{ID: "p8", Category: "Windows", Item: "Premium UPVC Profiles", Weight: 0.05},
		{ID: "p9", Category: "Plumbing", Item: "FlowGuard CPVC", Weight: 0.05},
		{ID: "p10", Category: "Ceiling", Item: "Gypsum False Ceiling", Weight: 0.05},
		{ID: "p11", Category: "Railing", Item: "SS 304 Glass Railing", Weight: 0.05},
		{ID: "p12", Category: "Bathroom", Item: "Glass Shower Partitions", Weight: 0.05},
		{ID: "p13", Category: "Exterior", Item: "Texture Paint & Cladding", Weight: 0.05},
	},
	"Luxury": {
		{ID: "l1", Category: "Flooring", Item: "Italian Statuario Marble", Weight: 0.40},
		{ID: "l2", Category: "Automation", Item: "Full Home Ecosystem", Weight: 0.0375},
		{ID: "l3", Category: "Walls", Item: "PU Finish & Paneling", Weight: 0.0375},
		{ID: "l4", Category: "Kitchen", Item: "German Gourmet Suite", Weight: 0.0375},
		{ID: "l5", Category: "Sanitary", Item: "Automated Wellness", Weight: 0.0375},
		{ID: "l6", Category: "Joinery", Item: "8ft Grand Teak Entrance", Weight: 0.0375},
		{ID: "l7", Category: "Windows", Item: "Schuco Aluminium Systems", Weight: 0.0375},
		{ID: "l8", Category: "HVAC", Item: "VRV/VRF AC Provisioning", Weight: 0.0375},
		{ID: "l9", Category: "Electrical", Item: "Touch Automation Switches", Weight: 0.0375},
		{ID: "l10", Category: "Plumbing", Item: "Grohe Thermostatic", Weight: 0.0375},
		{ID: "l11", Category: "Ceiling", Item: "Designer Veneer Ceiling", Weight: 0.0375},
		{ID: "l12", Category: "Lighting", Item: "Magnetic Track Lights", Weight: 0.0375},
		{ID: "l13", Category: "Security", Item: "Biometric & Perimeter", Weight: 0.0375},
		{ID: "l14", Category: "Landscape", Item: "Vertical Gardens & Deck", Weight: 0.0375},
		{ID: "l15", Category: "Fabrication", Item: "CNC Laser Cut Gates", Weight: 0.0375},
		{ID: "l16", Category: "Exterior", Item: "HPL & Stone Facade", Weight: 0.0375},
		{ID: "l17", Category: "Water", Item: "Pressure & Softener", Weight: 0.0375},
	},
	"Luxury Plus": {
		{ID: "lp1", Category: "Flooring", Item: "Imported Botticino Marble", Weight: 0.40},
		{ID: "lp2", Category: "Automation", Item: "Full IoT Smart Ecosystem", Weight: 0.05},
		{ID: "lp3", Category: "Cinema", Item: "Private Home Cinema", Weight: 0.05},
		{ID: "lp4", Category: "Kitchen", Item: "Gourmet Kitchen Suite", Weight: 0.05},
		{ID: "lp5", Category: "Wellness", Item: "Spa-Grade Wellness Hub", Weight: 0.05},
		{ID: "lp6", Category: "Security", Item: "Biometric & Surveillance Hub", Weight: 0.05},
		{ID: "lp7", Category: "Energy", Item: "Solar Hybrid System", Weight: 0.05},
		{ID: "lp8", Category: "Elevator", Item: "Panoramic Glass Elevator", Weight: 0.05},
		{ID: "lp9", Category: "Workspace", Item: "Soundproof Study", Weight: 0.05},
		{ID: "lp10", Category: "HVAC", Item: "Multi-Zone Climate Control", Weight: 0.05},
		{ID: "lp11", Category: "Entrance", Item: "Solid Rosewood Carvings", Weight: 0.05},
		{ID: "lp12", Category: "Comfort", Item: "Underfloor Heating/Cooling", Weight: 0.05},
		{ID: "lp13", Category: "Lifestyle", Item: "Professional Gym & Yoga", Weight: 0.05},
	},
}

// FeaturesFor returns the feature list of a tier, matching the name
// case-insensitively. Unknown tiers have no features.
func FeaturesFor(tier string) []TierFeature {
	for name, feats := range TierFeatures {
		if strings.EqualFold(name, tier) {
			return feats
		}
	}
	return nil
}

// fallbackUplift is applied to the base total when no tier cost is known.
var fallbackUplift = map[Plan]float64{
	PlanClassic: 0.18,
	PlanPremium: 0.32,
	PlanLuxury:  0.59,
}

// FallbackUplift returns the fraction of the base total charged for upgrading
// to tier when the tier-detail cost is not positive.
func FallbackUplift(tier string) float64 {
	p, ok := ParsePlan(tier)
	if !ok {
		return 0
	}
	return fallbackUplift[p]
}
