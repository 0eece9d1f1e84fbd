package estimate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// DefaultZone is sent when the draft carries no pricing zone.
const DefaultZone = "Zone 1"

// Payload is the body of POST {base}/estimate.
type Payload struct {
	ProjectType         string            `json:"project_type"`
	PlotSize            string            `json:"plot_size"`
	Floors              int               `json:"floors"`
	Zone                string            `json:"zone"`
	SelectedTier        string            `json:"selected_tier"`
	SiteType            string            `json:"site_type"`
	FamilyDetails       map[string]string `json:"family_details"`
	LiftRequired        bool              `json:"lift_required"`
	GeneratePDF         bool              `json:"generate_pdf"`
	Upgrades            domain.Upgrades   `json:"upgrades"`
	Interior            *string           `json:"interior"`
	Dimensions          string            `json:"dimensions"`
	CompoundWall        bool              `json:"compound_wall"`
	RainWaterHarvesting bool              `json:"rain_water_harvesting"`
}

var groundPlus = regexp.MustCompile(`g\+(\d+)`)

// NormalizeFloors converts a floor tag into a storey count: "g+N" is N+1,
// plain numbers are taken as is, and anything else counts as one floor.
func NormalizeFloors(f string) int {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "" {
		return 1
	}
	if m := groundPlus.FindStringSubmatch(f); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n + 1
		}
	}
	if n, ok := leadingInt(f); ok && n != 0 {
		return n
	}
	return 1
}

// leadingInt parses the leading decimal digits of s, with an optional sign.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// BuildPayload assembles the estimate request from a draft.
func BuildPayload(d domain.ProjectDraft) Payload {
	plotSize := d.Dimensions
	if plotSize == "" {
		plotSize = string(d.PlotSize)
	}

	tier := string(d.Plan)
	if tier == "" {
		tier = "Classic"
	}

	answers := d.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	upgrades := d.Upgrades
	if upgrades == nil {
		upgrades = domain.Upgrades{}
	}

	var interior *string
	if d.Interior != "" {
		v := string(d.Interior)
		interior = &v
	}

	return Payload{
		ProjectType:         string(d.ProjectType),
		PlotSize:            plotSize,
		Floors:              NormalizeFloors(d.Floors),
		Zone:                DefaultZone,
		SelectedTier:        tier,
		SiteType:            d.PlotSize.SiteType(),
		FamilyDetails:       answers,
		LiftRequired:        answers["lift"] == "Yes",
		GeneratePDF:         true,
		Upgrades:            upgrades,
		Interior:            interior,
		Dimensions:          d.Dimensions,
		CompoundWall:        d.AdditionalRequirements.CompoundWall,
		RainWaterHarvesting: d.AdditionalRequirements.RainWater,
	}
}
