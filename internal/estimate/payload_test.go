package estimate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

func TestNormalizeFloors(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"G+2", 3},
		{"g+1", 2},
		{"g+3", 4},
		{"", 1},
		{"5", 5},
		{"4 floors", 4},
		{"0", 1},
		{"duplex", 1},
		{"  g+10 ", 11},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFloors(tt.in))
		})
	}
}

func TestBuildPayload(t *testing.T) {
	d := domain.NewDraft()
	d.ProjectType = domain.ProjectDreamHouse
	d.PlotSize = domain.PlotDoubleSite
	d.Dimensions = "60x40"
	d.Floors = "g+2"
	d.Plan = domain.PlanPremium
	d.Answers["lift"] = "Yes"
	d.Upgrades[domain.CategoryFlooring] = "marble"
	d.Interior = domain.InteriorBase
	d.AdditionalRequirements = domain.AdditionalRequirements{CompoundWall: true}

	p := BuildPayload(d)
	assert.Equal(t, "dream-house", p.ProjectType)
	assert.Equal(t, "60x40", p.PlotSize)
	assert.Equal(t, 3, p.Floors)
	assert.Equal(t, DefaultZone, p.Zone)
	assert.Equal(t, "premium", p.SelectedTier)
	assert.Equal(t, "double", p.SiteType)
	assert.True(t, p.LiftRequired)
	assert.True(t, p.GeneratePDF)
	require.NotNil(t, p.Interior)
	assert.Equal(t, "base", *p.Interior)
	assert.True(t, p.CompoundWall)
	assert.False(t, p.RainWaterHarvesting)
}

func TestBuildPayload_Fallbacks(t *testing.T) {
	d := domain.ProjectDraft{ProjectType: domain.ProjectRentalHomes, PlotSize: domain.PlotHalfSite}

	p := BuildPayload(d)
	assert.Equal(t, "half-site", p.PlotSize, "plot size used when dimensions are missing")
	assert.Equal(t, "Classic", p.SelectedTier)
	assert.Equal(t, "half", p.SiteType)
	assert.Equal(t, 1, p.Floors)
	assert.False(t, p.LiftRequired)
	assert.Nil(t, p.Interior)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "interior")
	assert.Nil(t, m["interior"])
	assert.Equal(t, map[string]any{}, m["family_details"])
}
