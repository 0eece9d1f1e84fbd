package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	wizard "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// Floors is a floor tag. Older clients sometimes stored a bare number.
type Floors string

func (f *Floors) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = Floors(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("floors must be a string or number: %w", err)
	}
	*f = Floors(n.String())
	return nil
}

// legacyFields are keys written by unversioned records.
type legacyFields struct {
	ProjectID string `json:"project_id"`
}

// Decode parses one stored record and upgrades it to the current schema.
// Unversioned records get plan classic, empty maps, source local, a
// saved_at derived from the id, and their old project_id as reference.
func Decode(raw []byte) (SavedProject, error) {
	var p SavedProject
	if err := json.Unmarshal(raw, &p); err != nil {
		return SavedProject{}, fmt.Errorf("failed to decode saved project: %w", err)
	}
	if p.SchemaVersion > SchemaVersion {
		return SavedProject{}, fmt.Errorf("%w: %d", ErrUnsupportedSchema, p.SchemaVersion)
	}

	if p.SchemaVersion == 0 {
		var legacy legacyFields
		_ = json.Unmarshal(raw, &legacy)
		upgradeV0(&p, legacy)
	}
	fillDefaults(&p)
	return p, nil
}

func upgradeV0(p *SavedProject, legacy legacyFields) {
	if p.Plan == "" {
		p.Plan = string(wizard.PlanClassic)
	}
	if p.Source == "" {
		p.Source = SourceLocal
	}
	if p.SavedAt.IsZero() && p.ID > 0 {
		p.SavedAt = time.UnixMilli(p.ID).UTC()
	}
	if p.ProjectRef == "" && legacy.ProjectID != "" {
		p.ProjectRef = legacy.ProjectID
	}
	// Old records stored "LxW" in plot_size.
	if p.PlotSize != "" && !p.PlotSize.Valid() {
		if p.Dimensions == "" && strings.Contains(string(p.PlotSize), "x") {
			p.Dimensions = string(p.PlotSize)
		}
		p.PlotSize = ""
	}
	p.SchemaVersion = SchemaVersion
}

func fillDefaults(p *SavedProject) {
	if p.Answers == nil {
		p.Answers = map[string]string{}
	}
	if p.Upgrades == nil {
		p.Upgrades = wizard.Upgrades{}
	}
	if p.ClientName == "" {
		p.ClientName = DefaultClientName
	}
	if p.ProjectRef == "" && p.ID > 0 {
		p.ProjectRef = ProjectRef(time.UnixMilli(p.ID))
	}
	if p.TotalCost == 0 {
		p.TotalCost = p.Breakdown.TotalCost
	}
}

// DecodeList parses a stored JSON array, upgrading every element.
func DecodeList(raw []byte) ([]SavedProject, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode saved projects: %w", err)
	}
	out := make([]SavedProject, 0, len(items))
	for _, item := range items {
		p, err := Decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
