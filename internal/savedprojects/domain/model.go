package domain

import (
	"fmt"
	"sort"
	"time"

	wizard "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// SchemaVersion is written on every record saved by this service.
const SchemaVersion = 1

// Record sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// DefaultClientName is used until the user renames a record.
const DefaultClientName = "Client"

// SavedProject is a finalized draft with its estimate. Records are created on
// finalize, renamed at most, and deleted by id.
type SavedProject struct {
	SchemaVersion          int                           `json:"schema_version"`
	ID                     int64                         `json:"id"`
	SavedAt                time.Time                     `json:"saved_at"`
	Source                 string                        `json:"source"`
	ProjectRef             string                        `json:"project_ref"`
	ClientName             string                        `json:"client_name"`
	ProjectType            wizard.ProjectType            `json:"project_type"`
	PlotSize               wizard.PlotSize               `json:"plot_size,omitempty"`
	Dimensions             string                        `json:"dimensions,omitempty"`
	Floors                 Floors                        `json:"floors"`
	Plan                   string                        `json:"plan"`
	Answers                map[string]string             `json:"answers"`
	Upgrades               wizard.Upgrades               `json:"upgrades"`
	Interior               wizard.Interior               `json:"interior,omitempty"`
	AdditionalRequirements wizard.AdditionalRequirements `json:"additionalRequirements"`
	Breakdown              wizard.Breakdown              `json:"breakdown"`
	Explanation            map[string]any                `json:"explanation,omitempty"`
	TotalCost              float64                       `json:"total_cost"`
	UpgradesCost           float64                       `json:"upgrades_cost"`
	Signature              string                        `json:"signature,omitempty"`
	GeneratedAt            string                        `json:"generated_at,omitempty"`
}

// ProjectRef formats the human-facing reference "AI-PNR-<year>-<last 6 digits
// of the millisecond timestamp>".
func ProjectRef(t time.Time) string {
	ms := t.UnixMilli()
	return fmt.Sprintf("AI-PNR-%d-%06d", t.Year(), ms%1_000_000)
}

// Stamp fills the identity fields of a record about to be appended.
func (p *SavedProject) Stamp(now time.Time) {
	p.SchemaVersion = SchemaVersion
	p.ID = now.UnixMilli()
	p.SavedAt = now.UTC()
	if p.ProjectRef == "" {
		p.ProjectRef = ProjectRef(now)
	}
	if p.ClientName == "" {
		p.ClientName = DefaultClientName
	}
	if p.Source == "" {
		p.Source = SourceLocal
	}
	if p.GeneratedAt == "" {
		p.GeneratedAt = now.Format("02 Jan 2006")
	}
}

// Draft restores the wizard draft a record was saved from.
func (p SavedProject) Draft() wizard.ProjectDraft {
	d := wizard.NewDraft()
	d.ProjectType = p.ProjectType
	d.PlotSize = p.PlotSize
	d.Dimensions = p.Dimensions
	d.Floors = string(p.Floors)
	if plan, ok := wizard.ParsePlan(p.Plan); ok {
		d.Plan = plan
	}
	for k, v := range p.Answers {
		d.Answers[k] = v
	}
	for k, v := range p.Upgrades {
		d.Upgrades[k] = v
	}
	d.Interior = p.Interior
	d.AdditionalRequirements = p.AdditionalRequirements
	d.Signature = p.Signature
	d.ClientName = p.ClientName
	return d
}

// SortBySavedAtDesc orders records newest first. Ties keep the higher id first.
func SortBySavedAtDesc(list []SavedProject) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SavedAt.Equal(list[j].SavedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].SavedAt.After(list[j].SavedAt)
	})
}
