package resolver

import "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"

// Question ids shared between the question sets and the forced defaults.
const (
	QFamilySize   = "family-size"
	QGrandparents = "grandparents"
	QChildren     = "children"
	QBedrooms     = "bedrooms"
	QLift         = "lift"
	QTotalMembers = "total-members"
	QParking      = "parking"
)

var yesNo = []string{"Yes", "No"}

func choiceWithCustom(id, prompt string, opts ...string) domain.Question {
	return domain.Question{
		ID:      id,
		Prompt:  prompt,
		Kind:    domain.KindChoiceWithCustom,
		Options: append(opts, domain.CustomOption),
	}
}

func toggle(id, prompt string) domain.Question {
	return domain.Question{ID: id, Prompt: prompt, Kind: domain.KindToggle, Options: append([]string(nil), yesNo...)}
}

// ResolveQuestions returns the ordered additional questions for a project.
func ResolveQuestions(t domain.ProjectType, p domain.PlotSize) []domain.Question {
	switch t {
	case domain.ProjectDreamHouse:
		return []domain.Question{
			choiceWithCustom(QFamilySize, "What is your family size?", "1", "2", "3", "4"),
			toggle(QGrandparents, "Grandparents living with you?"),
			choiceWithCustom(QChildren, "How many children do you have?", "1", "2", "3"),
			choiceWithCustom(QBedrooms, "How many bedrooms do you need?", "3", "4", "5"),
			toggle(QLift, "Do you need a lift/elevator?"),
		}
	case domain.ProjectRentalHomes:
		qs := []domain.Question{
			choiceWithCustom(QTotalMembers, "How many members do you have?", "2", "4", "6", "8"),
			toggle(QParking, "Ground floor for parking?"),
		}
		if p == domain.PlotDoubleSite {
			qs = append(qs,
				domain.Question{ID: QBedrooms, Prompt: "Number of BHK for Units?", Kind: domain.KindChoice, Options: []string{"3", "4"}},
				toggle(QLift, "Do you need a lift/elevator?"),
			)
		}
		return qs
	default:
		return []domain.Question{
			choiceWithCustom(QFamilySize, "What is your family size?", "1", "2", "3", "4"),
			choiceWithCustom(QBedrooms, "How many bedrooms do you need?", "3", "4", "5"),
		}
	}
}

// ApplyForcedDefaults returns a copy of answers with the rental-home
// defaults applied. Half and full sites always overwrite the forced keys;
// double sites only fill them while bedrooms is still unanswered.
func ApplyForcedDefaults(t domain.ProjectType, p domain.PlotSize, answers map[string]string) map[string]string {
	out := make(map[string]string, len(answers)+4)
	for k, v := range answers {
		out[k] = v
	}
	if t != domain.ProjectRentalHomes {
		return out
	}

	var bedrooms string
	switch p {
	case domain.PlotHalfSite:
		bedrooms = "1"
	case domain.PlotFullSite:
		bedrooms = "3"
	case domain.PlotDoubleSite:
		if out[QBedrooms] != "" {
			return out
		}
		bedrooms = "3"
	default:
		return out
	}

	out[QBedrooms] = bedrooms
	out[QLift] = "No"
	out[QGrandparents] = "No"
	out[QChildren] = "0"
	return out
}

// AllAnswered reports whether every question has an acceptable answer.
func AllAnswered(questions []domain.Question, answers map[string]string) bool {
	for _, q := range questions {
		if !q.Accepts(answers[q.ID]) {
			return false
		}
	}
	return true
}

// FindQuestion looks up a question by id.
func FindQuestion(questions []domain.Question, id string) (domain.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}
