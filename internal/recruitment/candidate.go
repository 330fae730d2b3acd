package recruitment

// Emotional state labels produced by the interview collaborators.
const (
	EmotionPositive = "Positive"
	EmotionNeutral  = "Neutral"
	EmotionNegative = "Negative"
)

// Candidate is a profile produced by an external generator. The engine never
// mutates it; uniqueness is (name, vacancy title), not name alone.
type Candidate struct {
	Name              string   `json:"name" validate:"required"`
	Stack             []string `json:"stack" validate:"required,min=1"`
	ExperienceYears   int      `json:"experience_years" validate:"gte=0"`
	EmotionalState    string   `json:"emotional_state" validate:"required,oneof=Positive Neutral Negative"`
	PreferredModality string   `json:"preferred_modality"`
	Zone              string   `json:"zone"`
	Location          string   `json:"location"`
	IssueCount        int      `json:"issue_count" validate:"gte=0"`
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByName(name string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		names = append(names, candidate.Name)
	}
	return names
}
