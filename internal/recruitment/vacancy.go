package recruitment

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// GlobalZone marks a vacancy open to any timezone. It bypasses compatibility
// scoring entirely and is treated as fully compatible.
const GlobalZone = "Global"

// Vacancy urgency tags.
const (
	UrgencyLow  = "low"
	UrgencyHigh = "high"
)

type Vacancy struct {
	Title     string    `json:"title" yaml:"title" validate:"required"`
	Stack     []string  `json:"stack" yaml:"stack" validate:"required,min=1"`
	Modality  string    `json:"modality" yaml:"modality"`
	Zone      string    `json:"zone" yaml:"zone"`
	Urgency   string    `json:"urgency" yaml:"urgency" validate:"omitempty,oneof=low high"`
	Locations Locations `json:"location" yaml:"location"`
}

func (v *Vacancy) IsGlobal() bool {
	return v.Zone == GlobalZone
}

// PrimaryLocation returns the first listed location, or an empty string.
func (v *Vacancy) PrimaryLocation() string {
	if len(v.Locations) == 0 {
		return ""
	}
	return v.Locations[0]
}

// Locations accepts either a single string or a list of strings in both JSON
// and YAML, since vacancy feeds use both shapes.
type Locations []string

func (l *Locations) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = Locations{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("location must be a string or a list of strings: %w", err)
	}
	*l = Locations(many)
	return nil
}

func (l *Locations) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*l = Locations{single}
		return nil
	}

	var many []string
	if err := node.Decode(&many); err != nil {
		return fmt.Errorf("location must be a string or a list of strings: %w", err)
	}
	*l = Locations(many)
	return nil
}

type Vacancies struct {
	Items []*Vacancy
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) FindByTitle(title string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.Title == title {
			return vacancy
		}
	}
	return nil
}

func (v *Vacancies) Titles() []string {
	titles := make([]string, 0, len(v.Items))
	for _, vacancy := range v.Items {
		titles = append(titles, vacancy.Title)
	}
	return titles
}
