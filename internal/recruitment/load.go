package recruitment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// LoadCandidates reads candidate profiles from a JSON file and validates the
// shape of every record. A malformed record fails the whole load so a missing
// field can never turn into a silent zero score later.
func LoadCandidates(path string) (*Candidates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate profiles: %w", err)
	}

	var items []*Candidate
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing candidate profiles %q: %w", path, err)
	}

	for i, candidate := range items {
		if err := validate.Struct(candidate); err != nil {
			return nil, fmt.Errorf("candidate profile %d (%s): %w", i, candidate.Name, err)
		}
	}

	return &Candidates{Items: items}, nil
}

// LoadVacancies reads vacancies from a YAML file and validates every record.
func LoadVacancies(path string) (*Vacancies, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vacancies: %w", err)
	}

	var items []*Vacancy
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing vacancies %q: %w", path, err)
	}

	for i, vacancy := range items {
		if err := validate.Struct(vacancy); err != nil {
			return nil, fmt.Errorf("vacancy %d (%s): %w", i, vacancy.Title, err)
		}
	}

	return &Vacancies{Items: items}, nil
}

// LoadRecruiters reads the recruiter pool from a JSON file and validates every record.
func LoadRecruiters(path string) (*Recruiters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recruiters: %w", err)
	}

	var items []*Recruiter
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing recruiters %q: %w", path, err)
	}

	for i, recruiter := range items {
		if err := validate.Struct(recruiter); err != nil {
			return nil, fmt.Errorf("recruiter %d (%s): %w", i, recruiter.ID, err)
		}
	}

	return &Recruiters{Items: items}, nil
}
