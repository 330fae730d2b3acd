// Package filtering selects and ranks annotated candidate records.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

// Filter represents a single filtering step applied to candidate records.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, records *recruitment.FinalRecords) (*recruitment.FinalRecords, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the thresholds consumed by the filters and the
// prioritization weights. Defaults mirror the documented formula constants.
type Config struct {
	TimezoneThreshold float64 `mapstructure:"timezone-threshold"`
	DesiredEmotion    string  `mapstructure:"desired-emotion"`
	MaxIssues         int     `mapstructure:"max-issues"`
	MinMatchScore     float64 `mapstructure:"min-match-score"`

	PositiveBonus float64 `mapstructure:"positive-bonus"`
	IssuePenalty  float64 `mapstructure:"issue-penalty"`

	// Potential-bucket boundaries for rejected-candidate categorization.
	PotentialMinTimezone float64 `mapstructure:"potential-min-timezone"`
	PotentialMaxIssues   int     `mapstructure:"potential-max-issues"`
}

func DefaultConfig() *Config {
	return &Config{
		TimezoneThreshold:    70,
		DesiredEmotion:       recruitment.EmotionPositive,
		MaxIssues:            3,
		MinMatchScore:        0.5,
		PositiveBonus:        10,
		IssuePenalty:         5,
		PotentialMinTimezone: 60,
		PotentialMaxIssues:   4,
	}
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// DefaultSteps returns the composed pipeline in its fixed order: timezone,
// emotional state, issue count. The match-score step exists standalone but is
// not part of the default composition.
func DefaultSteps() []Filter {
	return []Filter{
		NewTimezoneScore(),
		NewEmotionalState(),
		NewIssueCount(),
	}
}

// Run executes the supplied filters sequentially over the records.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, records *recruitment.FinalRecords) (*recruitment.FinalRecords, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, records)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		records = next
	}

	return records, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// keep retains records matching the predicate, preserving input order.
func keep(records *recruitment.FinalRecords, predicate func(*recruitment.FinalRecord) bool) (*recruitment.FinalRecords, Step) {
	initial := records.Len()
	kept := &recruitment.FinalRecords{Items: make([]*recruitment.FinalRecord, 0, initial)}
	for _, record := range records.Items {
		if predicate(record) {
			kept.Append(record)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}
}
