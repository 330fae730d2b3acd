package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

type timezoneScoreFilter struct {
	threshold float64
}

// NewTimezoneScore creates a filter that keeps records at or above the
// timezone compatibility threshold.
func NewTimezoneScore() Filter {
	return &timezoneScoreFilter{}
}

func (f *timezoneScoreFilter) Name() string { return "timezone_score" }

func (f *timezoneScoreFilter) Disable(string) {}

func (f *timezoneScoreFilter) IsEnabled() bool { return true }

func (f *timezoneScoreFilter) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if cfg.TimezoneThreshold < 0 || cfg.TimezoneThreshold > 100 {
		return fmt.Errorf("timezone threshold %v out of range [0,100]", cfg.TimezoneThreshold)
	}
	f.threshold = cfg.TimezoneThreshold
	return nil
}

func (f *timezoneScoreFilter) Apply(_ context.Context, _ Deps, records *recruitment.FinalRecords) (*recruitment.FinalRecords, Step, error) {
	kept, step := keep(records, func(r *recruitment.FinalRecord) bool {
		return r.TimezoneScore >= f.threshold
	})
	return kept, step, nil
}

func (f *timezoneScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"threshold": fmt.Sprintf("%.1f", f.threshold)},
	}
}

type emotionalStateFilter struct {
	desired string
}

// NewEmotionalState creates a filter that keeps records whose emotional state
// equals the desired label, case-insensitively.
func NewEmotionalState() Filter {
	return &emotionalStateFilter{}
}

func (f *emotionalStateFilter) Name() string { return "emotional_state" }

func (f *emotionalStateFilter) Disable(string) {}

func (f *emotionalStateFilter) IsEnabled() bool { return true }

func (f *emotionalStateFilter) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if strings.TrimSpace(cfg.DesiredEmotion) == "" {
		return fmt.Errorf("desired emotional state is required")
	}
	f.desired = cfg.DesiredEmotion
	return nil
}

func (f *emotionalStateFilter) Apply(_ context.Context, _ Deps, records *recruitment.FinalRecords) (*recruitment.FinalRecords, Step, error) {
	kept, step := keep(records, func(r *recruitment.FinalRecord) bool {
		return strings.EqualFold(r.EmotionalState, f.desired)
	})
	return kept, step, nil
}

func (f *emotionalStateFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"desired": f.desired},
	}
}

type issueCountFilter struct {
	maxIssues int
}

// NewIssueCount creates a filter that keeps records with at most the allowed
// number of detected inconsistencies.
func NewIssueCount() Filter {
	return &issueCountFilter{}
}

func (f *issueCountFilter) Name() string { return "issue_count" }

func (f *issueCountFilter) Disable(string) {}

func (f *issueCountFilter) IsEnabled() bool { return true }

func (f *issueCountFilter) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if cfg.MaxIssues < 0 {
		return fmt.Errorf("max issues must not be negative")
	}
	f.maxIssues = cfg.MaxIssues
	return nil
}

func (f *issueCountFilter) Apply(_ context.Context, _ Deps, records *recruitment.FinalRecords) (*recruitment.FinalRecords, Step, error) {
	kept, step := keep(records, func(r *recruitment.FinalRecord) bool {
		return r.IssueCount <= f.maxIssues
	})
	return kept, step, nil
}

func (f *issueCountFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"max_issues": strconv.Itoa(f.maxIssues)},
	}
}

type matchScoreFilter struct {
	minScore float64
}

// NewMatchScore creates a filter that keeps records at or above the minimum
// match score. It is available standalone and is not part of DefaultSteps.
func NewMatchScore() Filter {
	return &matchScoreFilter{}
}

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Disable(string) {}

func (f *matchScoreFilter) IsEnabled() bool { return true }

func (f *matchScoreFilter) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	f.minScore = cfg.MinMatchScore
	return nil
}

func (f *matchScoreFilter) Apply(_ context.Context, _ Deps, records *recruitment.FinalRecords) (*recruitment.FinalRecords, Step, error) {
	kept, step := keep(records, func(r *recruitment.FinalRecord) bool {
		return r.MatchScore >= f.minScore
	})
	return kept, step, nil
}

func (f *matchScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"min_score": fmt.Sprintf("%.2f", f.minScore)},
	}
}
