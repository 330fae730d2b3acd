// Package matching scores candidate stacks against vacancy requirements.
package matching

import (
	"errors"

	"go.uber.org/zap"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

// ErrEmptyVacancyStack is returned when a vacancy lists no required skills.
// An empty stack is an input shape error, not a zero-overlap match: a 0 score
// is a legitimate outcome and must stay distinguishable from bad input.
var ErrEmptyVacancyStack = errors.New("vacancy stack is empty")

// Config holds the fixed penalty weights. Each penalty is binary: it either
// applies in full or not at all, with no interaction terms.
type Config struct {
	ModalityPenalty    float64 `mapstructure:"modality-penalty"`
	ZonePenalty        float64 `mapstructure:"zone-penalty"`
	HighUrgencyPenalty float64 `mapstructure:"high-urgency-penalty"`
}

func DefaultConfig() Config {
	return Config{
		ModalityPenalty:    0.2,
		ZonePenalty:        0.2,
		HighUrgencyPenalty: 0.1,
	}
}

type Scorer struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{cfg: cfg, logger: logger}
}

// Score returns the fraction of vacancy skills present in the candidate
// stack. The result is in [0,1] and equals 1 exactly when the vacancy stack
// is a subset of the candidate stack.
func (s *Scorer) Score(candidateStack, vacancyStack []string) (float64, error) {
	if len(vacancyStack) == 0 {
		return 0, ErrEmptyVacancyStack
	}

	have := make(map[string]struct{}, len(candidateStack))
	for _, skill := range candidateStack {
		have[skill] = struct{}{}
	}

	required := make(map[string]struct{}, len(vacancyStack))
	shared := 0
	for _, skill := range vacancyStack {
		if _, dup := required[skill]; dup {
			continue
		}
		required[skill] = struct{}{}
		if _, ok := have[skill]; ok {
			shared++
		}
	}

	return float64(shared) / float64(len(required)), nil
}

// Penalty sums the independent deductions for modality mismatch, zone
// mismatch, and high vacancy urgency.
func (s *Scorer) Penalty(candidate *recruitment.Candidate, vacancy *recruitment.Vacancy) float64 {
	penalty := 0.0
	if candidate.PreferredModality != vacancy.Modality {
		penalty += s.cfg.ModalityPenalty
	}
	if candidate.Zone != vacancy.Zone {
		penalty += s.cfg.ZonePenalty
	}
	if vacancy.Urgency == recruitment.UrgencyHigh {
		penalty += s.cfg.HighUrgencyPenalty
	}
	return penalty
}

// Evaluate produces the match record for one candidate-vacancy pair. The
// adjusted score is not clamped and may be negative.
func (s *Scorer) Evaluate(candidate *recruitment.Candidate, vacancy *recruitment.Vacancy) (*recruitment.MatchRecord, error) {
	score, err := s.Score(candidate.Stack, vacancy.Stack)
	if err != nil {
		return nil, err
	}

	penalty := s.Penalty(candidate, vacancy)

	record := &recruitment.MatchRecord{
		Candidate:     candidate.Name,
		Vacancy:       vacancy.Title,
		MatchScore:    score,
		Penalty:       penalty,
		AdjustedScore: score - penalty,
	}

	s.logger.Debug("match evaluated",
		zap.String("candidate", record.Candidate),
		zap.String("vacancy", record.Vacancy),
		zap.Float64("match_score", record.MatchScore),
		zap.Float64("penalty", record.Penalty),
		zap.Float64("adjusted_score", record.AdjustedScore),
	)

	return record, nil
}
