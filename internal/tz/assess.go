package tz

import (
	"fmt"
	"math"
	"time"

	"github.com/maypok86/otter/v2"
	"go.uber.org/zap"
)

// GlobalZone is the vacancy zone sentinel that bypasses compatibility scoring.
const GlobalZone = "Global"

// Compatibility levels, ordered best to worst.
const (
	LevelExcellent   = "Excellent"
	LevelGood        = "Good"
	LevelModerate    = "Moderate"
	LevelChallenging = "Challenging"
	LevelDifficult   = "Difficult"
)

// Config holds the standard working window, in local wall-clock hours.
type Config struct {
	WorkStart int `mapstructure:"work-start"`
	WorkEnd   int `mapstructure:"work-end"`
}

func DefaultConfig() Config {
	return Config{WorkStart: 9, WorkEnd: 18}
}

func (c Config) windowHours() float64 {
	return float64(c.WorkEnd - c.WorkStart)
}

// Compatibility is the working-hour overlap assessment for a candidate and a
// counterpart timezone. It is derived state, recomputed per request; results
// depend only on the current UTC date, which makes them cacheable per day.
type Compatibility struct {
	CandidateTimezone string  `json:"candidate_timezone"`
	TeamTimezone      string  `json:"team_timezone"`
	OffsetHours       float64 `json:"offset_hours"`
	OverlapHours      float64 `json:"overlap_hours"`
	Score             float64 `json:"compatibility_score"`
	Level             string  `json:"compatibility_level"`
	Recommendation    string  `json:"recommendation"`
}

type Assessor struct {
	cfg    Config
	logger *zap.Logger
	cache  *otter.Cache[string, *Compatibility]
	now    func() time.Time
}

func NewAssessor(cfg Config, logger *zap.Logger) *Assessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WorkEnd <= cfg.WorkStart {
		cfg = DefaultConfig()
	}
	return &Assessor{
		cfg:    cfg,
		logger: logger,
		cache: otter.Must(&otter.Options[string, *Compatibility]{
			MaximumSize: 4096,
		}),
		now: time.Now,
	}
}

// Offset returns the signed UTC-offset delta between two zones in hours,
// evaluated at call time. The result shifts across daylight-saving
// transitions; that is accepted behavior.
func (a *Assessor) Offset(tz1, tz2 string) (float64, error) {
	loc1, err := time.LoadLocation(tz1)
	if err != nil {
		return 0, fmt.Errorf("loading timezone %q: %w", tz1, err)
	}
	loc2, err := time.LoadLocation(tz2)
	if err != nil {
		return 0, fmt.Errorf("loading timezone %q: %w", tz2, err)
	}

	now := a.now().UTC()
	_, offset1 := now.In(loc1).Zone()
	_, offset2 := now.In(loc2).Zone()
	return float64(offset1-offset2) / 3600, nil
}

// Overlap returns the hours per day during which both zones' working windows
// coincide, for the current UTC date. Built directionally from tz1 into tz2
// but symmetric in effect: both windows are projected onto the same instants
// before intersecting.
func (a *Assessor) Overlap(tz1, tz2 string) (float64, error) {
	loc1, err := time.LoadLocation(tz1)
	if err != nil {
		return 0, fmt.Errorf("loading timezone %q: %w", tz1, err)
	}
	loc2, err := time.LoadLocation(tz2)
	if err != nil {
		return 0, fmt.Errorf("loading timezone %q: %w", tz2, err)
	}

	year, month, day := a.now().UTC().Date()
	start1 := time.Date(year, month, day, a.cfg.WorkStart, 0, 0, 0, loc1)
	end1 := time.Date(year, month, day, a.cfg.WorkEnd, 0, 0, 0, loc1)
	start2 := time.Date(year, month, day, a.cfg.WorkStart, 0, 0, 0, loc2)
	end2 := time.Date(year, month, day, a.cfg.WorkEnd, 0, 0, 0, loc2)

	overlapStart := start1
	if start2.After(start1) {
		overlapStart = start2
	}
	overlapEnd := end1
	if end2.Before(end1) {
		overlapEnd = end2
	}

	if overlapEnd.After(overlapStart) {
		return overlapEnd.Sub(overlapStart).Hours(), nil
	}
	return 0, nil
}

// Assess computes the full compatibility result for a candidate and team
// timezone. Results are cached per (tz1, tz2, UTC date).
func (a *Assessor) Assess(candidateTZ, teamTZ string) (*Compatibility, error) {
	key := fmt.Sprintf("%s|%s|%s", candidateTZ, teamTZ, a.now().UTC().Format("2006-01-02"))
	if cached, ok := a.cache.GetIfPresent(key); ok {
		return cached, nil
	}

	offset, err := a.Offset(candidateTZ, teamTZ)
	if err != nil {
		return nil, err
	}
	overlap, err := a.Overlap(candidateTZ, teamTZ)
	if err != nil {
		return nil, err
	}

	score := math.Min(overlap/a.cfg.windowHours()*100, 100)
	level, recommendation := levelFor(overlap)

	result := &Compatibility{
		CandidateTimezone: candidateTZ,
		TeamTimezone:      teamTZ,
		OffsetHours:       round1(offset),
		OverlapHours:      round1(overlap),
		Score:             round1(score),
		Level:             level,
		Recommendation:    recommendation,
	}

	a.cache.Set(key, result)

	a.logger.Debug("timezone compatibility assessed",
		zap.String("candidate_tz", candidateTZ),
		zap.String("team_tz", teamTZ),
		zap.Float64("overlap_hours", result.OverlapHours),
		zap.Float64("score", result.Score),
		zap.String("level", result.Level),
	)

	return result, nil
}

// GlobalCompatibility is the policy override for vacancies open to any
// timezone: maximum score regardless of the candidate's zone. This is not a
// degenerate case of the overlap formula.
func (a *Assessor) GlobalCompatibility(candidateTZ string) *Compatibility {
	return &Compatibility{
		CandidateTimezone: candidateTZ,
		TeamTimezone:      GlobalZone,
		OverlapHours:      a.cfg.windowHours(),
		Score:             100,
		Level:             LevelExcellent,
		Recommendation:    "Position is open to all timezones, full compatibility assumed",
	}
}

// AdaptiveMessage renders a candidate-facing note for the given level.
func AdaptiveMessage(level, candidateTZ, teamTZ string, offset float64) string {
	base := fmt.Sprintf("The job requires availability in %s. Your current timezone is %s (offset: %gh).", teamTZ, candidateTZ, offset)
	switch level {
	case LevelExcellent:
		return base + " You're perfectly aligned for collaboration!"
	case LevelGood:
		return base + " You have strong overlap for daily syncs."
	case LevelModerate:
		return base + " Some flexibility may be needed."
	case LevelChallenging:
		return base + " Async work or shift adjustments recommended."
	default:
		return base + " Full async mode or shift work will be required."
	}
}

func levelFor(overlap float64) (string, string) {
	switch {
	case overlap >= 7:
		return LevelExcellent, "Full collaboration possible during regular hours"
	case overlap >= 5:
		return LevelGood, "Sufficient overlap for daily syncs and collaboration"
	case overlap >= 3:
		return LevelModerate, "Limited overlap, may require flexible scheduling"
	case overlap >= 1:
		return LevelChallenging, "Minimal overlap, requires async work or shift adjustments"
	default:
		return LevelDifficult, "No overlap, fully async work or shift work needed"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
