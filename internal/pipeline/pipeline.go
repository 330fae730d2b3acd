// Package pipeline runs the full matching, assignment, scheduling, and
// filtering sequence over a candidate batch.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saori-ai/trs-engine/internal/assignment"
	"github.com/saori-ai/trs-engine/internal/filtering"
	"github.com/saori-ai/trs-engine/internal/matching"
	"github.com/saori-ai/trs-engine/internal/recruitment"
	"github.com/saori-ai/trs-engine/internal/tz"
)

// minAreaMatch is the lowest match score that still counts towards a
// candidate's primary specialty area.
const minAreaMatch = 0.2

type Config struct {
	Matching  matching.Config
	Timezone  tz.Config
	Filtering *filtering.Config

	// Concurrency bounds the parallel per-candidate annotation. Matching and
	// compatibility assessment share no mutable state, so they fan out;
	// recruiter assignment always runs serially afterwards.
	Concurrency int

	// TeamZones are the fallback meeting zones for unassigned candidates.
	TeamZones []string
}

func DefaultConfig() Config {
	return Config{
		Matching:    matching.DefaultConfig(),
		Timezone:    tz.DefaultConfig(),
		Filtering:   filtering.DefaultConfig(),
		Concurrency: 4,
		TeamZones:   []string{tz.FallbackZone},
	}
}

// Result is the outcome of one batch run.
type Result struct {
	RunID string

	// Records holds every annotated (candidate, vacancy) record, in input order.
	Records *recruitment.FinalRecords
	// Accepted holds the survivors of the default filter pipeline, prioritized.
	Accepted *recruitment.FinalRecords
	// Rejected partitions the non-survivors into exclusive buckets.
	Rejected map[filtering.Bucket][]*recruitment.FinalRecord

	Assignments []*assignment.Result
}

type Pipeline struct {
	cfg      Config
	scorer   *matching.Scorer
	resolver tz.Resolver
	assessor *tz.Assessor
	assigner *assignment.Assigner
	logger   *zap.Logger
}

func New(cfg Config, resolver tz.Resolver, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Filtering == nil {
		cfg.Filtering = filtering.DefaultConfig()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if resolver == nil {
		resolver = tz.NewService(nil, logger)
	}
	return &Pipeline{
		cfg:      cfg,
		scorer:   matching.New(cfg.Matching, logger),
		resolver: resolver,
		assessor: tz.NewAssessor(cfg.Timezone, logger),
		assigner: assignment.New(logger),
		logger:   logger,
	}
}

// Assessor exposes the pipeline's assessor for meeting-time queries outside a
// batch run.
func (p *Pipeline) Assessor() *tz.Assessor {
	return p.assessor
}

// Run executes the batch: annotate every candidate-vacancy pair, assign
// recruiters across the batch, suggest meeting times, then filter and rank.
func (p *Pipeline) Run(ctx context.Context, candidates *recruitment.Candidates, vacancies *recruitment.Vacancies, recruiters *recruitment.Recruiters) (*Result, error) {
	runID := uuid.NewString()
	p.logger.Info("starting batch run",
		zap.String("run_id", runID),
		zap.Int("candidates", candidates.Len()),
		zap.Int("vacancies", vacancies.Len()),
		zap.Int("recruiters", recruiters.Len()),
	)

	records, err := p.annotate(ctx, candidates, vacancies)
	if err != nil {
		return nil, err
	}

	assignments := p.assign(records, candidates, recruiters)
	p.suggestMeetings(ctx, records, candidates)

	accepted, err := filtering.Run(ctx, p.cfg.Filtering, filtering.Deps{Logger: p.logger}, filtering.DefaultSteps(), records)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}
	accepted = filtering.Prioritize(accepted, p.cfg.Filtering)

	rejected := filtering.CategorizeRejected(subtract(records, accepted), p.cfg.Filtering, p.logger)

	p.logger.Info("batch run finished",
		zap.String("run_id", runID),
		zap.Int("records", records.Len()),
		zap.Int("accepted", accepted.Len()),
	)

	return &Result{
		RunID:       runID,
		Records:     records,
		Accepted:    accepted,
		Rejected:    rejected,
		Assignments: assignments,
	}, nil
}

// annotate scores and timezone-assesses every candidate-vacancy pair. The
// per-candidate work is independent, so it fans out across a bounded group;
// results land in pre-indexed slots to keep input order.
func (p *Pipeline) annotate(ctx context.Context, candidates *recruitment.Candidates, vacancies *recruitment.Vacancies) (*recruitment.FinalRecords, error) {
	teamZones := make([]teamZone, vacancies.Len())
	for i, vacancy := range vacancies.Items {
		if vacancy.IsGlobal() {
			teamZones[i] = teamZone{global: true}
			continue
		}
		zone, resolved := p.resolver.Resolve(ctx, vacancy.PrimaryLocation())
		teamZones[i] = teamZone{name: zone, fallback: !resolved}
	}

	perCandidate := make([][]*recruitment.FinalRecord, candidates.Len())

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.cfg.Concurrency)

	for i, candidate := range candidates.Items {
		group.Go(func() error {
			rows, err := p.annotateCandidate(groupCtx, candidate, vacancies, teamZones)
			if err != nil {
				return err
			}
			perCandidate[i] = rows
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	records := &recruitment.FinalRecords{}
	for _, rows := range perCandidate {
		records.Append(rows...)
	}
	return records, nil
}

type teamZone struct {
	name     string
	global   bool
	fallback bool
}

func (p *Pipeline) annotateCandidate(ctx context.Context, candidate *recruitment.Candidate, vacancies *recruitment.Vacancies, teamZones []teamZone) ([]*recruitment.FinalRecord, error) {
	candidateTZ, resolved := p.resolver.Resolve(ctx, candidate.Location)

	rows := make([]*recruitment.FinalRecord, 0, vacancies.Len())
	for i, vacancy := range vacancies.Items {
		match, err := p.scorer.Evaluate(candidate, vacancy)
		if err != nil {
			return nil, fmt.Errorf("scoring %s against %s: %w", candidate.Name, vacancy.Title, err)
		}

		var compat *tz.Compatibility
		zone := teamZones[i]
		if zone.global {
			compat = p.assessor.GlobalCompatibility(candidateTZ)
		} else {
			compat, err = p.assessor.Assess(candidateTZ, zone.name)
			if err != nil {
				return nil, fmt.Errorf("assessing %s against %s: %w", candidate.Name, vacancy.Title, err)
			}
		}

		rows = append(rows, &recruitment.FinalRecord{
			Name:    candidate.Name,
			Vacancy: vacancy.Title,

			MatchScore:    match.MatchScore,
			Penalty:       match.Penalty,
			AdjustedScore: match.AdjustedScore,

			CandidateTimezone: compat.CandidateTimezone,
			TeamTimezone:      compat.TeamTimezone,
			OffsetHours:       compat.OffsetHours,
			OverlapHours:      compat.OverlapHours,
			TimezoneScore:     compat.Score,
			TimezoneLevel:     compat.Level,
			Recommendation:    compat.Recommendation,
			TimezoneFallback:  !resolved || zone.fallback,

			EmotionalState: candidate.EmotionalState,
			IssueCount:     candidate.IssueCount,
		})
	}
	return rows, nil
}

// assign derives one assignment profile per unique candidate and runs the
// batch assigner in input order. The primary specialty area is the one with
// the highest accumulated match score across the candidate's meaningful
// matches; first-seen order breaks ties.
func (p *Pipeline) assign(records *recruitment.FinalRecords, candidates *recruitment.Candidates, recruiters *recruitment.Recruiters) []*assignment.Result {
	order, grouped := records.ByCandidate()

	profiles := make([]*assignment.Profile, 0, len(order))
	for _, name := range order {
		areaOrder := make([]string, 0, 4)
		areaScores := make(map[string]float64)
		for _, record := range grouped[name] {
			if record.MatchScore < minAreaMatch {
				continue
			}
			area := assignment.InferArea(record.Vacancy)
			if _, seen := areaScores[area]; !seen {
				areaOrder = append(areaOrder, area)
			}
			areaScores[area] += record.MatchScore
		}

		primary := assignment.DefaultArea
		best := -1.0
		for _, area := range areaOrder {
			if areaScores[area] > best {
				best = areaScores[area]
				primary = area
			}
		}

		location := ""
		if candidate := candidates.FindByName(name); candidate != nil {
			location = candidate.Location
		}

		profiles = append(profiles, &assignment.Profile{
			Name:   name,
			Area:   primary,
			Region: assignment.InferRegion(location),
		})
	}

	results := p.assigner.AssignBatch(profiles, recruiters)

	byName := make(map[string]*recruitment.Recruiter, len(results))
	for _, result := range results {
		byName[result.Name] = result.Recruiter
	}
	for _, record := range records.Items {
		record.Recruiter = byName[record.Name]
	}

	return results
}

// suggestMeetings proposes a meeting slot per candidate across their own zone
// and their recruiter's zone. Unassigned candidates fall back to the
// configured team zones.
func (p *Pipeline) suggestMeetings(ctx context.Context, records *recruitment.FinalRecords, candidates *recruitment.Candidates) {
	order, grouped := records.ByCandidate()

	for _, name := range order {
		rows := grouped[name]
		zones := []string{rows[0].CandidateTimezone}

		recruiter := rows[0].Recruiter
		if recruiter != nil && !recruiter.IsUnassigned() {
			zone, _ := p.resolver.Resolve(ctx, recruiter.Location)
			zones = append(zones, zone)
		} else {
			zones = append(zones, p.cfg.TeamZones...)
		}

		suggestion, err := p.assessor.SuggestMeetingTime(zones)
		if err != nil {
			p.logger.Warn("meeting suggestion failed",
				zap.String("candidate", name),
				zap.Strings("zones", zones),
				zap.Error(err),
			)
			continue
		}

		for _, record := range rows {
			record.MeetingRecommendation = suggestion.Recommendation
			record.MeetingLocalTimes = suggestion.LocalTimes
		}
	}
}

// subtract returns the records present in all but not in kept, preserving order.
func subtract(all, kept *recruitment.FinalRecords) *recruitment.FinalRecords {
	keptSet := make(map[*recruitment.FinalRecord]struct{}, kept.Len())
	for _, record := range kept.Items {
		keptSet[record] = struct{}{}
	}

	rest := &recruitment.FinalRecords{}
	for _, record := range all.Items {
		if _, ok := keptSet[record]; !ok {
			rest.Append(record)
		}
	}
	return rest
}
