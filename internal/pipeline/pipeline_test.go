package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saori-ai/trs-engine/internal/filtering"
	"github.com/saori-ai/trs-engine/internal/recruitment"
	"github.com/saori-ai/trs-engine/internal/tz"
)

// stubResolver resolves from a fixed table; everything else falls back to UTC.
type stubResolver map[string]string

func (s stubResolver) Resolve(_ context.Context, location string) (string, bool) {
	if zone, ok := s[location]; ok {
		return zone, true
	}
	return tz.FallbackZone, false
}

// Zones without daylight saving keep the expected scores stable year-round.
func testResolver() stubResolver {
	return stubResolver{
		"Bogota, Colombia": "America/Bogota",
		"Lima, Peru":       "America/Lima",
	}
}

func testCandidates() *recruitment.Candidates {
	return &recruitment.Candidates{Items: []*recruitment.Candidate{
		{
			Name:              "Ana Torres",
			Stack:             []string{"Go", "SQL"},
			EmotionalState:    recruitment.EmotionPositive,
			PreferredModality: "Remote",
			Zone:              "North",
			Location:          "Bogota, Colombia",
			IssueCount:        1,
		},
		{
			Name:           "Jorge Diaz",
			Stack:          []string{"Python"},
			EmotionalState: recruitment.EmotionNegative,
			Location:       "Atlantis",
		},
	}}
}

func testVacancies() *recruitment.Vacancies {
	return &recruitment.Vacancies{Items: []*recruitment.Vacancy{
		{
			Title:     "Backend Developer",
			Stack:     []string{"Go", "SQL"},
			Modality:  "Remote",
			Zone:      "North",
			Locations: recruitment.Locations{"Bogota, Colombia"},
		},
		{
			Title: "Marketing Lead",
			Stack: []string{"Marketing"},
			Zone:  recruitment.GlobalZone,
		},
	}}
}

func testRecruiters() *recruitment.Recruiters {
	return &recruitment.Recruiters{Items: []*recruitment.Recruiter{
		{
			ID:          "R001",
			Name:        "Laura",
			Specialties: []string{"tech"},
			Regions:     []string{"LATAM"},
			Location:    "Lima, Peru",
		},
	}}
}

func TestRunAnnotatesEveryPair(t *testing.T) {
	p := New(DefaultConfig(), testResolver(), nil)

	result, err := p.Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)

	require.Equal(t, 4, result.Records.Len())
	assert.NotEmpty(t, result.RunID)

	// Records keep candidate input order regardless of fan-out.
	assert.Equal(t, "Ana Torres", result.Records.Items[0].Name)
	assert.Equal(t, "Backend Developer", result.Records.Items[0].Vacancy)
	assert.Equal(t, "Ana Torres", result.Records.Items[1].Name)
	assert.Equal(t, "Jorge Diaz", result.Records.Items[2].Name)
}

func TestRunScoresAndCompatibility(t *testing.T) {
	p := New(DefaultConfig(), testResolver(), nil)

	result, err := p.Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)

	anaBackend := result.Records.Items[0]
	assert.InDelta(t, 1.0, anaBackend.MatchScore, 1e-9)
	assert.InDelta(t, 100, anaBackend.TimezoneScore, 1e-9)
	assert.Equal(t, tz.LevelExcellent, anaBackend.TimezoneLevel)
	assert.False(t, anaBackend.TimezoneFallback)

	anaMarketing := result.Records.Items[1]
	assert.Equal(t, tz.GlobalZone, anaMarketing.TeamTimezone)
	assert.InDelta(t, 100, anaMarketing.TimezoneScore, 1e-9)

	// Unresolvable location degrades to UTC and gets flagged.
	jorgeBackend := result.Records.Items[2]
	assert.Equal(t, tz.FallbackZone, jorgeBackend.CandidateTimezone)
	assert.True(t, jorgeBackend.TimezoneFallback)
}

func TestRunFiltersAndCategorizes(t *testing.T) {
	p := New(DefaultConfig(), testResolver(), nil)

	result, err := p.Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)

	// Only Ana survives; both of her records pass every default filter.
	require.Equal(t, 2, result.Accepted.Len())
	for _, record := range result.Accepted.Items {
		assert.Equal(t, "Ana Torres", record.Name)
	}

	// Jorge's Backend record is below the timezone threshold; his Global
	// record passes timezone but fails on emotional state.
	require.Len(t, result.Rejected[filtering.BucketLowTimezone], 1)
	require.Len(t, result.Rejected[filtering.BucketNegativeEmotion], 1)
	assert.Empty(t, result.Rejected[filtering.BucketOther])
}

func TestRunAssignsRecruiters(t *testing.T) {
	p := New(DefaultConfig(), testResolver(), nil)

	result, err := p.Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)

	require.Len(t, result.Assignments, 2)

	// Ana matches Backend strongly, so her area is tech and her region LATAM.
	assert.Equal(t, "Ana Torres", result.Assignments[0].Name)
	assert.Equal(t, "R001", result.Assignments[0].Recruiter.ID)

	// Jorge has no meaningful match, defaults to tech, and lands on the same
	// recruiter through the specialty tier.
	assert.Equal(t, "R001", result.Assignments[1].Recruiter.ID)

	// Every record carries its candidate's recruiter.
	for _, record := range result.Records.Items {
		require.NotNil(t, record.Recruiter)
		assert.Equal(t, "R001", record.Recruiter.ID)
	}
}

func TestRunSuggestsMeetings(t *testing.T) {
	p := New(DefaultConfig(), testResolver(), nil)

	result, err := p.Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)

	for _, record := range result.Records.Items {
		assert.NotEmpty(t, record.MeetingRecommendation, "record for %s/%s", record.Name, record.Vacancy)
		assert.Len(t, record.MeetingLocalTimes, 2)
	}
}

func TestRunDeterministicAcrossRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Concurrency = 8

	first, err := New(cfg, testResolver(), nil).Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)
	second, err := New(cfg, testResolver(), nil).Run(context.Background(), testCandidates(), testVacancies(), testRecruiters())
	require.NoError(t, err)

	require.Equal(t, first.Records.Len(), second.Records.Len())
	for i := range first.Records.Items {
		assert.Equal(t, first.Records.Items[i].Name, second.Records.Items[i].Name)
		assert.Equal(t, first.Records.Items[i].Vacancy, second.Records.Items[i].Vacancy)
		assert.Equal(t, first.Records.Items[i].TimezoneScore, second.Records.Items[i].TimezoneScore)
	}
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].Recruiter.ID, second.Assignments[i].Recruiter.ID)
	}
}

func TestRunUnassignedUsesTeamZones(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TeamZones = []string{"America/Bogota"}

	// Empty pool: everyone gets the sentinel and team-zone meetings.
	pool := &recruitment.Recruiters{}
	p := New(cfg, testResolver(), nil)

	result, err := p.Run(context.Background(), testCandidates(), testVacancies(), pool)
	require.NoError(t, err)

	for _, a := range result.Assignments {
		assert.True(t, a.Recruiter.IsUnassigned())
	}
	for _, record := range result.Records.Items {
		assert.NotEmpty(t, record.MeetingRecommendation)
	}
}

func TestRunEmptyVacancyStackFailsBatch(t *testing.T) {
	vacancies := &recruitment.Vacancies{Items: []*recruitment.Vacancy{
		{Title: "Broken", Stack: nil},
	}}

	p := New(DefaultConfig(), testResolver(), nil)
	_, err := p.Run(context.Background(), testCandidates(), vacancies, testRecruiters())
	require.Error(t, err)
}
