package filtering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

func record(name string, tzScore float64, emotion string, issues int) *recruitment.FinalRecord {
	return &recruitment.FinalRecord{
		Name:           name,
		Vacancy:        "Backend Developer",
		MatchScore:     0.7,
		TimezoneScore:  tzScore,
		EmotionalState: emotion,
		IssueCount:     issues,
	}
}

func records(items ...*recruitment.FinalRecord) *recruitment.FinalRecords {
	return &recruitment.FinalRecords{Items: items}
}

func TestRunDefaultSteps(t *testing.T) {
	input := records(
		record("passes", 75, recruitment.EmotionPositive, 1),
		record("low timezone", 65, recruitment.EmotionPositive, 1),
		record("wrong emotion", 80, recruitment.EmotionNeutral, 0),
		record("too many issues", 90, recruitment.EmotionPositive, 4),
		record("boundary timezone", 70, recruitment.EmotionPositive, 3),
	)

	out, err := Run(context.Background(), DefaultConfig(), Deps{}, DefaultSteps(), input)
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "passes", out.Items[0].Name)
	assert.Equal(t, "boundary timezone", out.Items[1].Name)
}

func TestRunPreservesInputOrder(t *testing.T) {
	input := records(
		record("c", 80, recruitment.EmotionPositive, 0),
		record("a", 75, recruitment.EmotionPositive, 1),
		record("b", 95, recruitment.EmotionPositive, 2),
	)

	out, err := Run(context.Background(), DefaultConfig(), Deps{}, DefaultSteps(), input)
	require.NoError(t, err)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "c", out.Items[0].Name)
	assert.Equal(t, "a", out.Items[1].Name)
	assert.Equal(t, "b", out.Items[2].Name)
}

func TestRunEmotionCaseInsensitive(t *testing.T) {
	input := records(record("shouted", 80, "POSITIVE", 0))

	out, err := Run(context.Background(), DefaultConfig(), Deps{}, DefaultSteps(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestRunValidatesBeforeApplying(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimezoneThreshold = 150

	_, err := Run(context.Background(), cfg, Deps{}, DefaultSteps(), records())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone_score")
}

func TestMatchScoreFilterStandalone(t *testing.T) {
	strong := record("strong", 80, recruitment.EmotionPositive, 0)
	weak := record("weak", 80, recruitment.EmotionPositive, 0)
	weak.MatchScore = 0.3

	out, err := Run(context.Background(), DefaultConfig(), Deps{}, []Filter{NewMatchScore()}, records(strong, weak))
	require.NoError(t, err)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "strong", out.Items[0].Name)
}

func TestDescribeReportsThresholds(t *testing.T) {
	steps := DefaultSteps()
	for _, step := range steps {
		require.NoError(t, step.Validate(DefaultConfig()))
	}

	statuses := Describe(steps)
	require.Len(t, statuses, 3)
	assert.Equal(t, "timezone_score", statuses[0].Name)
	assert.Equal(t, "70.0", statuses[0].Details["threshold"])
	assert.Equal(t, recruitment.EmotionPositive, statuses[1].Details["desired"])
	assert.Equal(t, "3", statuses[2].Details["max_issues"])
}
