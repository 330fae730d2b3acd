package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

func TestCompositeScore(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name   string
		record *recruitment.FinalRecord
		want   float64
	}{
		{"positive with issues", record("a", 80, recruitment.EmotionPositive, 2), 80},
		{"neutral no bonus", record("b", 80, recruitment.EmotionNeutral, 0), 80},
		{"issues only", record("c", 75, recruitment.EmotionNeutral, 3), 60},
		{"lowercase positive still bonused", record("d", 70, "positive", 0), 80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CompositeScore(tc.record, cfg), 1e-9)
		})
	}
}

func TestPrioritizeDescendingStable(t *testing.T) {
	cfg := DefaultConfig()

	// First two tie at composite 80; the stable sort keeps "first" ahead.
	input := records(
		record("first", 80, recruitment.EmotionNeutral, 0),
		record("second", 70, recruitment.EmotionPositive, 0),
		record("best", 95, recruitment.EmotionPositive, 0),
		record("last", 60, recruitment.EmotionNegative, 2),
	)

	sorted := Prioritize(input, cfg)

	require.Equal(t, 4, sorted.Len())
	assert.Equal(t, "best", sorted.Items[0].Name)
	assert.Equal(t, "first", sorted.Items[1].Name)
	assert.Equal(t, "second", sorted.Items[2].Name)
	assert.Equal(t, "last", sorted.Items[3].Name)

	// Input order is untouched.
	assert.Equal(t, "first", input.Items[0].Name)
}

func TestTopCandidates(t *testing.T) {
	cfg := DefaultConfig()
	input := records(
		record("a", 60, recruitment.EmotionNeutral, 0),
		record("b", 90, recruitment.EmotionPositive, 0),
		record("c", 75, recruitment.EmotionNeutral, 0),
	)

	top := TopCandidates(input, cfg, 2)
	require.Equal(t, 2, top.Len())
	assert.Equal(t, "b", top.Items[0].Name)
	assert.Equal(t, "c", top.Items[1].Name)

	all := TopCandidates(input, cfg, 10)
	assert.Equal(t, 3, all.Len())
}
