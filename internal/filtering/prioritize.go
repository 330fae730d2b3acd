package filtering

import (
	"sort"
	"strings"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

// CompositeScore is the prioritization formula: the timezone score, plus a
// bonus for a positive emotional state, minus a penalty per detected issue.
func CompositeScore(record *recruitment.FinalRecord, cfg *Config) float64 {
	score := record.TimezoneScore
	if strings.EqualFold(record.EmotionalState, recruitment.EmotionPositive) {
		score += cfg.PositiveBonus
	}
	return score - float64(record.IssueCount)*cfg.IssuePenalty
}

// Prioritize returns the records sorted descending by composite score. The
// sort is stable: ties keep their input order, with no secondary key.
func Prioritize(records *recruitment.FinalRecords, cfg *Config) *recruitment.FinalRecords {
	sorted := &recruitment.FinalRecords{Items: append([]*recruitment.FinalRecord(nil), records.Items...)}
	sort.SliceStable(sorted.Items, func(i, j int) bool {
		return CompositeScore(sorted.Items[i], cfg) > CompositeScore(sorted.Items[j], cfg)
	})
	return sorted
}

// TopCandidates returns the best n records after prioritization.
func TopCandidates(records *recruitment.FinalRecords, cfg *Config, n int) *recruitment.FinalRecords {
	sorted := Prioritize(records, cfg)
	if n < 0 || n > sorted.Len() {
		n = sorted.Len()
	}
	return &recruitment.FinalRecords{Items: sorted.Items[:n]}
}
