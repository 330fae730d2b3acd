package filtering

import (
	"strings"

	"go.uber.org/zap"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

// Bucket labels a rejection category. Buckets are mutually exclusive and
// evaluated in a fixed precedence.
type Bucket string

const (
	// BucketPotential holds candidates close to the thresholds, worth
	// revisiting for future openings.
	BucketPotential      Bucket = "potential"
	BucketLowTimezone    Bucket = "low_timezone"
	BucketNegativeEmotion Bucket = "negative_emotion"
	BucketTooManyIssues  Bucket = "too_many_issues"
	BucketLowMatchScore  Bucket = "low_match_score"
	// BucketOther catches records that match no named category, so every
	// rejected candidate stays visible in reporting.
	BucketOther Bucket = "other"
)

// Buckets returns all categories in their reporting order.
func Buckets() []Bucket {
	return []Bucket{
		BucketPotential,
		BucketLowTimezone,
		BucketNegativeEmotion,
		BucketTooManyIssues,
		BucketLowMatchScore,
		BucketOther,
	}
}

// CategorizeRejected partitions rejected records into exclusive buckets.
// Precedence: potential, then low timezone, negative emotion, too many
// issues, low match score, with a catch-all last. A record landing in the
// catch-all is logged: it points at a gap between filters and categories.
func CategorizeRejected(records *recruitment.FinalRecords, cfg *Config, logger *zap.Logger) map[Bucket][]*recruitment.FinalRecord {
	if logger == nil {
		logger = zap.NewNop()
	}

	categories := make(map[Bucket][]*recruitment.FinalRecord, 6)
	for _, bucket := range Buckets() {
		categories[bucket] = nil
	}

	for _, record := range records.Items {
		bucket := categorize(record, cfg)
		if bucket == BucketOther {
			logger.Warn("rejected candidate matched no category",
				zap.String("candidate", record.Name),
				zap.String("vacancy", record.Vacancy),
				zap.Float64("timezone_score", record.TimezoneScore),
				zap.String("emotional_state", record.EmotionalState),
				zap.Int("issue_count", record.IssueCount),
				zap.Float64("match_score", record.MatchScore),
			)
		}
		categories[bucket] = append(categories[bucket], record)
	}

	return categories
}

func categorize(record *recruitment.FinalRecord, cfg *Config) Bucket {
	negative := strings.EqualFold(record.EmotionalState, recruitment.EmotionNegative)

	potential := record.TimezoneScore >= cfg.PotentialMinTimezone &&
		record.TimezoneScore < cfg.TimezoneThreshold &&
		!negative &&
		record.IssueCount <= cfg.PotentialMaxIssues

	switch {
	case potential:
		return BucketPotential
	case record.TimezoneScore < cfg.TimezoneThreshold:
		return BucketLowTimezone
	case negative:
		return BucketNegativeEmotion
	case record.IssueCount > cfg.MaxIssues:
		return BucketTooManyIssues
	case record.MatchScore < cfg.MinMatchScore:
		return BucketLowMatchScore
	default:
		return BucketOther
	}
}
