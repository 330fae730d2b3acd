// Package report renders batch results as Markdown, CSV, and console output.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saori-ai/trs-engine/internal/filtering"
	"github.com/saori-ai/trs-engine/internal/pipeline"
	"github.com/saori-ai/trs-engine/internal/recruitment"
)

type Generator struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger, now: time.Now}
}

// FilterReport renders the filtering summary with the top recommended records.
func (g *Generator) FilterReport(total int, accepted *recruitment.FinalRecords) string {
	remaining := accepted.Len()
	filteredOut := total - remaining
	ratio := 0.0
	if total > 0 {
		ratio = float64(filteredOut) / float64(total) * 100
	}

	var b strings.Builder
	b.WriteString("# Candidate Filtering Report\n\n")
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- **Original Candidates:** %d\n", total)
	fmt.Fprintf(&b, "- **Candidates After Filtering:** %d\n", remaining)
	fmt.Fprintf(&b, "- **Filtered Out:** %d (%.1f%%)\n", filteredOut, ratio)
	b.WriteString("\n## Top 5 Recommended Candidates\n")

	top := accepted.Items
	if len(top) > 5 {
		top = top[:5]
	}
	for i, record := range top {
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, record.Name)
		fmt.Fprintf(&b, "\n   - Vacancy: %s", record.Vacancy)
		fmt.Fprintf(&b, "\n   - Timezone Score: %.1f%%%s", record.TimezoneScore, fallbackMark(record))
		fmt.Fprintf(&b, "\n   - Emotional State: %s", record.EmotionalState)
		fmt.Fprintf(&b, "\n   - Issues: %d", record.IssueCount)
		fmt.Fprintf(&b, "\n   - Match Score: %.2f", record.MatchScore)
		if record.Recruiter != nil {
			fmt.Fprintf(&b, "\n   - Recruiter: %s (%s)", record.Recruiter.Name, record.Recruiter.ID)
		}
		if record.MeetingRecommendation != "" {
			fmt.Fprintf(&b, "\n   - Meeting: %s", record.MeetingRecommendation)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n**Report Generated:** %s\n", g.now().Format("2006-01-02 15:04:05"))
	return b.String()
}

// RejectedReport renders the rejected candidates grouped by bucket.
func (g *Generator) RejectedReport(total int, buckets map[filtering.Bucket][]*recruitment.FinalRecord) string {
	var b strings.Builder
	b.WriteString("# Rejected Candidates Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", g.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Rejected:** %d\n\n---\n\n", total)

	b.WriteString("## Rejection Categories\n\n")
	for _, bucket := range filtering.Buckets() {
		fmt.Fprintf(&b, "- **%s:** %d candidates\n", bucketTitle(bucket), len(buckets[bucket]))
	}
	b.WriteString("\n---\n\n")

	if potential := buckets[filtering.BucketPotential]; len(potential) > 0 {
		b.WriteString("## Potential Candidates (Priority for Talent Pool)\n\n")
		b.WriteString("*These candidates were close to passing and should be revisited in 3-6 months*\n\n")
		for _, record := range potential {
			fmt.Fprintf(&b, "### %s - %s\n", record.Name, record.Vacancy)
			fmt.Fprintf(&b, "- **Timezone Score:** %.1f%%%s\n", record.TimezoneScore, fallbackMark(record))
			fmt.Fprintf(&b, "- **Emotional State:** %s\n", record.EmotionalState)
			fmt.Fprintf(&b, "- **Issues:** %d\n", record.IssueCount)
			fmt.Fprintf(&b, "- **Match Score:** %.2f\n\n", record.MatchScore)
		}
	}

	for _, bucket := range filtering.Buckets() {
		records := buckets[bucket]
		if bucket == filtering.BucketPotential || len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", bucketTitle(bucket))
		limit := len(records)
		if limit > 10 {
			limit = 10
		}
		for _, record := range records[:limit] {
			fmt.Fprintf(&b, "- **%s** (%s)\n", record.Name, record.Vacancy)
			fmt.Fprintf(&b, "  - TZ: %.1f%%, Issues: %d, State: %s\n",
				record.TimezoneScore, record.IssueCount, record.EmotionalState)
		}
		b.WriteString("\n")
	}

	return b.String()
}

var registryHeader = []string{
	"name", "vacancy",
	"match_score", "penalty", "adjusted_score",
	"candidate_timezone", "team_timezone", "offset_hours", "overlap_hours",
	"compatibility_score", "compatibility_level", "recommendation", "timezone_fallback",
	"emotional_state", "issue_count",
	"recruiter_id", "recruiter_name",
	"meeting_recommendation",
}

// WriteRegistry emits every annotated record as a CSV row.
func (g *Generator) WriteRegistry(w io.Writer, records *recruitment.FinalRecords) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(registryHeader); err != nil {
		return fmt.Errorf("writing registry header: %w", err)
	}

	for _, record := range records.Items {
		recruiterID, recruiterName := "", ""
		if record.Recruiter != nil {
			recruiterID = record.Recruiter.ID
			recruiterName = record.Recruiter.Name
		}

		row := []string{
			record.Name, record.Vacancy,
			formatFloat(record.MatchScore), formatFloat(record.Penalty), formatFloat(record.AdjustedScore),
			record.CandidateTimezone, record.TeamTimezone,
			formatFloat(record.OffsetHours), formatFloat(record.OverlapHours),
			formatFloat(record.TimezoneScore), record.TimezoneLevel, record.Recommendation,
			strconv.FormatBool(record.TimezoneFallback),
			record.EmotionalState, strconv.Itoa(record.IssueCount),
			recruiterID, recruiterName,
			record.MeetingRecommendation,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing registry row for %s: %w", record.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAll writes the filtering report, rejected report, and CSV registry
// into dir, creating it when missing.
func (g *Generator) WriteAll(dir string, result *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}

	filterPath := filepath.Join(dir, "filter_report.md")
	if err := os.WriteFile(filterPath, []byte(g.FilterReport(result.Records.Len(), result.Accepted)), 0o644); err != nil {
		return fmt.Errorf("writing filter report: %w", err)
	}

	rejectedTotal := result.Records.Len() - result.Accepted.Len()
	rejectedPath := filepath.Join(dir, "rejected_candidates.md")
	if err := os.WriteFile(rejectedPath, []byte(g.RejectedReport(rejectedTotal, result.Rejected)), 0o644); err != nil {
		return fmt.Errorf("writing rejected report: %w", err)
	}

	registryPath := filepath.Join(dir, "registry.csv")
	file, err := os.Create(registryPath)
	if err != nil {
		return fmt.Errorf("creating registry: %w", err)
	}
	defer file.Close()

	if err := g.WriteRegistry(file, result.Records); err != nil {
		return err
	}

	g.logger.Info("reports written",
		zap.String("dir", dir),
		zap.String("run_id", result.RunID),
		zap.Strings("files", []string{filterPath, rejectedPath, registryPath}),
	)
	return nil
}

func bucketTitle(bucket filtering.Bucket) string {
	words := strings.Split(string(bucket), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func fallbackMark(record *recruitment.FinalRecord) string {
	if record.TimezoneFallback {
		return " (timezone unresolved, UTC assumed)"
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
