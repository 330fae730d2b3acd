package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/saori-ai/trs-engine/internal/filtering"
	"github.com/saori-ai/trs-engine/internal/pipeline"
)

// PrintSummary writes a short colored batch summary for interactive runs.
func PrintSummary(w io.Writer, result *pipeline.Result) {
	header := color.New(color.Bold)
	accepted := color.New(color.FgGreen)
	rejected := color.New(color.FgRed)
	potential := color.New(color.FgYellow)

	header.Fprintf(w, "Batch %s\n", result.RunID)
	fmt.Fprintf(w, "  records evaluated: %d\n", result.Records.Len())
	accepted.Fprintf(w, "  accepted: %d\n", result.Accepted.Len())
	rejected.Fprintf(w, "  rejected: %d\n", result.Records.Len()-result.Accepted.Len())
	if n := len(result.Rejected[filtering.BucketPotential]); n > 0 {
		potential.Fprintf(w, "  potential (talent pool): %d\n", n)
	}

	unassigned := 0
	for _, a := range result.Assignments {
		if a.Recruiter.IsUnassigned() {
			unassigned++
		}
	}
	if unassigned > 0 {
		rejected.Fprintf(w, "  unassigned candidates: %d\n", unassigned)
	}

	top := result.Accepted.Items
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) > 0 {
		header.Fprintln(w, "  top candidates:")
		for i, record := range top {
			fmt.Fprintf(w, "    %d. %s -> %s (tz %.1f%%, match %.2f)\n",
				i+1, record.Name, record.Vacancy, record.TimezoneScore, record.MatchScore)
		}
	}
}
