package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/at-ishikawa/grevocab/internal/progress"
	"github.com/at-ishikawa/grevocab/internal/statistics"
)

// RunAnalyzeReport displays the review activity report
func RunAnalyzeReport(w io.Writer, sessions []progress.SessionEntry, year, month int) error {
	result := statistics.CalculateActivity(sessions, year, month)

	if len(result.Periods) == 0 {
		_, err := fmt.Fprintln(w, "No review activity found for the specified period.")
		return err
	}

	_, _ = fmt.Fprintln(w, "Review Activity Report")
	_, _ = fmt.Fprintln(w, "======================")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%-10s  %-10s  %-12s  %-12s\n", "Period", "Reviews", "Active days", "Busiest day")
	_, _ = fmt.Fprintf(w, "%-10s  %-10s  %-12s  %-12s\n", "------", "-------", "-----------", "-----------")

	for _, p := range result.Periods {
		_, _ = fmt.Fprintf(w, "%-10s  %-10s  %-12d  %-12s\n",
			p.Period,
			humanize.Comma(int64(p.Reviews)),
			p.ActiveDays,
			p.BusiestDay,
		)
	}

	_, _ = fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "%-10s  %-10s  %-12d  %.1f reviews/day\n",
		"Totals:",
		humanize.Comma(int64(result.Aggregate.Reviews)),
		result.Aggregate.ActiveDays,
		result.Aggregate.ReviewsPerDay,
	)
	return err
}
