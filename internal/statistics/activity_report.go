// Package statistics summarizes review activity by month.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/grevocab/internal/progress"
)

// PeriodActivity holds the review activity of one month.
type PeriodActivity struct {
	Period     string // "2025-01"
	Reviews    int
	ActiveDays int
	BusiestDay string
}

// AggregateActivity holds totals across every reported period.
type AggregateActivity struct {
	Reviews       int
	ActiveDays    int
	ReviewsPerDay float64
}

// ActivityReport holds both per-period and aggregate activity.
type ActivityReport struct {
	Periods   []PeriodActivity
	Aggregate AggregateActivity
}

type periodData struct {
	reviews int
	// reviews per date; a date can have several log entries after a sync
	days map[string]int
}

// busiestDay returns the date with the most reviews, the earliest one on ties.
func (d *periodData) busiestDay() string {
	var busiest string
	most := -1
	for date, reviews := range d.days {
		if reviews > most || (reviews == most && date < busiest) {
			busiest = date
			most = reviews
		}
	}
	return busiest
}

// CalculateActivity builds a report from the session log.
// It accepts optional year and month filters (0 means no filter).
func CalculateActivity(sessions []progress.SessionEntry, year, month int) ActivityReport {
	stats := make(map[string]*periodData)

	for _, entry := range sessions {
		day, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		if !matchesFilter(day.Year(), int(day.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", day.Year(), int(day.Month()))
		data := stats[period]
		if data == nil {
			data = &periodData{days: make(map[string]int)}
			stats[period] = data
		}
		data.reviews += entry.Reviews
		data.days[entry.Date] += entry.Reviews
	}

	return buildReport(stats)
}

func matchesFilter(entryYear, entryMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if entryYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return entryMonth == filterMonth
}

func buildReport(stats map[string]*periodData) ActivityReport {
	periods := make([]PeriodActivity, 0, len(stats))

	var aggregate AggregateActivity
	for period, data := range stats {
		periods = append(periods, PeriodActivity{
			Period:     period,
			Reviews:    data.reviews,
			ActiveDays: len(data.days),
			BusiestDay: data.busiestDay(),
		})
		aggregate.Reviews += data.reviews
		aggregate.ActiveDays += len(data.days)
	}
	if aggregate.ActiveDays > 0 {
		aggregate.ReviewsPerDay = float64(aggregate.Reviews) / float64(aggregate.ActiveDays)
	}

	// newest first
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return ActivityReport{
		Periods:   periods,
		Aggregate: aggregate,
	}
}
