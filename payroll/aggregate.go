/*
aggregate.go - Totals by job, overall, and by week

PURPOSE:
  Folds every shift of a snapshot into the values the editor displays.
  The fold is pure and cheap, so callers recompute it on every read instead
  of caching.

TWO-STAGE ROUNDING:
  Each shift's hours and pay are rounded to cents first (ComputeShift).
  Job and week totals are the sum of those rounded values, rounded again.
  Grand totals are the sum of the rounded job totals, rounded again.

  This differs by a cent from summing exact values in some cases
  (two shifts of 20.005 total 40.02, not 40.01). Saved totals in the wild
  were produced this way, so it is kept as is.

WEEK ORDER:
  Dated weeks are sorted newest first by Sunday start date. The unknown
  bucket (no parsable date) comes after every dated week.

SEE ALSO:
  - pay.go: Per-shift line
  - week.go: Week boundaries
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals is a pair of rounded hours and pay.
type Totals struct {
	Hours decimal.Decimal
	Pay   decimal.Decimal
}

func zeroTotals() Totals {
	return Totals{Hours: decimal.Zero, Pay: decimal.Zero}
}

func (t Totals) add(hours, pay decimal.Decimal) Totals {
	return Totals{Hours: t.Hours.Add(hours), Pay: t.Pay.Add(pay)}
}

func (t Totals) rounded() Totals {
	return Totals{Hours: Round2(t.Hours), Pay: Round2(t.Pay)}
}

// WeekTotals accumulates one week bucket.
type WeekTotals struct {
	Week           Week
	Hours          decimal.Decimal
	Pay            decimal.Decimal
	ScheduledHours decimal.Decimal
}

// ID is the bucket key ("start_end" or "unknown").
func (w WeekTotals) ID() string { return w.Week.Key() }

// Aggregates is everything derived from a snapshot.
type Aggregates struct {
	Lines        []ShiftPay // in shift order
	ByJob        map[JobID]Totals
	JobOrder     []JobID // snapshot jobs first, then dangling ids as seen
	Totals       Totals
	WeeklyTotals []WeekTotals
}

// ComputeAggregates derives per-shift lines, job totals, grand totals and
// weekly totals from a snapshot.
func ComputeAggregates(s Snapshot) Aggregates {
	agg := Aggregates{
		Lines: make([]ShiftPay, 0, len(s.Shifts)),
		ByJob: make(map[JobID]Totals, len(s.Jobs)),
	}

	jobs := make(map[JobID]Job, len(s.Jobs))
	for _, j := range s.Jobs {
		if _, dup := jobs[j.ID]; dup {
			continue
		}
		jobs[j.ID] = j
		agg.ByJob[j.ID] = zeroTotals()
		agg.JobOrder = append(agg.JobOrder, j.ID)
	}

	weeks := make(map[string]*WeekTotals)
	var weekKeys []string

	for _, sh := range s.Shifts {
		job, found := jobs[sh.JobID]
		line := ComputeShift(sh, job, found)
		agg.Lines = append(agg.Lines, line)
		if !line.Valid {
			continue
		}

		jt, seen := agg.ByJob[sh.JobID]
		if !seen {
			jt = zeroTotals()
			agg.JobOrder = append(agg.JobOrder, sh.JobID)
		}
		agg.ByJob[sh.JobID] = jt.add(line.Hours, line.Pay)

		week := WeekOf(sh.Date)
		wt, ok := weeks[week.Key()]
		if !ok {
			wt = &WeekTotals{Week: week, Hours: decimal.Zero, Pay: decimal.Zero, ScheduledHours: decimal.Zero}
			weeks[week.Key()] = wt
			weekKeys = append(weekKeys, week.Key())
		}
		wt.Hours = wt.Hours.Add(line.Hours)
		wt.Pay = wt.Pay.Add(line.Pay)
		wt.ScheduledHours = wt.ScheduledHours.Add(line.ScheduledHours)
	}

	grand := zeroTotals()
	for _, id := range agg.JobOrder {
		jt := agg.ByJob[id].rounded()
		agg.ByJob[id] = jt
		grand = grand.add(jt.Hours, jt.Pay)
	}
	agg.Totals = grand.rounded()

	agg.WeeklyTotals = make([]WeekTotals, 0, len(weekKeys))
	for _, k := range weekKeys {
		wt := *weeks[k]
		wt.Hours = Round2(wt.Hours)
		wt.Pay = Round2(wt.Pay)
		wt.ScheduledHours = Round2(wt.ScheduledHours)
		agg.WeeklyTotals = append(agg.WeeklyTotals, wt)
	}
	sort.SliceStable(agg.WeeklyTotals, func(i, j int) bool {
		a, b := agg.WeeklyTotals[i].Week, agg.WeeklyTotals[j].Week
		if a.Known() != b.Known() {
			return a.Known()
		}
		if !a.Known() {
			return false
		}
		return a.Start.After(b.Start)
	})

	return agg
}
