/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned to the editor. Money and hours leave
  the engine as decimal.Decimal and are sent as JSON numbers already rounded
  to cents, so the browser never rounds again.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - Request bodies are tagged commands, decoded by state.DecodeCommand

TYPES:
  Summary:
    SummaryDTO, ShiftLineDTO, TotalsDTO, WeekTotalsDTO

  Errors:
    ErrorResponse

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/aggregate.go: Source values
*/
package api

import (
	"github.com/elriot/part-time-pay-calculator/payroll"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// TotalsDTO is a rounded hours/pay pair.
type TotalsDTO struct {
	Hours float64 `json:"hours"`
	Pay   float64 `json:"pay"`
}

// ShiftLineDTO is the derived pay line for one shift.
type ShiftLineDTO struct {
	ShiftID           string  `json:"shiftId"`
	JobID             string  `json:"jobId"`
	Valid             bool    `json:"valid"`
	JobFound          bool    `json:"jobFound"`
	ScheduledHours    float64 `json:"scheduledHours"`
	EffectiveBreakMin int     `json:"effectiveBreakMin"`
	PolicyApplied     bool    `json:"policyApplied"`
	Hours             float64 `json:"hours"`
	Pay               float64 `json:"pay"`
	PayLabel          string  `json:"payLabel"`
}

// WeekTotalsDTO is one weekly bucket. StartISO/EndISO are null for the
// unknown bucket.
type WeekTotalsDTO struct {
	ID             string  `json:"id"`
	StartISO       *string `json:"startIso"`
	EndISO         *string `json:"endIso"`
	Label          string  `json:"label"`
	Hours          float64 `json:"hours"`
	Pay            float64 `json:"pay"`
	ScheduledHours float64 `json:"scheduledHours"`
}

// SummaryDTO is the response of GET /api/summary.
type SummaryDTO struct {
	Currency     string               `json:"currency"`
	Lines        []ShiftLineDTO       `json:"lines"`
	ByJob        map[string]TotalsDTO `json:"byJob"`
	JobOrder     []string             `json:"jobOrder"`
	Totals       TotalsDTO            `json:"totals"`
	WeeklyTotals []WeekTotalsDTO      `json:"weeklyTotals"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toTotalsDTO(t payroll.Totals) TotalsDTO {
	return TotalsDTO{Hours: t.Hours.InexactFloat64(), Pay: t.Pay.InexactFloat64()}
}

// Summarize derives the summary of a snapshot.
func Summarize(snap payroll.Snapshot) SummaryDTO {
	return toSummaryDTO(snap.Currency, payroll.ComputeAggregates(snap))
}

func toSummaryDTO(currency string, agg payroll.Aggregates) SummaryDTO {
	dto := SummaryDTO{
		Currency:     currency,
		Lines:        make([]ShiftLineDTO, len(agg.Lines)),
		ByJob:        make(map[string]TotalsDTO, len(agg.ByJob)),
		JobOrder:     make([]string, len(agg.JobOrder)),
		Totals:       toTotalsDTO(agg.Totals),
		WeeklyTotals: make([]WeekTotalsDTO, len(agg.WeeklyTotals)),
	}

	for i, l := range agg.Lines {
		dto.Lines[i] = ShiftLineDTO{
			ShiftID:           l.ShiftID,
			JobID:             string(l.JobID),
			Valid:             l.Valid,
			JobFound:          l.JobFound,
			ScheduledHours:    payroll.Round2(l.ScheduledHours).InexactFloat64(),
			EffectiveBreakMin: l.Break.EffectiveMin,
			PolicyApplied:     l.Break.Applied,
			Hours:             l.Hours.InexactFloat64(),
			Pay:               l.Pay.InexactFloat64(),
			PayLabel:          payroll.FormatMoney(currency, l.Pay),
		}
	}
	for i, id := range agg.JobOrder {
		dto.JobOrder[i] = string(id)
		dto.ByJob[string(id)] = toTotalsDTO(agg.ByJob[id])
	}
	for i, w := range agg.WeeklyTotals {
		wd := WeekTotalsDTO{
			ID:             w.ID(),
			Label:          w.Week.Label(""),
			Hours:          w.Hours.InexactFloat64(),
			Pay:            w.Pay.InexactFloat64(),
			ScheduledHours: w.ScheduledHours.InexactFloat64(),
		}
		if w.Week.Known() {
			wd.StartISO = strPtr(w.Week.StartISO())
			wd.EndISO = strPtr(w.Week.EndISO())
		}
		dto.WeeklyTotals[i] = wd
	}
	return dto
}

func strPtr(s string) *string {
	return &s
}
