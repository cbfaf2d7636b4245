// Package report renders derived pay figures as an XLSX workbook.
package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elriot/part-time-pay-calculator/payroll"
)

const (
	sheetShifts = "Shifts"
	sheetJobs   = "Jobs"
	sheetWeeks  = "Weeks"
)

// Writer produces workbooks. The zero value logs to slog.Default.
type Writer struct {
	Logger *slog.Logger
}

// WorkbookXLSX returns a workbook with three sheets: per-shift lines, job
// totals (plus an overall row), and weekly totals newest first.
func (w Writer) WorkbookXLSX(snap payroll.Snapshot, agg payroll.Aggregates) ([]byte, error) {
	start := time.Now()
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetShifts); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetJobs, sheetWeeks} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	writeShifts(f, snap, agg)
	writeJobs(f, snap, agg)
	writeWeeks(f, agg)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("report.xlsx.ok",
		"shifts", len(snap.Shifts),
		"weeks", len(agg.WeeklyTotals),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func writeShifts(f *excelize.File, snap payroll.Snapshot, agg payroll.Aggregates) {
	writeRow(f, sheetShifts, 1,
		"Date", "Job", "Start", "End", "Unpaid Break (min)", "Effective Break (min)",
		"Scheduled Hours", "Paid Hours", "Rate", "Pay", "Note")

	for i, s := range snap.Shifts {
		line := agg.Lines[i]
		var rate float64
		if job, ok := snap.Job(s.JobID); ok {
			rate = job.Rate
		}
		writeRow(f, sheetShifts, i+2,
			s.Date, string(s.JobID), s.Start, s.End, s.UnpaidBreakMin, line.Break.EffectiveMin,
			payroll.Round2(line.ScheduledHours).InexactFloat64(), line.Hours.InexactFloat64(),
			rate, line.Pay.InexactFloat64(), s.Note)
	}

	_ = f.SetColWidth(sheetShifts, "A", "A", 12)
	_ = f.SetColWidth(sheetShifts, "E", "G", 20)
	_ = f.SetColWidth(sheetShifts, "K", "K", 40)
}

func writeJobs(f *excelize.File, snap payroll.Snapshot, agg payroll.Aggregates) {
	writeRow(f, sheetJobs, 1, "Job", "Name", "Hours", "Pay ("+snap.Currency+")")

	row := 2
	for _, id := range agg.JobOrder {
		name := payroll.DefaultJobName(id)
		if job, ok := snap.Job(id); ok {
			name = job.Name
		}
		t := agg.ByJob[id]
		writeRow(f, sheetJobs, row, string(id), name, t.Hours.InexactFloat64(), t.Pay.InexactFloat64())
		row++
	}
	writeRow(f, sheetJobs, row, "", "Overall", agg.Totals.Hours.InexactFloat64(), agg.Totals.Pay.InexactFloat64())

	_ = f.SetColWidth(sheetJobs, "B", "B", 24)
}

func writeWeeks(f *excelize.File, agg payroll.Aggregates) {
	writeRow(f, sheetWeeks, 1, "Week", "Scheduled Hours", "Paid Hours", "Pay")
	for i, w := range agg.WeeklyTotals {
		writeRow(f, sheetWeeks, i+2,
			w.Week.Label("Unknown"),
			w.ScheduledHours.InexactFloat64(), w.Hours.InexactFloat64(), w.Pay.InexactFloat64())
	}
	_ = f.SetColWidth(sheetWeeks, "A", "A", 26)
}
