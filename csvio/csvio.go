// Package csvio reads and writes shifts as CSV rows:
//
//	id,date,job,start,end,unpaidBreakMin,rate,note
//
// Import produces plain records; the state reducer resolves the job reference
// when they are handed to replaceAllShifts or appendShifts.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elriot/part-time-pay-calculator/payroll"
)

// Headers is the column order for both directions.
var Headers = []string{"id", "date", "job", "start", "end", "unpaidBreakMin", "rate", "note"}

// Export writes every shift with the owning job's current rate. Shifts with
// an unknown job get rate 0.
func Export(w io.Writer, snap payroll.Snapshot) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, s := range snap.Shifts {
		var rate float64
		if job, ok := snap.Job(s.JobID); ok {
			rate = job.Rate
		}
		row := []string{
			s.ID,
			s.Date,
			string(s.JobID),
			s.Start,
			s.End,
			strconv.Itoa(s.UnpaidBreakMin),
			strconv.FormatFloat(rate, 'f', -1, 64),
			s.Note,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Importer turns CSV rows into shift records.
type Importer struct {
	Now   func() time.Time
	NewID func() string
}

// NewImporter uses the wall clock and random UUIDs for missing cells.
func NewImporter() Importer {
	return Importer{Now: time.Now, NewID: uuid.NewString}
}

// Import reads all rows. A leading header row (matched case-insensitively) is
// skipped; blank rows are dropped. Empty cells take defaults: a new id,
// today's date, job "A", 09:00-17:00, and 0 for numbers.
func (im Importer) Import(r io.Reader) ([]payroll.ShiftRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []payroll.ShiftRecord
	first := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		if blank(row) {
			continue
		}
		records = append(records, im.record(row))
	}
	return records, nil
}

func (im Importer) record(row []string) payroll.ShiftRecord {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	or := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	return payroll.ShiftRecord{
		ID:             or(get(0), im.NewID()),
		Date:           or(get(1), payroll.TodayISO(im.Now())),
		Job:            strings.ToUpper(or(get(2), string(payroll.DefaultJobRef))),
		Start:          or(get(3), payroll.DefaultShiftStart),
		End:            or(get(4), payroll.DefaultShiftEnd),
		UnpaidBreakMin: int(math.Trunc(number(get(5)))),
		Rate:           number(get(6)),
		Note:           get(7),
	}
}

func isHeader(row []string) bool {
	if len(row) < len(Headers) {
		return false
	}
	for i, h := range Headers {
		if !strings.EqualFold(strings.TrimSpace(row[i]), h) {
			return false
		}
	}
	return true
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// number parses a cell leniently: unparsable or negative values become 0.
func number(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
