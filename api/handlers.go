/*
handlers.go - HTTP API handlers for the pay calculator

PURPOSE:
  Exposes the session's command and query interfaces to the browser editor.
  Handlers parse the request, hand commands to the session, and serialize
  the result. No pay rules live here.

ENDPOINTS:
  State:
    GET    /api/state               Current snapshot
    GET    /api/summary             Derived lines, job totals, weekly totals
    POST   /api/commands            Apply a tagged command

  Backup:
    GET    /api/backup              Download the snapshot as JSON
    POST   /api/restore             Replace everything from a backup body

  Tabular:
    GET    /api/shifts.csv          Export shifts as CSV
    POST   /api/shifts.csv?mode=    Import CSV rows (mode=replace|append)
    GET    /api/report.xlsx         Workbook with shifts, jobs, weeks

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed command, out-of-range reorder, invalid backup or CSV
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/elriot/part-time-pay-calculator/csvio"
	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/report"
	"github.com/elriot/part-time-pay-calculator/session"
	"github.com/elriot/part-time-pay-calculator/state"
)

const maxBodyBytes = 10 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Session  *session.Session
	Importer csvio.Importer
	Report   report.Writer
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewHandler creates a new handler for the given session.
func NewHandler(sess *session.Session, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Session:  sess,
		Importer: csvio.NewImporter(),
		Report:   report.Writer{Logger: logger},
		Logger:   logger,
		Now:      time.Now,
	}
}

// =============================================================================
// STATE HANDLERS
// =============================================================================

// GetState returns the current snapshot.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Snapshot())
}

// GetSummary returns everything derived from the current snapshot.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Summarize(h.Session.Snapshot()))
}

// PostCommand applies one tagged command and returns the new snapshot.
func (h *Handler) PostCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	cmd, err := state.DecodeCommand(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid command", err)
		return
	}

	snap, err := h.Session.Dispatch(r.Context(), cmd)
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// =============================================================================
// BACKUP HANDLERS
// =============================================================================

// GetBackup downloads the snapshot in the backup file shape.
func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("paycalc_backup_%s.json", payroll.TodayISO(h.Now()))
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	writeJSON(w, http.StatusOK, h.Session.Snapshot())
}

// PostRestore replaces the whole snapshot from a backup body.
func (h *Handler) PostRestore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	snap, err := h.Session.Dispatch(r.Context(), state.RestoreAll{Payload: body})
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}
	h.Logger.Info("restored backup", "jobs", len(snap.Jobs), "shifts", len(snap.Shifts))
	writeJSON(w, http.StatusOK, snap)
}

// =============================================================================
// TABULAR HANDLERS
// =============================================================================

// ExportCSV writes every shift as a CSV row.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("shifts_%s.csv", payroll.TodayISO(h.Now()))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := csvio.Export(w, h.Session.Snapshot()); err != nil {
		h.Logger.Error("csv export failed", "error", err)
	}
}

// ImportCSV replaces or appends shifts from a CSV body.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "replace"
	}
	if mode != "replace" && mode != "append" {
		writeError(w, http.StatusBadRequest, "Invalid import mode", "mode must be replace or append")
		return
	}

	records, err := h.Importer.Import(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid CSV file", err)
		return
	}
	if len(records) == 0 {
		writeJSON(w, http.StatusOK, h.Session.Snapshot())
		return
	}

	var cmd state.Command = state.ReplaceAllShifts{Records: records}
	if mode == "append" {
		cmd = state.AppendShifts{Records: records}
	}
	snap, err := h.Session.Dispatch(r.Context(), cmd)
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}
	h.Logger.Info("imported csv", "mode", mode, "rows", len(records))
	writeJSON(w, http.StatusOK, snap)
}

// ExportXLSX downloads the summary workbook.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	snap := h.Session.Snapshot()
	data, err := h.Report.WorkbookXLSX(snap, payroll.ComputeAggregates(snap))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	name := fmt.Sprintf("paycalc_%s.xlsx", payroll.TodayISO(h.Now()))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeDispatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrIndexOutOfRange) {
		writeError(w, http.StatusBadRequest, "Reorder index out of range", err)
		return
	}
	if errors.Is(err, payroll.ErrInvalidBackup) {
		writeError(w, http.StatusBadRequest, "Invalid backup file", err)
		return
	}
	if payroll.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid command", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to apply command", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, details any) {
	resp := ErrorResponse{Error: message}
	switch d := details.(type) {
	case nil:
	case error:
		resp.Details = d.Error()
	default:
		resp.Details = d
	}
	writeJSON(w, status, resp)
}
