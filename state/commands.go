/*
Package state implements the domain state store.

PURPOSE:
  The editor never mutates the snapshot directly. It sends commands, and
  the Reducer turns (Snapshot, Command) into a new Snapshot. The reducer is
  pure: time and id generation are injected, and side effects (clearing the
  persisted copy) are returned as an Effect for the caller to perform.

COMMANDS:
  resetAll                     built-in defaults, EffectClearPersisted
  setCurrency(value)           verbatim label
  setJobName(jobId, name)
  setJobRate(jobId, rate)      coerced to a number >= 0
  setJobBreakPolicy(jobId, p)  whole policy replaced, not merged
  addShift                     today, 09:00-17:00, no break, first job
  removeShift(id)
  updateShift(id, patch)       shallow merge
  replaceAllShifts(records)    job reference normalized
  appendShifts(records)        job reference normalized
  reorderShifts(from, to)      remove then insert
  sortByDateStart              stable, by date then start
  restoreAll(payload)          full replace through reconcile.Restore

  Commands that target a missing job or shift leave the snapshot unchanged.
  Unknown commands are no-ops, not errors.

SEE ALSO:
  - reducer.go: Command application
  - decode.go: Tagged JSON actions from the HTTP API
  - reconcile/: Payload coercion for restoreAll
*/
package state

import (
	"github.com/elriot/part-time-pay-calculator/payroll"
)

// CommandType is the tag of a command.
type CommandType string

const (
	TypeResetAll          CommandType = "resetAll"
	TypeSetCurrency       CommandType = "setCurrency"
	TypeSetJobName        CommandType = "setJobName"
	TypeSetJobRate        CommandType = "setJobRate"
	TypeSetJobBreakPolicy CommandType = "setJobBreakPolicy"
	TypeAddShift          CommandType = "addShift"
	TypeRemoveShift       CommandType = "removeShift"
	TypeUpdateShift       CommandType = "updateShift"
	TypeReplaceAllShifts  CommandType = "replaceAllShifts"
	TypeAppendShifts      CommandType = "appendShifts"
	TypeReorderShifts     CommandType = "reorderShifts"
	TypeSortByDateStart   CommandType = "sortByDateStart"
	TypeRestoreAll        CommandType = "restoreAll"
)

// Command is a tagged state transition.
type Command interface {
	Type() CommandType
}

type ResetAll struct{}

type SetCurrency struct {
	Value string
}

type SetJobName struct {
	JobID payroll.JobID
	Name  string
}

type SetJobRate struct {
	JobID payroll.JobID
	Rate  float64
}

type SetJobBreakPolicy struct {
	JobID  payroll.JobID
	Policy payroll.BreakPolicy
}

type AddShift struct{}

type RemoveShift struct {
	ID string
}

type UpdateShift struct {
	ID    string
	Patch ShiftPatch
}

// ShiftPatch holds the fields to overwrite; nil fields are left alone.
type ShiftPatch struct {
	Date           *string
	JobID          *payroll.JobID
	Start          *string
	End            *string
	UnpaidBreakMin *int
	Note           *string
}

type ReplaceAllShifts struct {
	Records []payroll.ShiftRecord
}

type AppendShifts struct {
	Records []payroll.ShiftRecord
}

// ReorderShifts moves the shift at From to To. Indices must be in range;
// callers check them.
type ReorderShifts struct {
	From int
	To   int
}

type SortByDateStart struct{}

// RestoreAll replaces everything with a reconciled backup payload.
type RestoreAll struct {
	Payload []byte
}

// Unknown carries an unrecognized tag; applying it changes nothing.
type Unknown struct {
	Tag string
}

func (ResetAll) Type() CommandType          { return TypeResetAll }
func (SetCurrency) Type() CommandType       { return TypeSetCurrency }
func (SetJobName) Type() CommandType        { return TypeSetJobName }
func (SetJobRate) Type() CommandType        { return TypeSetJobRate }
func (SetJobBreakPolicy) Type() CommandType { return TypeSetJobBreakPolicy }
func (AddShift) Type() CommandType          { return TypeAddShift }
func (RemoveShift) Type() CommandType       { return TypeRemoveShift }
func (UpdateShift) Type() CommandType       { return TypeUpdateShift }
func (ReplaceAllShifts) Type() CommandType  { return TypeReplaceAllShifts }
func (AppendShifts) Type() CommandType      { return TypeAppendShifts }
func (ReorderShifts) Type() CommandType     { return TypeReorderShifts }
func (SortByDateStart) Type() CommandType   { return TypeSortByDateStart }
func (RestoreAll) Type() CommandType        { return TypeRestoreAll }
func (u Unknown) Type() CommandType         { return CommandType(u.Tag) }

// Effect is a side effect the caller must perform after a command.
type Effect int

const (
	EffectNone Effect = iota
	// EffectClearPersisted asks the persistence collaborator to drop its copy.
	EffectClearPersisted
)
