package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/reconcile"
)

// ErrMalformedCommand is returned when a command body is not a JSON object
// with a string "type".
var ErrMalformedCommand = errors.New("malformed command")

// DecodeCommand parses a tagged action such as
//
//	{"type": "setJobRate", "jobId": "A", "value": 22.5}
//
// Payload fields are coerced the same way imports are. An unrecognized tag
// decodes to Unknown.
func DecodeCommand(raw []byte) (Command, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}
	tag, ok := obj["type"].(string)
	if !ok || tag == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedCommand)
	}

	switch CommandType(tag) {
	case TypeResetAll:
		return ResetAll{}, nil
	case TypeSetCurrency:
		s, _ := obj["value"].(string)
		return SetCurrency{Value: s}, nil
	case TypeSetJobName:
		s, _ := obj["name"].(string)
		return SetJobName{JobID: jobRef(obj), Name: s}, nil
	case TypeSetJobRate:
		return SetJobRate{JobID: jobRef(obj), Rate: reconcile.NonNegative(obj["value"])}, nil
	case TypeSetJobBreakPolicy:
		v, _ := obj["value"].(map[string]any)
		return SetJobBreakPolicy{JobID: jobRef(obj), Policy: payroll.BreakPolicy{
			Enabled:        reconcile.Bool(v["enabled"], false),
			ThresholdHours: reconcile.NonNegative(v["thresholdHours"]),
			MinBreakMin:    reconcile.Minutes(v["minBreakMin"]),
		}}, nil
	case TypeAddShift:
		return AddShift{}, nil
	case TypeRemoveShift:
		id, _ := obj["id"].(string)
		return RemoveShift{ID: id}, nil
	case TypeUpdateShift:
		id, _ := obj["id"].(string)
		patch, _ := obj["patch"].(map[string]any)
		return UpdateShift{ID: id, Patch: decodePatch(patch)}, nil
	case TypeReplaceAllShifts:
		return ReplaceAllShifts{Records: reconcile.ShiftRecords(obj["value"])}, nil
	case TypeAppendShifts:
		return AppendShifts{Records: reconcile.ShiftRecords(obj["value"])}, nil
	case TypeReorderShifts:
		return ReorderShifts{From: index(obj["fromIndex"]), To: index(obj["toIndex"])}, nil
	case TypeSortByDateStart:
		return SortByDateStart{}, nil
	case TypeRestoreAll:
		payload, err := json.Marshal(obj["payload"])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
		}
		return RestoreAll{Payload: payload}, nil
	default:
		return Unknown{Tag: tag}, nil
	}
}

// jobRef reads "jobId", falling back to the older "job" key.
func jobRef(obj map[string]any) payroll.JobID {
	if s, ok := obj["jobId"].(string); ok {
		return payroll.JobID(s)
	}
	s, _ := obj["job"].(string)
	return payroll.JobID(s)
}

// index reads a JSON number as an int; anything else is -1 (a no-op reorder).
func index(v any) int {
	f, ok := v.(float64)
	if !ok {
		return -1
	}
	return int(f)
}

func decodePatch(obj map[string]any) ShiftPatch {
	var p ShiftPatch
	str := func(key string) *string {
		if s, ok := obj[key].(string); ok {
			return &s
		}
		return nil
	}
	p.Date = str("date")
	p.Start = str("start")
	p.End = str("end")
	p.Note = str("note")

	ref := str("jobId")
	if ref == nil {
		ref = str("job")
	}
	if ref != nil {
		id := payroll.JobID(*ref)
		p.JobID = &id
	}
	if v, ok := obj["unpaidBreakMin"]; ok {
		m := reconcile.Minutes(v)
		p.UnpaidBreakMin = &m
	}
	return p
}

// ErrIndexOutOfRange is returned by CheckBounds for a reorder past the end
// of the shift list.
var ErrIndexOutOfRange = errors.New("shift index out of range")

// CheckBounds validates the indices a structural command refers to against
// s. The reducer treats out-of-range reorders as no-ops; callers that want to
// report them run this first, against the same snapshot they apply to.
func CheckBounds(s payroll.Snapshot, cmd Command) error {
	c, ok := cmd.(ReorderShifts)
	if !ok {
		return nil
	}
	if n := len(s.Shifts); c.From >= n || c.To >= n {
		return fmt.Errorf("%w: fromIndex=%d toIndex=%d shifts=%d", ErrIndexOutOfRange, c.From, c.To, n)
	}
	return nil
}
