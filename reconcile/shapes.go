package reconcile

import (
	"fmt"
	"sort"

	"github.com/elriot/part-time-pay-calculator/payroll"
)

// =============================================================================
// JOB COLLECTION SHAPES
// =============================================================================
// Tried in order; the first detector that matches builds the job list.
//
//   flat-rate-map   {"A": 20, "B": 25}          oldest format, rates only
//   partial-array   [{"id": "A", "rate": 20}]   some fields missing
//   current         [{"id", "name", "rate", "breakPolicy"}]
//
// Anything else falls back to the built-in job set.

type jobShape struct {
	name   string
	detect func(v any) bool
	build  func(v any, opts Options) []payroll.Job
}

var jobShapes = []jobShape{
	{name: "flat-rate-map", detect: isFlatRateMap, build: buildFromRateMap},
	{name: "partial-array", detect: isPartialArray, build: buildFromArray},
	{name: "current", detect: isCurrentArray, build: buildFromArray},
}

// matchJobShape returns the first shape whose detector accepts v.
func matchJobShape(v any) (jobShape, bool) {
	for _, s := range jobShapes {
		if s.detect(v) {
			return s, true
		}
	}
	return jobShape{}, false
}

func coerceJobs(v any, opts Options) []payroll.Job {
	if s, ok := matchJobShape(v); ok {
		return s.build(v, opts)
	}
	return defaultJobs(opts)
}

func defaultJobs(opts Options) []payroll.Job {
	jobs := payroll.DefaultJobs()
	for i := range jobs {
		jobs[i].BreakPolicy = payroll.DefaultBreakPolicy(opts.PolicyEnabledByDefault)
	}
	return jobs
}

func isFlatRateMap(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, val := range m {
		switch val.(type) {
		case float64, string, nil:
		default:
			return false
		}
	}
	return true
}

// buildFromRateMap overlays the map's rates on the built-in jobs. Keys that
// are not built in are appended in sorted order.
func buildFromRateMap(v any, opts Options) []payroll.Job {
	m := v.(map[string]any)
	jobs := defaultJobs(opts)
	known := make(map[payroll.JobID]int, len(jobs))
	for i, j := range jobs {
		known[j.ID] = i
	}

	extra := make([]string, 0, len(m))
	for k := range m {
		if _, ok := known[payroll.JobID(k)]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	for id, i := range known {
		if rate, ok := m[string(id)]; ok {
			jobs[i].Rate = NonNegative(rate)
		}
	}
	for _, k := range extra {
		id := payroll.JobID(k)
		jobs = append(jobs, payroll.Job{
			ID:          id,
			Name:        payroll.DefaultJobName(id),
			Rate:        NonNegative(m[k]),
			BreakPolicy: payroll.DefaultBreakPolicy(opts.PolicyEnabledByDefault),
		})
	}
	return jobs
}

var jobFields = []string{"id", "name", "rate", "breakPolicy"}
var policyFields = []string{"enabled", "thresholdHours", "minBreakMin"}

func isPartialArray(v any) bool {
	arr, ok := v.([]any)
	return ok && !complete(arr)
}

func isCurrentArray(v any) bool {
	arr, ok := v.([]any)
	return ok && complete(arr)
}

func complete(arr []any) bool {
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok || !hasAll(obj, jobFields) {
			return false
		}
		bp, ok := obj["breakPolicy"].(map[string]any)
		if !ok || !hasAll(bp, policyFields) {
			return false
		}
	}
	return true
}

func hasAll(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}

// buildFromArray coerces each element. Elements that are not objects are
// dropped; later duplicates of an id are dropped.
func buildFromArray(v any, opts Options) []payroll.Job {
	arr := v.([]any)
	jobs := make([]payroll.Job, 0, len(arr))
	seen := make(map[payroll.JobID]bool, len(arr))

	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		id := payroll.JobID(asString(obj["id"], ""))
		if id == "" {
			id = fallbackJobID(i, seen)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		jobs = append(jobs, coerceJob(id, obj, opts))
	}
	return jobs
}

// coerceJob fills what the object lacks from the built-in policy: a missing
// thresholdHours or minBreakMin keeps 5h / 30min. setJobBreakPolicy differs
// and takes missing fields as 0, since it replaces the whole policy.
func coerceJob(id payroll.JobID, obj map[string]any, opts Options) payroll.Job {
	job := payroll.Job{
		ID:          id,
		Name:        asString(obj["name"], ""),
		Rate:        NonNegative(obj["rate"]),
		BreakPolicy: payroll.DefaultBreakPolicy(opts.PolicyEnabledByDefault),
	}
	if job.Name == "" {
		job.Name = payroll.DefaultJobName(id)
	}
	if bp, ok := obj["breakPolicy"].(map[string]any); ok {
		job.BreakPolicy.Enabled = Bool(bp["enabled"], opts.PolicyEnabledByDefault)
		if t, ok := bp["thresholdHours"]; ok {
			job.BreakPolicy.ThresholdHours = NonNegative(t)
		}
		if m, ok := bp["minBreakMin"]; ok {
			job.BreakPolicy.MinBreakMin = Minutes(m)
		}
	}
	return job
}

// fallbackJobID picks "A".."Z" by position, then "J27", "J28", ...
func fallbackJobID(i int, seen map[payroll.JobID]bool) payroll.JobID {
	for n := i; ; n++ {
		var id payroll.JobID
		if n < 26 {
			id = payroll.JobID(string(rune('A' + n)))
		} else {
			id = payroll.JobID(fmt.Sprintf("J%d", n+1))
		}
		if !seen[id] {
			return id
		}
	}
}
