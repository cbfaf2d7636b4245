/*
policy.go - Automatic unpaid-break policy

PURPOSE:
  A job may require a minimum unpaid break on long shifts. The policy is
  evaluated against the shift's scheduled duration (before any break) and
  decides which break is actually subtracted for pay.

RULE:
  applies        = Enabled AND scheduledMin >= ThresholdHours*60
  effectiveBreak = applies ? max(shift.UnpaidBreakMin, MinBreakMin)
                           : shift.UnpaidBreakMin

  - The threshold is inclusive: a 5h shift under a 5h threshold gets the break.
  - A larger user-entered break is never reduced.
  - When the policy does not apply the user value is used verbatim.
  - ThresholdHours = 0 with Enabled means every shift is covered.

  The stored shift break is never rewritten by evaluation; see
  reconcile/ for the import-time reset of stale breaks.

EXAMPLE:
  policy := BreakPolicy{Enabled: true, ThresholdHours: 5, MinBreakMin: 30}
  d := policy.Evaluate(300, 0)   // {Applied: true, EffectiveMin: 30}
  d  = policy.Evaluate(299, 0)   // {Applied: false, EffectiveMin: 0}
*/
package payroll

// BreakPolicy is a job's automatic unpaid-break rule.
type BreakPolicy struct {
	Enabled        bool    `json:"enabled"`
	ThresholdHours float64 `json:"thresholdHours"`
	MinBreakMin    int     `json:"minBreakMin"`
}

// BreakDecision is the outcome of evaluating a policy for one shift.
type BreakDecision struct {
	Applied      bool
	PolicyMin    int // MinBreakMin when Applied, else 0
	EffectiveMin int
}

// AppliesTo reports whether the policy covers a shift of scheduledMin minutes.
func (p BreakPolicy) AppliesTo(scheduledMin int) bool {
	return p.Enabled && float64(scheduledMin) >= p.ThresholdHours*60
}

// Evaluate decides the effective unpaid break for a shift.
func (p BreakPolicy) Evaluate(scheduledMin, enteredBreakMin int) BreakDecision {
	if !p.AppliesTo(scheduledMin) {
		return BreakDecision{EffectiveMin: enteredBreakMin}
	}
	return BreakDecision{
		Applied:      true,
		PolicyMin:    p.MinBreakMin,
		EffectiveMin: max(enteredBreakMin, p.MinBreakMin),
	}
}
