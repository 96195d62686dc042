// Package gate holds the pure threshold decision. No I/O, no side effects;
// everything interesting about access control happens here in one comparison.
package gate

import "strconv"

// Decision is the outcome of comparing an observed balance against a policy
// threshold. A denial restates the threshold for the caller's message but
// deliberately omits the observed balance, so a denial never leaks more about
// a wallet's holdings than the boundary itself.
type Decision struct {
	Allowed         bool
	MinimumRequired float64
}

// Decide applies the threshold. Exactly meeting the minimum passes.
func Decide(balance, minimumRequired float64) Decision {
	return Decision{
		Allowed:         balance >= minimumRequired,
		MinimumRequired: minimumRequired,
	}
}

// Reason returns the caller-facing denial message.
func (d Decision) Reason() string {
	return "Insufficient tokens. Minimum required: " + formatAmount(d.MinimumRequired)
}

// formatAmount renders a threshold the way admins typed it: no exponent, no
// trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
