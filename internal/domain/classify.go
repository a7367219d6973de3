package domain

import (
	"slices"
	"time"
)

// Policy maps a CAP field name to the set of values considered important.
// Recognized field names: status, msgType, urgency, severity, certainty,
// event. An alert must match every configured field to pass.
type Policy map[string][]string

// DefaultPolicy returns the standard importance policy: actual alerts and
// updates of at least Moderate severity with non-speculative urgency and
// certainty.
func DefaultPolicy() Policy {
	return Policy{
		"status":    {"Actual"},
		"msgType":   {"Alert", "Update"},
		"urgency":   {"Immediate", "Expected", "Unknown"},
		"severity":  {"Extreme", "Severe", "Moderate", "Unknown"},
		"certainty": {"Observed", "Likely", "Unknown"},
	}
}

// IsImportant reports whether an alert satisfies the policy and has not yet
// expired at the given time. A policy with zero entries admits every
// non-expired alert, so callers must supply a non-empty policy when that is
// not intended. Pure function, no I/O.
func IsImportant(a Alert, policy Policy, now time.Time) bool {
	for field, allowed := range policy {
		if !slices.Contains(allowed, fieldValue(a, field)) {
			return false
		}
	}
	return a.ExpiresAt.After(now)
}

// fieldValue resolves a policy field name against an alert. Unrecognized
// field names yield "", which fails membership unless the policy explicitly
// allows the empty string.
func fieldValue(a Alert, field string) string {
	switch field {
	case "status":
		return a.Status
	case "msgType":
		return a.MsgType
	case "urgency":
		return a.Urgency
	case "severity":
		return a.Severity
	case "certainty":
		return a.Certainty
	case "event":
		return a.Event
	default:
		return ""
	}
}
