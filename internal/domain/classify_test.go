package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var classifyNow = time.Date(2024, time.April, 26, 20, 0, 0, 0, time.UTC)

// importantAlert returns an alert that passes DefaultPolicy at classifyNow.
func importantAlert() Alert {
	return Alert{
		ID:        "urn:alert:1",
		Event:     "Tornado Warning",
		Status:    "Actual",
		MsgType:   "Alert",
		Urgency:   "Immediate",
		Severity:  "Extreme",
		Certainty: "Observed",
		UpdatedAt: classifyNow.Add(-10 * time.Minute),
		ExpiresAt: classifyNow.Add(1 * time.Hour),
	}
}

func TestIsImportant_DefaultPolicyMatch(t *testing.T) {
	assert.True(t, IsImportant(importantAlert(), DefaultPolicy(), classifyNow))
}

func TestIsImportant_FieldMismatchRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Alert)
	}{
		{"exercise status", func(a *Alert) { a.Status = "Exercise" }},
		{"cancel msgType", func(a *Alert) { a.MsgType = "Cancel" }},
		{"past urgency", func(a *Alert) { a.Urgency = "Past" }},
		{"minor severity", func(a *Alert) { a.Severity = "Minor" }},
		{"unlikely certainty", func(a *Alert) { a.Certainty = "Unlikely" }},
		{"empty status", func(a *Alert) { a.Status = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := importantAlert()
			tt.mutate(&a)
			assert.False(t, IsImportant(a, DefaultPolicy(), classifyNow))
		})
	}
}

func TestIsImportant_ExpiryGate(t *testing.T) {
	a := importantAlert()

	a.ExpiresAt = classifyNow.Add(-1 * time.Minute)
	assert.False(t, IsImportant(a, DefaultPolicy(), classifyNow), "expired alert")

	a.ExpiresAt = classifyNow
	assert.False(t, IsImportant(a, DefaultPolicy(), classifyNow), "expiry exactly now")

	a.ExpiresAt = time.Time{}
	assert.False(t, IsImportant(a, DefaultPolicy(), classifyNow), "zero expiry counts as expired")
}

func TestIsImportant_EmptyPolicyAdmitsNonExpired(t *testing.T) {
	a := importantAlert()
	a.Status = "Exercise"
	a.Severity = "Minor"

	assert.True(t, IsImportant(a, Policy{}, classifyNow))

	a.ExpiresAt = classifyNow.Add(-time.Minute)
	assert.False(t, IsImportant(a, Policy{}, classifyNow))
}

func TestIsImportant_UnknownPolicyFieldRejects(t *testing.T) {
	p := Policy{"scope": {"Public"}}
	assert.False(t, IsImportant(importantAlert(), p, classifyNow))
}

func TestIsImportant_EventFieldPolicy(t *testing.T) {
	p := Policy{"event": {"Tornado Warning"}}
	a := importantAlert()
	assert.True(t, IsImportant(a, p, classifyNow))

	a.Event = "Frost Advisory"
	assert.False(t, IsImportant(a, p, classifyNow))
}
