package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEntry_FullEntry(t *testing.T) {
	raw := RawEntry{
		ID:        "https://alerts.weather.gov/cap/wwacapget.php?x=TX1234",
		Title:     "Severe Thunderstorm Warning issued for San Saba County",
		Published: "2024-04-26T15:10:00-05:00",
		Updated:   "2024-04-26T15:12:00-05:00",
		CAP: CAPBlock{
			Event:     "Severe Thunderstorm Warning",
			Status:    "Actual",
			MsgType:   "Alert",
			Urgency:   "Immediate",
			Severity:  "Severe",
			Certainty: "Observed",
			Effective: "2024-04-26T15:10:00-05:00",
			Expires:   "2024-04-26T16:00:00-05:00",
		},
	}

	alert := NormalizeEntry(raw)

	assert.Equal(t, raw.ID, alert.ID)
	assert.Equal(t, raw.Title, alert.Title)
	assert.Equal(t, "Severe Thunderstorm Warning", alert.Event)
	assert.Equal(t, "Actual", alert.Status)
	assert.Equal(t, "Alert", alert.MsgType)
	assert.Equal(t, "Immediate", alert.Urgency)
	assert.Equal(t, "Severe", alert.Severity)
	assert.Equal(t, "Observed", alert.Certainty)

	wantUpdated := time.Date(2024, time.April, 26, 15, 12, 0, 0, time.FixedZone("", -5*3600))
	assert.True(t, alert.UpdatedAt.Equal(wantUpdated))
	assert.True(t, alert.ExpiresAt.After(alert.EffectiveAt))
}

func TestNormalizeEntry_MissingFieldsDefaultToZero(t *testing.T) {
	alert := NormalizeEntry(RawEntry{ID: "x"})

	assert.Equal(t, "x", alert.ID)
	assert.Empty(t, alert.Title)
	assert.Empty(t, alert.Event)
	assert.True(t, alert.PublishedAt.IsZero())
	assert.True(t, alert.UpdatedAt.IsZero())
	assert.True(t, alert.EffectiveAt.IsZero())
	assert.True(t, alert.ExpiresAt.IsZero())
}

func TestNormalizeEntry_BadTimestampsDoNotFail(t *testing.T) {
	raw := RawEntry{
		ID:      "x",
		Updated: "yesterday-ish",
		CAP:     CAPBlock{Expires: "2024-13-99T99:99:99Z"},
	}

	alert := NormalizeEntry(raw)

	assert.True(t, alert.UpdatedAt.IsZero())
	assert.True(t, alert.ExpiresAt.IsZero())
}

func TestParseTimeOrZero_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{"rfc3339", "2024-04-26T15:10:00-05:00", false},
		{"rfc3339 utc", "2024-04-26T20:10:00Z", false},
		{"offset without colon", "2024-04-26T15:10:00-0500", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"garbage", "not a time", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTimeOrZero(tt.input)
			assert.Equal(t, tt.zero, got.IsZero())
		})
	}
}
