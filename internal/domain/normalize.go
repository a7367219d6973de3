package domain

import (
	"strings"
	"time"
)

// timeLayouts covers the timestamp shapes the feed has been observed to emit.
// RFC 3339 is the documented format; the offset-without-colon variant shows
// up in some relayed CAP documents.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// NormalizeEntry converts a raw feed entry into a canonical Alert.
// Malformed fields degrade to zero values so one bad entry never aborts a
// pass: unparseable timestamps become the zero time, absent strings stay "".
func NormalizeEntry(raw RawEntry) Alert {
	return Alert{
		ID:          strings.TrimSpace(raw.ID),
		Title:       strings.TrimSpace(raw.Title),
		Event:       strings.TrimSpace(raw.CAP.Event),
		PublishedAt: parseTimeOrZero(raw.Published),
		UpdatedAt:   parseTimeOrZero(raw.Updated),
		Status:      strings.TrimSpace(raw.CAP.Status),
		MsgType:     strings.TrimSpace(raw.CAP.MsgType),
		Urgency:     strings.TrimSpace(raw.CAP.Urgency),
		Severity:    strings.TrimSpace(raw.CAP.Severity),
		Certainty:   strings.TrimSpace(raw.CAP.Certainty),
		EffectiveAt: parseTimeOrZero(raw.CAP.Effective),
		ExpiresAt:   parseTimeOrZero(raw.CAP.Expires),
	}
}

// parseTimeOrZero parses a feed timestamp, returning the zero time on failure.
func parseTimeOrZero(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
