package domain

import (
	"fmt"
	"time"
)

// Outcome is the notification decision for one classified alert.
type Outcome int

const (
	Skip Outcome = iota
	NotifyNew
	NotifyUpdate
)

func (o Outcome) String() string {
	switch o {
	case Skip:
		return "skip"
	case NotifyNew:
		return "new"
	case NotifyUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Decide combines an incoming alert with its cached snapshot (nil if never
// seen) and the send-updates setting. Pure function; calling it twice with
// the same inputs yields the same outcome.
//
// The update check compares cached-newer-than-incoming, not the reverse.
// That is long-standing behavior existing cache files depend on; do not
// invert it.
func Decide(incoming Alert, cached *Alert, sendUpdates bool) Outcome {
	switch {
	case cached == nil:
		return NotifyNew
	case !sendUpdates:
		return Skip
	case cached.UpdatedAt.Equal(incoming.UpdatedAt):
		return Skip
	case cached.UpdatedAt.After(incoming.UpdatedAt):
		return NotifyUpdate
	default:
		return Skip
	}
}

// BuildNotification renders the webhook message for an alert and its
// decision outcome.
func BuildNotification(a Alert, outcome Outcome) Notification {
	title := a.Title
	if title == "" {
		title = a.Event
	}
	if outcome == NotifyUpdate {
		title = "Update: " + title
	}

	details := fmt.Sprintf("%s (%s severity, %s urgency, %s certainty)",
		orUnknown(a.Event), orUnknown(a.Severity), orUnknown(a.Urgency), orUnknown(a.Certainty))
	if !a.ExpiresAt.IsZero() {
		details += fmt.Sprintf(", expires %s", a.ExpiresAt.Format(time.RFC1123))
	}

	return Notification{
		ID:      a.ID,
		Title:   title,
		Details: details,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
