package domain

import "time"

// RawEntry is one unprocessed entry from the zone's ATOM feed.
type RawEntry struct {
	ID        string
	Title     string
	Published string
	Updated   string
	CAP       CAPBlock
}

// CAPBlock holds the cap-namespaced extension elements of a feed entry.
// All fields are verbatim feed text; parsing happens during normalization.
type CAPBlock struct {
	Event     string
	Status    string
	MsgType   string
	Urgency   string
	Severity  string
	Certainty string
	Effective string
	Expires   string
}

// Feed is the result of one fetch: the feed-level id plus its raw entries.
// The id doubles as the "no active alerts" sentinel (see package doc).
type Feed struct {
	ID      string
	Entries []RawEntry
}

// Alert is one feed entry, canonicalized. Instances are immutable within a
// pass; only the cache's stored snapshot changes across passes.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Event       string    `json:"event"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Status      string    `json:"status"`
	MsgType     string    `json:"msg_type"`
	Urgency     string    `json:"urgency"`
	Severity    string    `json:"severity"`
	Certainty   string    `json:"certainty"`
	EffectiveAt time.Time `json:"effective_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Notification is the structured message handed to the notifier.
type Notification struct {
	ID      string
	Title   string
	Details string
}

// NotificationEvent is the record published to the optional event sink after
// each notification attempt.
type NotificationEvent struct {
	AlertID   string    `json:"alert_id"`
	Zone      string    `json:"zone"`
	Outcome   string    `json:"outcome"`
	Event     string    `json:"event"`
	Severity  string    `json:"severity"`
	Delivered bool      `json:"delivered"`
	SentAt    time.Time `json:"sent_at"`
}
