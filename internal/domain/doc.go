// Package domain models National Weather Service (NWS) CAP alerts for a
// single forecast zone.
//
// # Data Source
//
// Alerts originate from the NWS alert feed at alerts.weather.gov, which
// publishes an ATOM document per zone or county. Each entry embeds a block of
// Common Alerting Protocol (CAP) elements: event, status, msgType, urgency,
// severity, certainty, effective, expires. Both CAP 1.1 and 1.2 namespaces
// appear in the wild; fields are matched by local name only.
//
// # Feed Conventions
//
// Entry identifiers:
//
//	Real alerts carry a stable URL-shaped id unique to the alert. When a zone
//	has no active alerts, the feed contains exactly one placeholder entry
//	whose id equals the feed's own URL ("There are no active watches,
//	warnings or advisories"). Callers detect this by comparing the entry id
//	against the feed-level id.
//
// Timestamps:
//
//	RFC 3339 with a numeric zone offset, e.g. "2024-04-26T15:10:00-05:00".
//	Malformed or absent timestamps normalize to the zero time rather than
//	failing the entry; a zero expiry classifies as already expired and a zero
//	updated time sorts first for eviction.
//
// CAP enumerations (values are case-sensitive, as published):
//
//	status:    Actual, Exercise, System, Test, Draft
//	msgType:   Alert, Update, Cancel, Ack, Error
//	urgency:   Immediate, Expected, Future, Past, Unknown
//	severity:  Extreme, Severe, Moderate, Minor, Unknown
//	certainty: Observed, Likely, Possible, Unlikely, Unknown
//
// # Importance
//
// A Policy maps CAP field names to allowed value sets. An alert is important
// when every configured field's value is a member of its set and the alert
// has not yet expired. The default policy admits actual alerts and updates of
// at least Moderate severity whose urgency and certainty are not merely
// speculative. See [IsImportant].
package domain
