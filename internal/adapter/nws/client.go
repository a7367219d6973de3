// Package nws fetches the NWS CAP ATOM alert feed for a single forecast
// zone or county.
package nws

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/storm-alert-notifier/internal/domain"
)

// ErrFeedUnavailable wraps every fetch failure: transport errors, non-200
// responses, and unparseable XML. It is the only pass-fatal error class.
var ErrFeedUnavailable = errors.New("alert feed unavailable")

// userAgent identifies this service to the NWS, which requires a contact
// string in automated clients.
const userAgent = "storm-alert-notifier (github.com/couchcryptid/storm-alert-notifier)"

// Client fetches and parses the zone alert feed.
// It implements pipeline.FeedSource.
type Client struct {
	baseURL    string
	zone       string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client for one zone. baseURL is the wwaatmget
// endpoint without query parameters.
func NewClient(baseURL, zone string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		zone:    zone,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs one GET of the zone feed and returns its raw entries. One
// attempt, no retries; any failure reports ErrFeedUnavailable.
func (c *Client) Fetch(ctx context.Context) (domain.Feed, error) {
	params := url.Values{
		"x": {c.zone},
		"y": {"0"},
	}
	feedURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("%w: create request: %w", ErrFeedUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/atom+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("%w: fetch zone %s: %w", ErrFeedUnavailable, c.zone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return domain.Feed{}, fmt.Errorf("%w: status %d: %s", ErrFeedUnavailable, resp.StatusCode, body)
	}

	var parsed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Feed{}, fmt.Errorf("%w: parse feed: %w", ErrFeedUnavailable, err)
	}

	feed := domain.Feed{
		ID:      parsed.ID,
		Entries: make([]domain.RawEntry, len(parsed.Entries)),
	}
	for i, e := range parsed.Entries {
		feed.Entries[i] = domain.RawEntry{
			ID:        e.ID,
			Title:     e.Title,
			Published: e.Published,
			Updated:   e.Updated,
			CAP: domain.CAPBlock{
				Event:     e.Event,
				Status:    e.Status,
				MsgType:   e.MsgType,
				Urgency:   e.Urgency,
				Severity:  e.Severity,
				Certainty: e.Certainty,
				Effective: e.Effective,
				Expires:   e.Expires,
			},
		}
	}

	c.logger.Debug("fetched alert feed", "zone", c.zone, "entries", len(feed.Entries))
	return feed, nil
}

// ATOM document types. CAP elements are matched by local name so both the
// cap 1.1 and 1.2 namespaces parse.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	ID      string      `xml:"id"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Published string `xml:"published"`
	Updated   string `xml:"updated"`
	Event     string `xml:"event"`
	Status    string `xml:"status"`
	MsgType   string `xml:"msgType"`
	Urgency   string `xml:"urgency"`
	Severity  string `xml:"severity"`
	Certainty string `xml:"certainty"`
	Effective string `xml:"effective"`
	Expires   string `xml:"expires"`
}
