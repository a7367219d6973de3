// Package shoutrrr delivers alert notifications to a webhook target through
// the shoutrrr service router. The notification URL carries both the target
// identifier and its credential, e.g. discord://token@channel.
package shoutrrr

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	shoutrrrlib "github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/couchcryptid/storm-alert-notifier/internal/domain"
)

// Notifier sends one message per call with no retries.
// It implements pipeline.Notifier.
type Notifier struct {
	sender *router.ServiceRouter
	logger *slog.Logger
}

// NewNotifier builds a Notifier from a shoutrrr URL. The URL is validated up
// front so a bad credential fails at startup rather than mid-pass.
func NewNotifier(rawURL string, timeout time.Duration, logger *slog.Logger) (*Notifier, error) {
	sender, err := shoutrrrlib.CreateSender(rawURL)
	if err != nil {
		return nil, fmt.Errorf("create notification sender: %w", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	// The router logs URLs which may embed credentials; keep it quiet.
	sender.SetLogger(log.New(io.Discard, "", 0))

	return &Notifier{sender: sender, logger: logger}, nil
}

// Send attempts delivery of one notification. A failure is terminal for this
// message; the caller decides whether it matters.
func (n *Notifier) Send(_ context.Context, msg domain.Notification) error {
	params := types.Params{}
	if msg.Title != "" {
		params.SetTitle(msg.Title)
	}

	errs := n.sender.Send(msg.Details, &params)
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("send notification for %s: %w", msg.ID, err)
		}
	}

	n.logger.Debug("notification delivered", "alert_id", msg.ID)
	return nil
}
