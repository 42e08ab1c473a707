package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
)

// ErrUnknownChannel is returned when a requested channel has no notifier.
var ErrUnknownChannel = errors.New("notification channel is not supported")

// Dispatcher routes notification messages to configured channel notifiers.
type Dispatcher struct {
	notifiers       map[string]port.Notifier
	defaultChannels []string
	log             *slog.Logger
}

var _ port.NotificationDispatcher = (*Dispatcher)(nil)

// NewDispatcher builds a dispatcher over notifiers, keyed by their Name.
func NewDispatcher(defaultChannels []string, log *slog.Logger, notifiers ...port.Notifier) *Dispatcher {
	d := &Dispatcher{
		notifiers: make(map[string]port.Notifier, len(notifiers)),
		log:       log,
	}
	for _, n := range notifiers {
		if n != nil {
			d.notifiers[strings.ToLower(n.Name())] = n
		}
	}
	for _, ch := range defaultChannels {
		if ch = normalizeChannel(ch); ch != "" {
			d.defaultChannels = append(d.defaultChannels, ch)
		}
	}
	return d
}

// Channels lists the configured channel names in sorted order.
func (d *Dispatcher) Channels() []string {
	out := make([]string, 0, len(d.notifiers))
	for name := range d.notifiers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// DefaultChannels lists the channels used when Dispatch names none.
func (d *Dispatcher) DefaultChannels() []string {
	return slices.Clone(d.defaultChannels)
}

// Dispatch delivers msg to the requested channels, or to the default channels when omitted.
// Channels are notified concurrently; every failure is returned, joined.
func (d *Dispatcher) Dispatch(ctx context.Context, msg port.NotificationMessage, channels ...string) error {
	if len(channels) == 0 {
		channels = d.defaultChannels
	}
	targets, err := d.resolve(channels)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		logger.From(ctx, d.log).Warn("no notification channels selected", slog.String("event", msg.Event))
		return nil
	}

	errs := make([]error, len(targets))
	var g errgroup.Group
	for i, n := range targets {
		g.Go(func() error {
			if err := n.Notify(ctx, msg); err != nil {
				errs[i] = fmt.Errorf("send via %s: %w", n.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (d *Dispatcher) resolve(channels []string) ([]port.Notifier, error) {
	seen := make(map[string]bool, len(channels))
	out := make([]port.Notifier, 0, len(channels))
	for _, ch := range channels {
		ch = normalizeChannel(ch)
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		n, ok := d.notifiers[ch]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
		}
		out = append(out, n)
	}
	return out, nil
}

func normalizeChannel(ch string) string {
	return strings.ToLower(strings.TrimSpace(ch))
}
