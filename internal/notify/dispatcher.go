package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/notification"
)

const (
	defaultChannelTimeout = 5 * time.Second
	defaultMaxAttempts    = 3
	defaultBackoffBase    = 250 * time.Millisecond
)

// PreferencesProvider resolves a user's per-channel opt-in flags. A
// resolution failure must degrade to defaults, not block dispatch.
type PreferencesProvider interface {
	PreferencesFor(ctx context.Context, userID string) notification.Preferences
}

// StaticPreferences is a PreferencesProvider returning the same flags for
// every user. The composition root uses it until per-user preference
// storage exists.
type StaticPreferences struct {
	Prefs notification.Preferences
}

// PreferencesFor returns the static flags.
func (p StaticPreferences) PreferencesFor(context.Context, string) notification.Preferences {
	return p.Prefs
}

// Dispatcher fans a transition event out to all eligible channels. Each
// channel runs in its own goroutine with its own timeout and retry
// budget; one channel's failure never delays or aborts another.
type Dispatcher struct {
	composer    Composer
	channels    []Channel
	prefs       PreferencesProvider
	logger      *slog.Logger
	timeout     time.Duration
	maxAttempts int
	backoffBase time.Duration
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithChannelTimeout overrides the per-channel delivery deadline.
func WithChannelTimeout(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) { dp.timeout = d }
}

// WithMaxAttempts overrides the per-channel attempt budget.
func WithMaxAttempts(n int) DispatcherOption {
	return func(dp *Dispatcher) { dp.maxAttempts = n }
}

// WithBackoffBase overrides the first retry delay. Subsequent delays double.
func WithBackoffBase(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) { dp.backoffBase = d }
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(
	composer Composer,
	channels []Channel,
	prefs PreferencesProvider,
	logger *slog.Logger,
	opts ...DispatcherOption,
) *Dispatcher {
	d := &Dispatcher{
		composer:    composer,
		channels:    channels,
		prefs:       prefs,
		logger:      logger.With("component", "notify.dispatcher"),
		timeout:     defaultChannelTimeout,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers the event on every enabled channel and reports how
// each one ended. It blocks until all channels finish; callers that must
// not wait run it in a goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, event notification.Event) notification.DispatchReport {
	report := notification.DispatchReport{
		EventType: event.Type(),
		OrderID:   event.OrderID().String(),
		UserID:    event.Recipient().UserID.String(),
	}

	if err := event.Validate(); err != nil {
		d.logger.Error("dropping invalid event", "error", err)
		return report
	}

	prefs := d.prefs.PreferencesFor(ctx, report.UserID)
	payloads := d.composer.Compose(event)

	target := Target{
		UserID:  report.UserID,
		OrderID: report.OrderID,
		Phone:   event.Recipient().Phone,
		Email:   event.Recipient().Email,
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		skipped []notification.DeliveryAttempt
	)

	for _, ch := range d.channels {
		if !prefs.Allows(ch.Name()) || !hasContact(ch.Name(), target) {
			skipped = append(skipped, notification.DeliveryAttempt{
				Channel: ch.Name(),
				Outcome: notification.OutcomeSkipped,
			})
			continue
		}

		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()

			attempt := d.deliver(ctx, ch, target, payloads.ForChannel(ch.Name()))

			mu.Lock()
			report.Attempts = append(report.Attempts, attempt)
			mu.Unlock()
		}(ch)
	}

	wg.Wait()
	report.Attempts = append(report.Attempts, skipped...)

	d.logger.Info("dispatched event",
		"event", event.Type(),
		"order_id", report.OrderID,
		"sent", report.Successes(),
		"failed", report.Failures(),
		"skipped", report.Skips(),
	)

	return report
}

// deliver runs one channel's bounded retry loop. Only transient errors
// are retried; the channel context deadline caps the whole loop.
func (d *Dispatcher) deliver(ctx context.Context, ch Channel, target Target, payload Payload) notification.DeliveryAttempt {
	chCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var lastErr error
	backoff := d.backoffBase

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		result, err := ch.Send(chCtx, target, payload)
		if err == nil {
			return notification.DeliveryAttempt{
				Channel:           ch.Name(),
				Outcome:           notification.OutcomeSent,
				Attempts:          attempt,
				ProviderMessageID: result.ProviderMessageID,
			}
		}

		lastErr = err
		if !IsTransient(err) || attempt == d.maxAttempts {
			return d.failed(ch, attempt, lastErr)
		}

		select {
		case <-chCtx.Done():
			return d.failed(ch, attempt, chCtx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return d.failed(ch, d.maxAttempts, lastErr)
}

// hasContact reports whether the target carries the contact detail the
// channel needs. A missing detail is a skip, not a failure: the event
// source simply had no address to deliver to.
func hasContact(ch notification.Channel, target Target) bool {
	switch ch {
	case notification.ChannelSMS:
		return target.Phone != ""
	case notification.ChannelEmail:
		return target.Email != ""
	default:
		return true
	}
}

func (d *Dispatcher) failed(ch Channel, attempts int, err error) notification.DeliveryAttempt {
	d.logger.Warn("channel delivery failed",
		"channel", ch.Name(),
		"attempts", attempts,
		"error", err,
	)
	return notification.DeliveryAttempt{
		Channel:  ch.Name(),
		Outcome:  notification.OutcomeFailed,
		Attempts: attempts,
		Error:    err.Error(),
	}
}
