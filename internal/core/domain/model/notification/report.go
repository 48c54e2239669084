package notification

// Channel identifies one independent delivery mechanism.
type Channel string

const (
	// ChannelRealtime is the in-app websocket push.
	ChannelRealtime Channel = "realtime"

	// ChannelSMS is the carrier text message.
	ChannelSMS Channel = "sms"

	// ChannelEmail is the transactional email.
	ChannelEmail Channel = "email"
)

// AllChannels lists every channel in dispatch order. The order carries no
// delivery guarantee; fan-out is concurrent.
func AllChannels() []Channel {
	return []Channel{ChannelRealtime, ChannelSMS, ChannelEmail}
}

// Outcome classifies the final result of one channel's delivery attempts.
type Outcome string

const (
	// OutcomeSent means the channel accepted the message.
	OutcomeSent Outcome = "sent"

	// OutcomeFailed means all attempts were exhausted or a terminal
	// failure occurred.
	OutcomeFailed Outcome = "failed"

	// OutcomeSkipped means the user's preferences disabled the channel or
	// the required contact detail was missing; no attempt was made.
	OutcomeSkipped Outcome = "skipped"
)

// DeliveryAttempt is the per-channel record inside a DispatchReport.
type DeliveryAttempt struct {
	Channel           Channel
	Outcome           Outcome
	Attempts          int
	ProviderMessageID string
	Error             string
}

// DispatchReport is the per-event record of which channels were attempted
// and how they ended. It exists for observability only; no caller decision
// may depend on it, because dispatch is best-effort by contract.
type DispatchReport struct {
	EventType EventType
	OrderID   string
	UserID    string
	Attempts  []DeliveryAttempt
}

// Successes counts channels that accepted the message.
func (r DispatchReport) Successes() int {
	return r.count(OutcomeSent)
}

// Failures counts channels that exhausted their attempts.
func (r DispatchReport) Failures() int {
	return r.count(OutcomeFailed)
}

// Skips counts channels that were never attempted.
func (r DispatchReport) Skips() int {
	return r.count(OutcomeSkipped)
}

func (r DispatchReport) count(outcome Outcome) int {
	n := 0
	for _, a := range r.Attempts {
		if a.Outcome == outcome {
			n++
		}
	}
	return n
}
