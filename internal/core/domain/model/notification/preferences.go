package notification

// Preferences are a user's per-channel opt-in flags. A disabled channel is
// skipped outright, never attempted.
type Preferences struct {
	RealtimeEnabled bool
	SMSEnabled      bool
	EmailEnabled    bool
}

// DefaultPreferences opts a user into every channel. Used when no stored
// preference row exists.
func DefaultPreferences() Preferences {
	return Preferences{RealtimeEnabled: true, SMSEnabled: true, EmailEnabled: true}
}

// Allows reports whether the given channel is enabled.
func (p Preferences) Allows(ch Channel) bool {
	switch ch {
	case ChannelRealtime:
		return p.RealtimeEnabled
	case ChannelSMS:
		return p.SMSEnabled
	case ChannelEmail:
		return p.EmailEnabled
	default:
		return false
	}
}
