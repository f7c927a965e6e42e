package watch

// State tracks one project's change-detection status across ticks.
type State struct {
	// LastFingerprint is the most recently observed fingerprint; empty
	// until the first scan has been recorded.
	LastFingerprint Fingerprint
	// Notified reports whether a notification has already fired for the
	// current value of LastFingerprint.
	Notified bool
}

// Advance folds a fresh fingerprint into the state and reports whether the
// caller should consider notifying on this tick.
//
// The first observation only records a baseline: nothing has changed
// relative to anything previously seen, so it never notifies. An unchanged
// fingerprint keeps asking until a notification actually fires. A changed
// fingerprint starts a new dirty period and re-arms the notification.
func Advance(s State, fp Fingerprint) (State, bool) {
	switch {
	case s.LastFingerprint == "":
		return State{LastFingerprint: fp}, false
	case fp == s.LastFingerprint:
		return s, !s.Notified
	default:
		return State{LastFingerprint: fp}, true
	}
}
