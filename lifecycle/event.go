// Package lifecycle forwards host foreground and background transitions to a playback target.
package lifecycle

// Event is a host lifecycle transition.
type Event int

const (
	// Other is any transition the bridge does not act on.
	Other Event = iota
	Foregrounded
	Backgrounded
)

func (e Event) String() string {
	switch e {
	case Foregrounded:
		return "foregrounded"
	case Backgrounded:
		return "backgrounded"
	default:
		return "other"
	}
}

// State is the host's current visibility.
type State int

const (
	StateForeground State = iota
	StateBackground
)

func (s State) String() string {
	if s == StateBackground {
		return "background"
	}
	return "foreground"
}

// Observer receives lifecycle events.
type Observer func(Event)

// Subscription is the handle returned by Owner.Subscribe.
type Subscription interface {
	// Unsubscribe is idempotent. Once it returns the observer is never called again.
	// It must not be called from inside the observer itself.
	Unsubscribe()
}

// Owner is a scope that publishes lifecycle events.
type Owner interface {
	Subscribe(Observer) Subscription
}
