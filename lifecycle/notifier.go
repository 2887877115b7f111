package lifecycle

import (
	"sync"

	"github.com/reel-cli/reel/log"
)

// Notifier is the in-process host notifier.
// Events are delivered synchronously, in subscription order, one at a time.
type Notifier struct {
	// deliver serializes Publish against Unsubscribe so that an observer
	// is never running once its Unsubscribe has returned.
	deliver sync.Mutex

	mu        sync.Mutex
	state     State
	nextID    int
	observers []subscriber
	closed    bool
}

type subscriber struct {
	id       int
	observer Observer
}

var _ Owner = (*Notifier)(nil)

// NewNotifier returns a notifier in the foreground state.
func NewNotifier() *Notifier {
	return &Notifier{state: StateForeground}
}

// Subscribe registers o. Subscribing to a closed notifier yields a subscription that never fires.
func (n *Notifier) Subscribe(o Observer) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	sub := &subscription{notifier: n, id: n.nextID}
	if n.closed || o == nil {
		return sub
	}

	n.observers = append(n.observers, subscriber{id: sub.id, observer: o})
	return sub
}

// Publish updates the tracked state and delivers e to every observer.
// Other leaves the state unchanged.
func (n *Notifier) Publish(e Event) {
	n.deliver.Lock()
	defer n.deliver.Unlock()

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	switch e {
	case Foregrounded:
		n.state = StateForeground
	case Backgrounded:
		n.state = StateBackground
	}
	observers := append([]subscriber(nil), n.observers...)
	n.mu.Unlock()

	log.Debugf("lifecycle event %s delivered to %d observers", e, len(observers))

	for _, s := range observers {
		if n.subscribed(s.id) {
			s.observer(e)
		}
	}
}

// State returns the current host state.
func (n *Notifier) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Close drops every subscriber. Later publishes are ignored.
func (n *Notifier) Close() {
	n.deliver.Lock()
	defer n.deliver.Unlock()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.observers = nil
}

func (n *Notifier) subscribed(id int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.observers {
		if s.id == id {
			return true
		}
	}
	return false
}

func (n *Notifier) remove(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.observers {
		if s.id == id {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

type subscription struct {
	notifier *Notifier
	id       int
	once     sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.deliver.Lock()
		defer s.notifier.deliver.Unlock()
		s.notifier.remove(s.id)
	})
}
