package lifecycle

import (
	"sync"

	"github.com/reel-cli/reel/log"
	"github.com/sirupsen/logrus"
)

// Controller is the playback target driven by a Bridge.
type Controller interface {
	Play() error
	Pause() error
}

// Bridge pauses its target when the owner is backgrounded and resumes it when foregrounded.
type Bridge struct {
	target Controller
	sub    Subscription
	once   sync.Once
}

// Attach subscribes a new bridge for target to owner.
func Attach(target Controller, owner Owner) *Bridge {
	b := &Bridge{target: target}
	b.sub = owner.Subscribe(b.handle)
	return b
}

func (b *Bridge) handle(e Event) {
	var err error
	switch e {
	case Backgrounded:
		err = b.target.Pause()
	case Foregrounded:
		err = b.target.Play()
	default:
		return
	}

	// a transition raced the release of the target; the owner should have detached first
	if err != nil {
		log.WithFields(logrus.Fields{"event": e.String()}).Errorf("lifecycle directive after target shutdown: %v", err)
	}
}

// Detach unsubscribes the bridge. No directive is issued once it returns.
func (b *Bridge) Detach() {
	b.once.Do(b.sub.Unsubscribe)
}
