package player

import (
	"context"
	"sync"
	"time"

	"github.com/reel-cli/reel/media"
	"github.com/samber/mo"
)

// DefaultFakeDuration is the length of a source with no duration configured.
const DefaultFakeDuration = 10 * time.Second

// Fake is an in-memory Engine driven by a virtual clock.
// Nothing happens between directives until Advance is called.
type Fake struct {
	mu sync.Mutex

	playlist      media.Playlist
	durations     map[string]time.Duration
	formats       map[string]media.Format
	failures      map[string]error
	loadDelay     time.Duration
	playingAd     bool
	prepared      bool
	playWhenReady bool
	ended         bool
	index         int
	position      time.Duration
	loadingLeft   time.Duration
	releases      int
	calls         []string
	done          chan struct{}
	doneOnce      sync.Once
}

var _ Engine = (*Fake)(nil)

// NewFake returns an idle fake engine.
func NewFake() *Fake {
	return &Fake{
		durations: make(map[string]time.Duration),
		formats:   make(map[string]media.Format),
		failures:  make(map[string]error),
		index:     -1,
		done:      make(chan struct{}),
	}
}

// SetDuration sets how long the source with the given URI plays.
func (f *Fake) SetDuration(uri string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.durations[uri] = d
}

// SetFormat sets the format reported while the source with the given URI is current.
func (f *Fake) SetFormat(uri string, format media.Format) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formats[uri] = format
}

// SetLoadDelay sets how much virtual time each item buffers before it plays.
func (f *Fake) SetLoadDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadDelay = d
}

// SetPlayingAd toggles the reported ad state.
func (f *Fake) SetPlayingAd(ad bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playingAd = ad
}

// FailOn makes the named directive ("prepare", "play", ...) return err.
func (f *Fake) FailOn(directive string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[directive] = err
}

// record must be called with mu held.
func (f *Fake) record(directive string) error {
	f.calls = append(f.calls, directive)
	if f.releases > 0 {
		return ErrReleased
	}
	return f.failures[directive]
}

func (f *Fake) SetPlaylist(playlist media.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("set_playlist"); err != nil {
		return err
	}
	if playlist.Len() == 0 {
		return media.ErrEmptyPlaylist
	}

	f.playlist = playlist
	f.prepared = false
	return nil
}

func (f *Fake) Prepare() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("prepare"); err != nil {
		return err
	}
	if f.playlist.Len() == 0 {
		return media.ErrEmptyPlaylist
	}

	f.prepared = true
	f.ended = false
	f.startItem(0)
	return nil
}

func (f *Fake) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("play"); err != nil {
		return err
	}
	f.playWhenReady = true
	return nil
}

func (f *Fake) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("pause"); err != nil {
		return err
	}
	f.playWhenReady = false
	return nil
}

func (f *Fake) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("next"); err != nil {
		return err
	}
	if f.prepared && f.index < f.playlist.Len()-1 {
		f.startItem(f.index + 1)
	}
	return nil
}

func (f *Fake) Previous() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("previous"); err != nil {
		return err
	}
	if !f.prepared {
		return nil
	}
	if f.index > 0 {
		f.startItem(f.index - 1)
	} else {
		f.startItem(0)
	}
	return nil
}

func (f *Fake) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("release"); err != nil {
		return err
	}
	f.releases++
	f.prepared = false
	f.playWhenReady = false
	return nil
}

// startItem must be called with mu held.
func (f *Fake) startItem(i int) {
	f.index = i
	f.position = 0
	f.loadingLeft = f.loadDelay
	f.ended = false
}

func (f *Fake) duration(i int) time.Duration {
	s, ok := f.playlist.At(i)
	if !ok {
		return 0
	}
	if d, ok := f.durations[s.URI()]; ok {
		return d
	}
	return DefaultFakeDuration
}

// Advance moves the virtual clock forward. Finished items roll over to the
// next one in playlist order; the last one ends playback.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for d > 0 && f.prepared && f.playWhenReady && !f.ended && f.releases == 0 {
		if f.loadingLeft > 0 {
			step := min(d, f.loadingLeft)
			f.loadingLeft -= step
			d -= step
			continue
		}

		remaining := f.duration(f.index) - f.position
		if d < remaining {
			f.position += d
			return
		}

		d -= remaining
		if f.index >= f.playlist.Len()-1 {
			f.position = f.duration(f.index)
			f.ended = true
			return
		}
		f.startItem(f.index + 1)
	}
}

// Terminate simulates the engine exiting on its own.
func (f *Fake) Terminate() {
	f.doneOnce.Do(func() { close(f.done) })
}

func (f *Fake) IsPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prepared && f.playWhenReady && !f.ended && f.loadingLeft == 0
}

func (f *Fake) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prepared && f.playWhenReady && !f.ended && f.loadingLeft > 0
}

func (f *Fake) IsPlayingAd() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prepared && f.playingAd
}

// Ended reports whether the last item finished.
func (f *Fake) Ended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ended
}

func (f *Fake) CurrentPosition() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *Fake) CurrentIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index
}

func (f *Fake) CurrentFormat() mo.Option[media.Format] {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.playlist.At(f.index)
	if !ok || !f.prepared {
		return mo.None[media.Format]()
	}

	format, ok := f.formats[s.URI()]
	if !ok {
		return mo.None[media.Format]()
	}
	return mo.Some(format)
}

func (f *Fake) Done() <-chan struct{} {
	return f.done
}

// Calls returns every directive received, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Releases returns how many times Release took effect. Repeated attempts show up in Calls.
func (f *Fake) Releases() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releases
}

// FakeProvider hands out Fake engines and remembers them.
type FakeProvider struct {
	mu sync.Mutex

	// Err, when set, makes NewEngine fail.
	Err error
	// Configure, when set, runs on every new engine before it is returned.
	Configure func(*Fake)

	engines []*Fake
}

var _ Provider = (*FakeProvider)(nil)

func (p *FakeProvider) NewEngine(ctx context.Context) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}

	f := NewFake()
	if p.Configure != nil {
		p.Configure(f)
	}
	p.engines = append(p.engines, f)
	return f, nil
}

// Engines returns every engine constructed so far.
func (p *FakeProvider) Engines() []*Fake {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Fake(nil), p.engines...)
}

// Last returns the most recently constructed engine, or nil.
func (p *FakeProvider) Last() *Fake {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.engines) == 0 {
		return nil
	}
	return p.engines[len(p.engines)-1]
}
