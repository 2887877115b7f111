package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/media"
	"github.com/samber/mo"
)

const (
	defaultBinary       = "mpv"
	defaultStartTimeout = 3 * time.Second
	socketPollDelay     = 100 * time.Millisecond
	quitTimeout         = 3 * time.Second
)

// MPVProvider launches one mpv process per engine.
type MPVProvider struct {
	// Binary is the executable to run. Defaults to "mpv".
	Binary string
	// SocketDir is where the IPC socket is created. Defaults to os.TempDir().
	SocketDir string
	// ExtraArgs are appended verbatim after the built-in arguments.
	ExtraArgs []string
	// Window forces the video window open before the first frame.
	Window bool
	// StartTimeout bounds the wait for the IPC socket. Defaults to 3s.
	StartTimeout time.Duration
}

// Args returns the command line used to start mpv listening on socketPath.
// The engine starts idle and paused so that loading a playlist never begins playback by itself.
func (p MPVProvider) Args(socketPath string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--pause=yes",
		"--keep-open=no",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--title=%s", constant.Reel),
	}

	if p.Window {
		args = append(args, "--force-window=yes")
	}

	return append(args, p.ExtraArgs...)
}

// NewEngine starts mpv and returns once its IPC socket accepts connections.
func (p MPVProvider) NewEngine(ctx context.Context) (Engine, error) {
	binary := p.Binary
	if binary == "" {
		binary = defaultBinary
	}

	timeout := p.StartTimeout
	if timeout <= 0 {
		timeout = defaultStartTimeout
	}

	dir := p.SocketDir
	if dir == "" {
		dir = os.TempDir()
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := filepath.Join(dir, fmt.Sprintf("%s-%x.sock", constant.Reel, randomBytes))

	cmd := exec.Command(binary, p.Args(socketPath)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := waitForSocket(ctx, socketPath, exited, timeout); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing %s: socket never became ready", binary)
			_ = killProcess(cmd)
		}
		_ = os.Remove(socketPath)
		return nil, fmt.Errorf("%s socket not ready: %w", binary, err)
	}

	m := newMPV(socketPath, cmd, exited)
	if err := m.listener.Start(); err != nil {
		_ = m.Release()
		return nil, err
	}

	log.Infof("%s started on socket %s", binary, socketPath)
	return m, nil
}

// waitForSocket polls until the socket accepts connections, the process exits, or the deadline passes.
func waitForSocket(ctx context.Context, socketPath string, exited <-chan struct{}, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(socketPollDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-exited:
			return errors.New("process exited before socket was ready")
		case <-deadline.C:
			return fmt.Errorf("socket %s not ready after %s", socketPath, timeout)
		case <-ticker.C:
			conn, err := net.Dial("unix", socketPath)
			if err == nil {
				conn.Close()
				return nil
			}
		}
	}
}

// propertyCache mirrors the observed mpv properties. The event listener is its only writer.
type propertyCache struct {
	mu             sync.RWMutex
	paused         bool
	coreIdle       bool
	idleActive     bool
	pausedForCache bool
	seeking        bool
	timePos        mo.Option[float64]
	playlistPos    int
	fileFormat     string
	width          int
	height         int
}

func newPropertyCache() *propertyCache {
	return &propertyCache{
		paused:      true,
		coreIdle:    true,
		idleActive:  true,
		playlistPos: -1,
	}
}

// apply is the EventCallback feeding the cache.
func (c *propertyCache) apply(name string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case "pause":
		c.paused = asBool(data)
	case "core-idle":
		c.coreIdle = asBool(data)
	case "idle-active":
		c.idleActive = asBool(data)
	case "paused-for-cache":
		c.pausedForCache = asBool(data)
	case "seeking":
		c.seeking = asBool(data)
	case "time-pos":
		if v, ok := data.(float64); ok {
			c.timePos = mo.Some(v)
		} else {
			c.timePos = mo.None[float64]()
		}
	case "playlist-pos":
		if v, ok := data.(float64); ok {
			c.playlistPos = int(v)
		} else {
			c.playlistPos = -1
		}
	case "file-format":
		c.fileFormat, _ = data.(string)
	case "video-params/w":
		c.width = asInt(data)
	case "video-params/h":
		c.height = asInt(data)
	case "end-file":
		c.timePos = mo.None[float64]()
	}
}

func asBool(data interface{}) bool {
	b, _ := data.(bool)
	return b
}

func asInt(data interface{}) int {
	f, _ := data.(float64)
	return int(f)
}

// MPV implements Engine on top of mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener
	state      *propertyCache

	ipcMu sync.Mutex // serializes IPC commands

	mu       sync.Mutex
	playlist media.Playlist
	released bool
	prepared atomic.Bool
}

var _ Engine = (*MPV)(nil)

func newMPV(socketPath string, cmd *exec.Cmd, exited chan struct{}) *MPV {
	m := &MPV{
		socketPath: socketPath,
		cmd:        cmd,
		exited:     exited,
		state:      newPropertyCache(),
	}
	m.listener = NewEventListener(socketPath, m.state.apply)
	return m
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) SetPlaylist(playlist media.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}
	if playlist.Len() == 0 {
		return media.ErrEmptyPlaylist
	}

	m.playlist = playlist
	m.prepared.Store(false)
	return nil
}

// Prepare replaces mpv's playlist with ours, preserving order.
func (m *MPV) Prepare() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}
	if m.playlist.Len() == 0 {
		return media.ErrEmptyPlaylist
	}

	for i, uri := range m.playlist.URIs() {
		mode := "append"
		if i == 0 {
			mode = "replace"
		}

		if _, err := m.sendCommand("loadfile", uri, mode); err != nil {
			return fmt.Errorf("load %s: %w", uri, err)
		}
	}

	m.prepared.Store(true)
	return nil
}

func (m *MPV) Play() error {
	return m.directive("set_property", "pause", false)
}

func (m *MPV) Pause() error {
	return m.directive("set_property", "pause", true)
}

func (m *MPV) Next() error {
	return m.directive("playlist-next", "weak")
}

func (m *MPV) Previous() error {
	return m.directive("playlist-prev", "weak")
}

func (m *MPV) directive(command ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}

	_, err := m.sendCommand(command...)
	return err
}

// Release quits mpv, force-killing it if it does not exit in time, and removes the socket.
func (m *MPV) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}
	m.released = true

	m.listener.Stop()

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		log.Warnf("mpv did not quit within %s, killing it", quitTimeout)
		_ = killProcess(m.cmd)
	}

	if err := os.Remove(m.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove socket: %w", err)
	}

	return nil
}

func (m *MPV) IsPlaying() bool {
	c := m.state
	c.mu.RLock()
	defer c.mu.RUnlock()

	return !c.paused && !c.idleActive && !c.coreIdle && !c.pausedForCache && c.timePos.IsPresent()
}

// IsLoading reports a playing request that has not produced frames yet, or buffering.
func (m *MPV) IsLoading() bool {
	prepared := m.prepared.Load()

	c := m.state
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !prepared || c.paused || c.playlistPos < 0 {
		return false
	}
	return c.idleActive || c.coreIdle || c.pausedForCache || c.seeking || c.timePos.IsAbsent()
}

// IsPlayingAd is always false: mpv has no ad insertion.
func (m *MPV) IsPlayingAd() bool {
	return false
}

func (m *MPV) CurrentPosition() time.Duration {
	c := m.state
	c.mu.RLock()
	defer c.mu.RUnlock()

	return time.Duration(c.timePos.OrEmpty() * float64(time.Second))
}

func (m *MPV) CurrentIndex() int {
	c := m.state
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.playlistPos
}

func (m *MPV) CurrentFormat() mo.Option[media.Format] {
	c := m.state
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fileFormat == "" && c.width == 0 && c.height == 0 {
		return mo.None[media.Format]()
	}

	return mo.Some(media.Format{
		ContainerMimeType: media.MimeFromDemuxer(c.fileFormat),
		Width:             c.width,
		Height:            c.height,
	})
}

// Done is closed when the mpv process exits.
func (m *MPV) Done() <-chan struct{} {
	return m.exited
}
