package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/reel-cli/reel/log"
)

// EventCallback receives mpv property changes and named events.
// For events that are not property changes, data is nil.
type EventCallback func(name string, data interface{})

// observedProperties are the properties mirrored into the engine state cache.
var observedProperties = []string{
	"pause",
	"core-idle",
	"idle-active",
	"paused-for-cache",
	"seeking",
	"time-pos",
	"playlist-pos",
	"file-format",
	"video-params/w",
	"video-params/h",
}

// EventListener keeps one persistent IPC connection open and dispatches
// property-change notifications to its callback from a single goroutine.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start subscribes to the observed properties and begins the read loop.
// observe_property is bound to the connection it is sent on, so it goes over the persistent one.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observedProperties {
		if err := writeCommand(conn, ipcCommand{Command: []interface{}{"observe_property", i + 1, name}}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	_ = conn.Close()
	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	el.mu.Lock()
	stopped := !el.listening
	el.listening = false
	el.mu.Unlock()

	if err := scanner.Err(); err != nil && !stopped {
		log.Warnf("event listener read error: %v", err)
	}
}

// processEvent parses and dispatches a single JSON line.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil || el.callback == nil {
		return
	}

	switch msg.Event {
	case "":
		// reply to one of our observe_property commands
	case "property-change":
		if msg.Name != "" {
			el.callback(msg.Name, msg.Data)
		}
	default:
		el.callback(msg.Event, nil)
	}
}
