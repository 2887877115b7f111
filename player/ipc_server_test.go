package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// ipcServer speaks just enough of the mpv JSON-IPC protocol to drive MPV in tests.
type ipcServer struct {
	socketPath string
	ln         net.Listener
	exited     chan struct{}
	quitOnce   sync.Once

	mu       sync.Mutex
	props    map[string]interface{}
	commands [][]interface{}
	watchers map[*ipcConn]map[string]int
}

type ipcConn struct {
	net.Conn
	mu sync.Mutex
}

func (c *ipcConn) send(v interface{}) {
	payload, _ := json.Marshal(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.Write(append(payload, '\n'))
}

func newIPCServer(t *testing.T) *ipcServer {
	t.Helper()

	// unix socket paths are length limited, keep it short
	dir, err := os.MkdirTemp("", "reel")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socketPath := filepath.Join(dir, "mpv.sock")
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatal(err)
	}

	s := &ipcServer{
		socketPath: socketPath,
		ln:         ln,
		exited:     make(chan struct{}),
		props: map[string]interface{}{
			"pause":            true,
			"core-idle":        true,
			"idle-active":      true,
			"paused-for-cache": false,
			"seeking":          false,
			"playlist-pos":     -1,
		},
		watchers: make(map[*ipcConn]map[string]int),
	}
	t.Cleanup(func() { _ = ln.Close() })

	go s.serve()
	return s
}

func (s *ipcServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(&ipcConn{Conn: conn})
	}
}

func (s *ipcServer) handle(conn *ipcConn) {
	defer func() {
		s.mu.Lock()
		delete(s.watchers, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil || len(req.Command) == 0 {
			continue
		}
		s.dispatch(conn, req)
	}
}

func (s *ipcServer) dispatch(conn *ipcConn, req ipcCommand) {
	s.mu.Lock()
	s.commands = append(s.commands, req.Command)
	s.mu.Unlock()

	reply := map[string]interface{}{"error": "success", "data": nil}
	if req.RequestID != 0 {
		reply["request_id"] = req.RequestID
	}

	name, _ := req.Command[0].(string)
	switch name {
	case "get_property":
		prop, _ := req.Command[1].(string)
		s.mu.Lock()
		v, ok := s.props[prop]
		s.mu.Unlock()
		if ok {
			reply["data"] = v
		} else {
			reply["error"] = "property unavailable"
		}
		conn.send(reply)

	case "set_property":
		prop, _ := req.Command[1].(string)
		conn.send(reply)
		s.set(prop, req.Command[2])

	case "observe_property":
		id, _ := req.Command[1].(float64)
		prop, _ := req.Command[2].(string)
		s.mu.Lock()
		if s.watchers[conn] == nil {
			s.watchers[conn] = make(map[string]int)
		}
		s.watchers[conn][prop] = int(id)
		v := s.props[prop]
		s.mu.Unlock()
		conn.send(reply)
		conn.send(map[string]interface{}{"event": "property-change", "id": int(id), "name": prop, "data": v})

	case "loadfile":
		// a broadcast event first, as mpv does, to exercise reply matching
		conn.send(map[string]interface{}{"event": "start-file"})
		conn.send(reply)

	case "playlist-next", "playlist-prev":
		conn.send(reply)

	case "quit":
		conn.send(reply)
		s.quitOnce.Do(func() { close(s.exited) })

	default:
		reply["error"] = "invalid parameter"
		conn.send(reply)
	}
}

// set updates a property and notifies every observer of it.
func (s *ipcServer) set(prop string, v interface{}) {
	s.mu.Lock()
	s.props[prop] = v
	type target struct {
		conn *ipcConn
		id   int
	}
	var targets []target
	for conn, watched := range s.watchers {
		if id, ok := watched[prop]; ok {
			targets = append(targets, target{conn, id})
		}
	}
	s.mu.Unlock()

	for _, t := range targets {
		t.conn.send(map[string]interface{}{"event": "property-change", "id": t.id, "name": prop, "data": v})
	}
}

func (s *ipcServer) commandNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.commands))
	for _, c := range s.commands {
		if n, ok := c[0].(string); ok {
			names = append(names, n)
		}
	}
	return names
}

func (s *ipcServer) loads() [][]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out [][]interface{}
	for _, c := range s.commands {
		if c[0] == "loadfile" {
			out = append(out, c[1:])
		}
	}
	return out
}

// eventually polls cond until it holds or a deadline passes.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
