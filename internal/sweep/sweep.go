// Package sweep removes engine sockets left behind by players that did not shut down cleanly.
package sweep

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/log"
	"github.com/spf13/afero"
)

// TTL is the minimum age of a socket before it is considered for removal.
const TTL = time.Hour

// Sockets removes stale engine sockets in dir. A socket is stale once it is
// older than TTL and nothing accepts connections on it anymore.
func Sockets(dir string) int {
	var removed int

	_ = afero.Walk(filesystem.API(), dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !isEngineSocket(info.Name()) || time.Since(info.ModTime()) < TTL {
			return nil
		}
		if alive(path) {
			return nil
		}

		if err := filesystem.API().Remove(path); err == nil {
			removed++
		}
		return nil
	})

	if removed > 0 {
		log.Infof("removed %d stale engine sockets from %s", removed, dir)
	}
	return removed
}

func isEngineSocket(name string) bool {
	return strings.HasPrefix(name, constant.Reel+"-") && filepath.Ext(name) == ".sock"
}

func alive(path string) bool {
	conn, err := net.DialTimeout("unix", path, 100*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
