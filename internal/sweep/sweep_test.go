package sweep

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/reel-cli/reel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSockets(t *testing.T) {
	Convey("Given a socket directory", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		dir := "/run/reel"
		So(fs.MkdirAll(dir, 0o755), ShouldBeNil)

		touch := func(name string, age time.Duration) string {
			path := filepath.Join(dir, name)
			f, err := fs.Create(path)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			stamp := time.Now().Add(-age)
			So(fs.Chtimes(path, stamp, stamp), ShouldBeNil)
			return path
		}

		stale := touch("reel-0badc0de.sock", 2*TTL)
		fresh := touch("reel-00c0ffee.sock", time.Minute)
		foreign := touch("other-1234.sock", 2*TTL)

		Convey("Only old dead engine sockets are removed", func() {
			So(Sockets(dir), ShouldEqual, 1)

			_, err := fs.Stat(stale)
			So(err, ShouldNotBeNil)
			_, err = fs.Stat(fresh)
			So(err, ShouldBeNil)
			_, err = fs.Stat(foreign)
			So(err, ShouldBeNil)
		})
	})
}
