package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		Reset(SetOsFs)

		So(API().Name(), ShouldEqual, "MemMapFS")

		Convey("GacheFs writes through it", func() {
			var g GacheFs
			So(g.MkdirAll("/state/reel", 0o755), ShouldBeNil)

			f, err := g.OpenFile("/state/reel/history.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(f, "{}")
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/state/reel/history.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "{}")
		})
	})

	Convey("SetOsFs restores the native backend", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")
	})
}
