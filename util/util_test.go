package util

import (
	"testing"
	"time"

	"github.com/reel-cli/reel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "source", "sources"), ShouldEqual, "1 source")
		So(Quantify(2, "source", "sources"), ShouldEqual, "2 sources")
		So(Quantify(0, "source", "sources"), ShouldEqual, "0 sources")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 3), ShouldEqual, 3)
		So(Clamp(-1, 0, 3), ShouldEqual, 0)
		So(Clamp(0.5, 0.0, 1.0), ShouldEqual, 0.5)
	})
}

func TestMillis(t *testing.T) {
	Convey("Millis", t, func() {
		So(Millis(250, time.Second), ShouldEqual, 250*time.Millisecond)
		So(Millis(0, time.Second), ShouldEqual, time.Second)
		So(Millis(-3, time.Second), ShouldEqual, time.Second)
	})
}

func TestFormatPosition(t *testing.T) {
	Convey("FormatPosition", t, func() {
		So(FormatPosition(0), ShouldEqual, "0:00")
		So(FormatPosition(65*time.Second+400*time.Millisecond), ShouldEqual, "1:05")
		So(FormatPosition(time.Hour+2*time.Minute+3*time.Second), ShouldEqual, "1:02:03")
		So(FormatPosition(-time.Second), ShouldEqual, "0:00")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory tree", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/reel/sub", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/reel/sub/a.sock", []byte("x"), 0o644), ShouldBeNil)

		Convey("Deleting a directory removes the whole tree", func() {
			So(Delete("/tmp/reel"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/reel/sub/a.sock")
			So(exists, ShouldBeFalse)
		})

		Convey("Deleting a missing path fails", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
