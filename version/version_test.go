package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare orders semantic versions", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"0.35.1", "0.33.0", 1},
			{"v0.33.0", "0.33.0", 0},
			{"0.32.9", "0.33.0", -1},
			{"1.0.0", "0.99.99", 1},
			{"0.35.1-dirty", "0.35.1", 0},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		Convey("Garbage is an error", func() {
			_, err := Compare("latest", "0.33.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse reads engine version banners", t, func() {
		v, err := Parse("mpv 0.37.0 Copyright © 2000-2023 mpv/MPlayer/mplayer2 projects\n built on ...")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "0.37.0")

		v, err = Parse("mpv v0.35.1-dirty")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "0.35.1")

		_, err = Parse("mpv git-master")
		So(err, ShouldEqual, ErrNoVersion)
	})
}
