package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/media"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an entry for a remote source", t, func() {
		So(Clear(), ShouldBeNil)

		source := media.MustParseSource("https://example.com/videos/intro.mkv")
		entry := NewEntry(source, 0, 2, 90*time.Second)

		Convey("When saving it", func() {
			So(Save(entry), ShouldBeNil)

			Convey("Then it is stored under its URI", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldContainKey, source.URI())
				So(saved[source.URI()].Title, ShouldEqual, "intro.mkv")
				So(saved[source.URI()].Position(), ShouldEqual, 90*time.Second)
			})

			Convey("Then Lookup finds it", func() {
				found, err := Lookup(source.URI())
				So(err, ShouldBeNil)
				So(found.MustGet().Index, ShouldEqual, 0)
			})

			Convey("And saving again replaces it", func() {
				So(Save(NewEntry(source, 1, 2, time.Second)), ShouldBeNil)
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldHaveLength, 1)
				So(saved[source.URI()].Index, ShouldEqual, 1)
			})

			Convey("And removing it forgets it", func() {
				So(Remove(source.URI()), ShouldBeNil)
				found, err := Lookup(source.URI())
				So(err, ShouldBeNil)
				So(found.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("List puts the newest entry first", func() {
			older := NewEntry(media.MustParseSource("/tmp/old.mp4"), 0, 1, 0)
			older.UpdatedAt = time.Now().Add(-time.Hour)
			So(Save(older), ShouldBeNil)
			So(Save(entry), ShouldBeNil)

			entries, err := List()
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Source, ShouldEqual, entry.Source)
		})

		Convey("Find matches titles fuzzily", func() {
			So(Save(NewEntry(media.MustParseSource("/tmp/Ocean Documentary.mp4"), 0, 1, 0)), ShouldBeNil)
			So(Save(entry), ShouldBeNil)

			found, err := Find("ocndoc")
			So(err, ShouldBeNil)
			So(found, ShouldHaveLength, 1)
			So(found[0].Title, ShouldEqual, "Ocean Documentary.mp4")

			found, err = Find("example.com")
			So(err, ShouldBeNil)
			So(found, ShouldHaveLength, 1)
			So(found[0].Source, ShouldEqual, entry.Source)
		})

		Convey("Relative local sources are stored as absolute paths", func() {
			relative := NewEntry(media.MustParseSource("clips/talk.mkv"), 0, 1, time.Minute)
			So(Save(relative), ShouldBeNil)

			So(filepath.IsAbs(relative.Source), ShouldBeTrue)
			So(relative.Source, ShouldEndWith, filepath.Join("clips", "talk.mkv"))

			found, err := Lookup(relative.Source)
			So(err, ShouldBeNil)
			So(found.IsPresent(), ShouldBeTrue)
		})

		Convey("Entries without a source are rejected", func() {
			So(Save(&Entry{}), ShouldEqual, ErrNoSource)
			So(Save(nil), ShouldEqual, ErrNoSource)
		})

		Convey("String shows a one-based index", func() {
			So(entry.String(), ShouldEqual, "intro.mkv : 1 / 2 at 1:30")
		})
	})
}
