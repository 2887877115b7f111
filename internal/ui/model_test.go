package ui

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notice model", t, func() {
		m := &Model{}

		Convey("A notice is shown and later cleared", func() {
			cmd := m.Update(Notify("paused")())
			So(cmd, ShouldNotBeNil)
			So(m.Notice(), ShouldEqual, "paused")

			m.Update(ClearNoticeMsg{at: m.notifiedAt})
			So(m.Notice(), ShouldBeEmpty)
		})

		Convey("A stale clear keeps a newer notice", func() {
			m.Update(NoticeMsg("first"))
			stale := ClearNoticeMsg{at: m.notifiedAt.Add(-time.Second)}
			m.Update(NoticeMsg("second"))
			m.Update(stale)
			So(m.Notice(), ShouldEqual, "second")
		})
	})
}
