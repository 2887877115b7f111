package player

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/reel-cli/reel/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMPVProviderArgs(t *testing.T) {
	Convey("Given an MPV provider", t, func() {
		p := MPVProvider{Window: true, ExtraArgs: []string{"--mute=yes"}}

		Convey("Args should start idle and paused on the given socket", func() {
			args := p.Args("/tmp/reel-x.sock")
			So(args, ShouldContain, "--idle=yes")
			So(args, ShouldContain, "--pause=yes")
			So(args, ShouldContain, "--input-ipc-server=/tmp/reel-x.sock")
			So(args, ShouldContain, "--force-window=yes")
			So(args[len(args)-1], ShouldEqual, "--mute=yes")
		})

		Convey("Args should not force a window unless asked", func() {
			So(MPVProvider{}.Args("/tmp/s"), ShouldNotContain, "--force-window=yes")
		})
	})
}

func TestMPVProviderFailure(t *testing.T) {
	Convey("Given a missing engine binary", t, func() {
		p := MPVProvider{Binary: "/nonexistent/reel-test-mpv", SocketDir: os.TempDir()}

		Convey("NewEngine should fail without returning an engine", func() {
			e, err := p.NewEngine(context.Background())
			So(err, ShouldNotBeNil)
			So(e, ShouldBeNil)
		})
	})

	Convey("waitForSocket", t, func() {
		Convey("Should fail once the process has exited", func() {
			exited := make(chan struct{})
			close(exited)
			err := waitForSocket(context.Background(), "/nonexistent.sock", exited, time.Second)
			So(err, ShouldNotBeNil)
		})

		Convey("Should honour context cancellation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := waitForSocket(ctx, "/nonexistent.sock", make(chan struct{}), time.Second)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Should time out", func() {
			err := waitForSocket(context.Background(), "/nonexistent.sock", make(chan struct{}), 150*time.Millisecond)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMPV(t *testing.T) {
	Convey("Given an MPV engine attached to an IPC server", t, func() {
		srv := newIPCServer(t)
		m := newMPV(srv.socketPath, nil, srv.exited)
		So(m.listener.Start(), ShouldBeNil)
		Reset(m.listener.Stop)

		playlist, err := media.ParsePlaylist("https://example.com/a.mkv", "https://example.com/b.mkv")
		So(err, ShouldBeNil)

		Convey("It starts idle", func() {
			So(m.IsPlaying(), ShouldBeFalse)
			So(m.IsLoading(), ShouldBeFalse)
			So(m.IsPlayingAd(), ShouldBeFalse)
			So(m.CurrentFormat().IsAbsent(), ShouldBeTrue)
		})

		Convey("Prepare loads every source in order", func() {
			So(m.SetPlaylist(playlist), ShouldBeNil)
			So(m.Prepare(), ShouldBeNil)

			loads := srv.loads()
			So(loads, ShouldHaveLength, 2)
			So(loads[0], ShouldResemble, []interface{}{"https://example.com/a.mkv", "replace"})
			So(loads[1], ShouldResemble, []interface{}{"https://example.com/b.mkv", "append"})
			So(m.IsPlaying(), ShouldBeFalse)
		})

		Convey("Prepare without a playlist fails", func() {
			So(errors.Is(m.Prepare(), media.ErrEmptyPlaylist), ShouldBeTrue)
		})

		Convey("Play and Pause drive the pause property", func() {
			So(m.SetPlaylist(playlist), ShouldBeNil)
			So(m.Prepare(), ShouldBeNil)
			srv.set("idle-active", false)
			srv.set("playlist-pos", 0)

			So(m.Play(), ShouldBeNil)
			So(eventually(m.IsLoading), ShouldBeTrue)

			srv.set("core-idle", false)
			srv.set("time-pos", 1.5)
			So(eventually(m.IsPlaying), ShouldBeTrue)
			So(m.IsLoading(), ShouldBeFalse)
			So(m.CurrentPosition(), ShouldEqual, 1500*time.Millisecond)
			So(m.CurrentIndex(), ShouldEqual, 0)

			So(m.Pause(), ShouldBeNil)
			So(eventually(func() bool { return !m.IsPlaying() }), ShouldBeTrue)

			Convey("Playing twice is harmless", func() {
				So(m.Play(), ShouldBeNil)
				So(m.Play(), ShouldBeNil)
				So(eventually(m.IsPlaying), ShouldBeTrue)
			})
		})

		Convey("Buffering reads as loading", func() {
			So(m.SetPlaylist(playlist), ShouldBeNil)
			So(m.Prepare(), ShouldBeNil)
			srv.set("idle-active", false)
			srv.set("playlist-pos", 0)
			srv.set("core-idle", false)
			srv.set("time-pos", 3.0)
			So(m.Play(), ShouldBeNil)
			So(eventually(m.IsPlaying), ShouldBeTrue)

			srv.set("paused-for-cache", true)
			So(eventually(m.IsLoading), ShouldBeTrue)
			So(m.IsPlaying(), ShouldBeFalse)
		})

		Convey("Format reflects the observed video parameters", func() {
			srv.set("file-format", "matroska,webm")
			srv.set("video-params/w", 960)
			srv.set("video-params/h", 540)

			So(eventually(func() bool { return m.CurrentFormat().OrEmpty().Height == 540 }), ShouldBeTrue)
			So(m.CurrentFormat().MustGet(), ShouldResemble, media.Format{
				ContainerMimeType: "video/x-matroska",
				Width:             960,
				Height:            540,
			})
		})

		Convey("Playlist position follows the engine", func() {
			srv.set("playlist-pos", 1)
			So(eventually(func() bool { return m.CurrentIndex() == 1 }), ShouldBeTrue)
		})

		Convey("Skip directives are forwarded", func() {
			So(m.Next(), ShouldBeNil)
			So(m.Previous(), ShouldBeNil)
			So(srv.commandNames(), ShouldContain, "playlist-next")
			So(srv.commandNames(), ShouldContain, "playlist-prev")
		})

		Convey("Unknown properties surface as unavailable", func() {
			_, err := m.sendCommand("get_property", "does-not-exist")
			So(errors.Is(err, errPropertyUnavailable), ShouldBeTrue)
		})

		Convey("Release quits the engine and refuses further directives", func() {
			So(m.Release(), ShouldBeNil)
			So(srv.commandNames(), ShouldContain, "quit")

			select {
			case <-m.Done():
			case <-time.After(time.Second):
				t.Fatal("engine did not report exit")
			}

			So(errors.Is(m.Play(), ErrReleased), ShouldBeTrue)
			So(errors.Is(m.Release(), ErrReleased), ShouldBeTrue)

			_, err := os.Stat(srv.socketPath)
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})
}

func TestPropertyCache(t *testing.T) {
	Convey("Given a fresh property cache", t, func() {
		c := newPropertyCache()

		Convey("time-pos becomes absent on null and end-file", func() {
			c.apply("time-pos", 4.0)
			So(c.timePos.MustGet(), ShouldEqual, 4.0)
			c.apply("time-pos", nil)
			So(c.timePos.IsAbsent(), ShouldBeTrue)

			c.apply("time-pos", 2.0)
			c.apply("end-file", nil)
			So(c.timePos.IsAbsent(), ShouldBeTrue)
		})

		Convey("playlist-pos falls back to -1", func() {
			c.apply("playlist-pos", 2.0)
			So(c.playlistPos, ShouldEqual, 2)
			c.apply("playlist-pos", nil)
			So(c.playlistPos, ShouldEqual, -1)
		})

		Convey("Unexpected payload types are read as zero values", func() {
			c.apply("pause", "yes")
			So(c.paused, ShouldBeFalse)
			c.apply("video-params/w", "wide")
			So(c.width, ShouldEqual, 0)
		})
	})
}
