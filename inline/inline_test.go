package inline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/reel-cli/reel/history"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/player"
	"github.com/reel-cli/reel/screen"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// syncBuffer is written by Run while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// drive advances every engine the provider builds until ctx ends.
func drive(ctx context.Context, provider *player.FakeProvider, step time.Duration) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Millisecond):
				if f := provider.Last(); f != nil {
					f.Advance(step)
				}
			}
		}
	}()
}

func testPlaylist() media.Playlist {
	p, err := media.ParsePlaylist("https://example.com/a.mp4", "https://example.com/b.mp4", "https://example.com/c.mp4")
	if err != nil {
		panic(err)
	}
	return p
}

func TestRun(t *testing.T) {
	Convey("Given a fake engine that plays short items", t, func() {
		provider := &player.FakeProvider{Configure: func(f *player.Fake) {
			f.SetDuration("https://example.com/a.mp4", 2*time.Second)
			f.SetDuration("https://example.com/b.mp4", 2*time.Second)
			f.SetDuration("https://example.com/c.mp4", 2*time.Second)
		}}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		drive(ctx, provider, 250*time.Millisecond)

		Convey("It prints JSON status lines until the playlist ends", func() {
			var out syncBuffer
			var recorded []*history.Entry

			err := Run(ctx, &Options{
				Out:          &out,
				Provider:     provider,
				Playlist:     testPlaylist(),
				AutoStart:    true,
				Json:         true,
				ExitOnEnd:    true,
				PollInterval: 5 * time.Millisecond,
				Recorder: func(e *history.Entry) error {
					recorded = append(recorded, e)
					return nil
				},
			})
			So(err, ShouldBeNil)
			So(ctx.Err(), ShouldBeNil)

			var last screen.Status
			scanner := bufio.NewScanner(strings.NewReader(out.String()))
			lines := 0
			for scanner.Scan() {
				So(json.Unmarshal(scanner.Bytes(), &last), ShouldBeNil)
				lines++
			}
			So(lines, ShouldBeGreaterThan, 1)
			So(last.Index, ShouldEqual, 2)
			So(last.Total, ShouldEqual, 3)

			So(provider.Last().Releases(), ShouldEqual, 1)
			So(recorded, ShouldHaveLength, 1)
			So(recorded[0].Source, ShouldEqual, "https://example.com/c.mp4")
		})

		Convey("A selection narrows the playlist", func() {
			var out syncBuffer
			filter, err := ParseItemsFilter("last")
			So(err, ShouldBeNil)

			err = Run(ctx, &Options{
				Out:          &out,
				Provider:     provider,
				Playlist:     testPlaylist(),
				Items:        mo.Some(filter),
				AutoStart:    true,
				ExitOnEnd:    true,
				PollInterval: 5 * time.Millisecond,
			})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "c.mp4")
			So(out.String(), ShouldNotContainSubstring, "a.mp4")
		})

		Convey("An empty selection fails before any engine is built", func() {
			filter, err := ParseItemsFilter("@nothing@")
			So(err, ShouldBeNil)

			err = Run(ctx, &Options{Out: &syncBuffer{}, Provider: provider, Playlist: testPlaylist(), Items: mo.Some(filter)})
			So(err, ShouldNotBeNil)
			So(provider.Engines(), ShouldBeEmpty)
		})
	})

	Convey("Given a paused session", t, func() {
		provider := &player.FakeProvider{}

		Convey("It stops when the context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			var out syncBuffer
			err := Run(ctx, &Options{Out: &out, Provider: provider, Playlist: testPlaylist(), PollInterval: 5 * time.Millisecond})
			So(err, ShouldBeNil)
			So(out.String(), ShouldStartWith, "Paused a.mp4 [1/3] 0:00")
			So(provider.Last().Releases(), ShouldEqual, 1)
		})

		Convey("It stops when the engine exits", func() {
			go func() {
				for provider.Last() == nil {
					time.Sleep(time.Millisecond)
				}
				provider.Last().Terminate()
			}()

			err := Run(context.Background(), &Options{Out: &syncBuffer{}, Provider: provider, Playlist: testPlaylist(), PollInterval: 5 * time.Millisecond})
			So(err, ShouldBeNil)
		})
	})
}

func TestParseItemsFilter(t *testing.T) {
	Convey("Given three sources", t, func() {
		items := testPlaylist().Sources()
		titles := func(sources []media.Source) []string {
			out := make([]string, len(sources))
			for i, s := range sources {
				out[i] = s.Title()
			}
			return out
		}

		cases := map[string][]string{
			"first": {"a.mp4"},
			"last":  {"c.mp4"},
			"all":   {"a.mp4", "b.mp4", "c.mp4"},
			"1":     {"b.mp4"},
			"7":     {},
			"1-2":   {"b.mp4", "c.mp4"},
			"0-9":   {"a.mp4", "b.mp4", "c.mp4"},
			"@B.@":  {"b.mp4"},
		}

		for description, expected := range cases {
			filter, err := ParseItemsFilter(description)
			So(err, ShouldBeNil)
			selected, err := filter(items)
			So(err, ShouldBeNil)
			So(titles(selected), ShouldResemble, expected)
		}

		Convey("Garbage is rejected", func() {
			_, err := ParseItemsFilter("sideways")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The status schema names its fields", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "position_seconds")
	})
}
