package inline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/reel-cli/reel/screen"
	"github.com/reel-cli/reel/util"
	"golang.org/x/term"
)

// Schema describes one JSON status line.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}
	return reflector.Reflect(&screen.Status{})
}

// statusWriter prints status lines. On a terminal plain lines overwrite each other.
type statusWriter struct {
	out      io.Writer
	json     bool
	erasable bool
	last     int
}

func newStatusWriter(out io.Writer, asJson bool) *statusWriter {
	w := &statusWriter{out: out, json: asJson}
	if f, ok := out.(*os.File); ok && !asJson {
		w.erasable = term.IsTerminal(int(f.Fd()))
	}
	return w
}

func (w *statusWriter) write(status screen.Status) error {
	if w.json {
		data, err := json.Marshal(status)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w.out, string(data))
		return err
	}

	line := plainLine(status)
	if !w.erasable {
		_, err := fmt.Fprintln(w.out, line)
		return err
	}

	pad := max(w.last-len(line), 0)
	w.last = len(line)
	_, err := fmt.Fprintf(w.out, "\r%s%s", line, strings.Repeat(" ", pad))
	return err
}

// finish moves past an erasable line.
func (w *statusWriter) finish() {
	if w.erasable && w.last > 0 {
		fmt.Fprintln(w.out)
	}
}

func plainLine(status screen.Status) string {
	var b strings.Builder
	b.WriteString(status.State)

	if status.Title != "" {
		fmt.Fprintf(&b, " %s", status.Title)
	}
	if status.Total > 1 && status.Index >= 0 {
		fmt.Fprintf(&b, " [%d/%d]", status.Index+1, status.Total)
	}

	fmt.Fprintf(&b, " %s", util.FormatPosition(status.PositionDuration()))

	if status.Format != nil {
		fmt.Fprintf(&b, " %s", status.Format)
	}
	return b.String()
}
