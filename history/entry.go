package history

import (
	"fmt"
	"time"

	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/util"
)

// Entry is the last known position within one source.
type Entry struct {
	Source          string    `json:"source"`
	Title           string    `json:"title"`
	Index           int       `json:"index"`
	Total           int       `json:"total"`
	PositionSeconds float64   `json:"position_seconds"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewEntry records position within the item at index of a playlist of total items.
func NewEntry(source media.Source, index, total int, position time.Duration) *Entry {
	return &Entry{
		Source:          source.URI(),
		Title:           source.Title(),
		Index:           index,
		Total:           total,
		PositionSeconds: position.Seconds(),
		UpdatedAt:       time.Now(),
	}
}

// Position returns the stored position as a duration.
func (e *Entry) Position() time.Duration {
	return time.Duration(e.PositionSeconds * float64(time.Second))
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %d / %d at %s", e.Title, e.Index+1, e.Total, util.FormatPosition(e.Position()))
}
