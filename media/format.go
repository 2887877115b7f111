package media

import (
	"fmt"
	"strings"
)

// Format describes the video track currently being rendered.
type Format struct {
	ContainerMimeType string `json:"container_mime_type" jsonschema:"description=Container MIME type reported by the engine."`
	Width             int    `json:"width" jsonschema:"description=Video width in pixels."`
	Height            int    `json:"height" jsonschema:"description=Video height in pixels."`
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dx%d", f.ContainerMimeType, f.Width, f.Height)
}

var demuxerMimes = map[string]string{
	"matroska,webm":           "video/x-matroska",
	"matroska":                "video/x-matroska",
	"webm":                    "video/webm",
	"mov,mp4,m4a,3gp,3g2,mj2": "video/mp4",
	"mp4":                     "video/mp4",
	"mpegts":                  "video/mp2t",
	"hls":                     "application/x-mpegURL",
	"applehttp":               "application/x-mpegURL",
	"dash":                    "application/dash+xml",
	"avi":                     "video/x-msvideo",
	"flv":                     "video/x-flv",
	"ogg":                     "video/ogg",
}

// MimeFromDemuxer maps an engine demuxer name to a container MIME type.
// Unknown names are returned unchanged.
func MimeFromDemuxer(name string) string {
	if mime, ok := demuxerMimes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return mime
	}
	return name
}
