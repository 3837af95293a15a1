// Package youtube resolves video references and fetches caption transcripts.
package youtube

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidURL is returned when a reference contains no recognizable video id.
	ErrInvalidURL = errors.New("invalid YouTube URL")

	// ErrNoCaptions is returned when a video exposes no caption tracks at all.
	ErrNoCaptions = errors.New("no subtitles found for this video")

	// ErrUpstreamFetch wraps failures to retrieve or decode caption data the
	// video does expose, so callers can tell them apart from ErrNoCaptions.
	ErrUpstreamFetch = errors.New("fetching captions from upstream failed")
)

// videoIDPattern matches the 11-character video id in watch, short and embed
// URLs (youtube.com/watch?v=ID, youtu.be/ID, youtube.com/embed/ID).
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// Transcript is the normalized spoken text of a single video.
type Transcript struct {
	VideoID string
	Text    string
}

// ExtractVideoID resolves the 11-character video id from a YouTube URL.
func ExtractVideoID(url string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}
