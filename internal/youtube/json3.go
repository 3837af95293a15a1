package youtube

import (
	"encoding/json"
	"fmt"
	"strings"
)

// json3Doc is YouTube's timed-text JSON: a list of events, each carrying text
// segments. Segments equal to a bare newline are structural markers, not
// spoken words.
type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// parseJSON3 concatenates all spoken text segments in document order,
// space-joined, dropping bare line breaks.
func parseJSON3(data []byte) (string, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parsing json3 captions: %w", err)
	}

	var parts []string
	for _, event := range doc.Events {
		for _, seg := range event.Segs {
			if seg.UTF8 != "" && seg.UTF8 != "\n" {
				parts = append(parts, seg.UTF8)
			}
		}
	}
	return strings.Join(parts, " "), nil
}
