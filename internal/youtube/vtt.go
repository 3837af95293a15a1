package youtube

import (
	"fmt"
	"strings"
)

// parseVTT extracts the spoken text from a WebVTT caption document, joining
// cue lines in document order. Cue identifiers, timing lines and header
// metadata are dropped. Used as a fallback when a track offers no json3.
func parseVTT(content string) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, "WEBVTT") {
		return "", fmt.Errorf("invalid VTT format: missing WEBVTT header")
	}

	var parts []string
	blocks := strings.Split(content, "\n\n")
	for i, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")

		// The first block is the header; skip it and any NOTE/STYLE blocks.
		if i == 0 || len(lines) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(lines[0], "NOTE"),
			strings.HasPrefix(lines[0], "STYLE"),
			strings.HasPrefix(lines[0], "REGION"):
			continue
		}

		// Cue text follows the timing line. A cue may carry an identifier
		// line before the timing line.
		start := timingLineIndex(lines)
		if start < 0 || start+1 >= len(lines) {
			continue
		}
		for _, line := range lines[start+1:] {
			line = strings.TrimSpace(line)
			if line != "" {
				parts = append(parts, line)
			}
		}
	}

	return strings.Join(parts, " "), nil
}

func timingLineIndex(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, " --> ") {
			return i
		}
	}
	return -1
}
