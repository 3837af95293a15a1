package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// Browser-like identity; YouTube serves caption metadata more reliably when
// the request does not look like a headless scraper.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://www.youtube.com/"
)

// captionFormat is one delivery format of a caption track.
type captionFormat struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// videoInfo is the subset of the yt-dlp JSON dump the pipeline needs.
// Manual subtitles take precedence over auto-generated captions.
type videoInfo struct {
	Subtitles         map[string][]captionFormat `json:"subtitles"`
	AutomaticCaptions map[string][]captionFormat `json:"automatic_captions"`
}

// tracks returns the preferred caption track map: manual subtitles when
// present, otherwise auto-generated captions.
func (info *videoInfo) tracks() map[string][]captionFormat {
	if len(info.Subtitles) > 0 {
		return info.Subtitles
	}
	return info.AutomaticCaptions
}

// dumpVideoInfo runs yt-dlp to list the caption tracks for a video without
// downloading any media. cookieFile may be empty.
func dumpVideoInfo(ctx context.Context, url, cookieFile string) (*videoInfo, error) {
	args := []string{
		"-J",
		"--skip-download",
		"--no-warnings",
		"--user-agent", userAgent,
		"--referer", referer,
		"--write-subs",
		"--write-auto-subs",
	}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running yt-dlp: %w\nstderr: %s", err, stderr.String())
	}

	var info videoInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("parsing yt-dlp output: %w", err)
	}
	return &info, nil
}
