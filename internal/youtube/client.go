package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Client fetches caption transcripts for YouTube videos.
type Client struct {
	httpClient *http.Client

	// dumpInfo lists caption tracks for a URL. Overridable in tests; the
	// default shells out to yt-dlp.
	dumpInfo func(ctx context.Context, url, cookieFile string) (*videoInfo, error)
}

// NewClient creates a caption client with a default HTTP timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		dumpInfo:   dumpVideoInfo,
	}
}

// FetchTranscript resolves the video id, selects the best caption track and
// returns the concatenated transcript text.
func (c *Client) FetchTranscript(ctx context.Context, url string) (Transcript, error) {
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return Transcript{}, err
	}

	info, err := c.dumpInfo(ctx, url, stageCookies())
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: fetching video info: %w", ErrUpstreamFetch, err)
	}

	tracks := info.tracks()
	if len(tracks) == 0 {
		return Transcript{}, ErrNoCaptions
	}

	lang := selectLanguage(tracks)
	text, err := c.fetchTrackText(ctx, lang, tracks[lang])
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	return Transcript{VideoID: videoID, Text: text}, nil
}

// selectLanguage picks a caption language: exact "en", then the first tag
// starting with "en", then the first available tag. Candidate tags are
// scanned in sorted order so the choice is stable.
func selectLanguage(tracks map[string][]captionFormat) string {
	if _, ok := tracks["en"]; ok {
		return "en"
	}

	langs := make([]string, 0, len(tracks))
	for lang := range tracks {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		if strings.HasPrefix(lang, "en") {
			return lang
		}
	}
	return langs[0]
}

// fetchTrackText downloads and parses the best delivery format of a track.
// json3 carries per-segment text and is preferred; WebVTT is the fallback.
func (c *Client) fetchTrackText(ctx context.Context, lang string, formats []captionFormat) (string, error) {
	if f := findFormat(formats, "json3"); f != nil {
		body, err := c.download(ctx, f.URL)
		if err != nil {
			return "", err
		}
		return parseJSON3(body)
	}

	if f := findFormat(formats, "vtt"); f != nil {
		body, err := c.download(ctx, f.URL)
		if err != nil {
			return "", err
		}
		return parseVTT(string(body))
	}

	return "", fmt.Errorf("no suitable subtitle format found for language %s", lang)
}

func findFormat(formats []captionFormat, ext string) *captionFormat {
	for i := range formats {
		if formats[i].Ext == ext {
			return &formats[i]
		}
	}
	return nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
