package youtube

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// cookiesEnvVar holds base64-encoded Netscape-format cookies in deployments
// where the filesystem is read-only outside of the temp directory.
const cookiesEnvVar = "YOUTUBE_COOKIES_BASE64"

// localCookiePaths are probed when no cookies are provided via environment.
var localCookiePaths = []string{
	"cookies.txt",
	"/workspace/cookies.txt",
}

// stageCookies materializes authentication cookies for yt-dlp and returns the
// path to the cookie file, or "" when none are available. Missing cookies are
// not an error; some videos simply require them to pass bot detection.
func stageCookies() string {
	if encoded := os.Getenv(cookiesEnvVar); encoded != "" {
		path, err := writeCookieFile(encoded)
		if err != nil {
			slog.Warn("failed to stage cookies from environment", "error", err)
			return ""
		}
		return path
	}

	for _, p := range localCookiePaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			return abs
		}
	}

	slog.Warn("no YouTube cookies found; bot-detected videos may fail",
		"env", cookiesEnvVar)
	return ""
}

func writeCookieFile(encoded string) (string, error) {
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", cookiesEnvVar, err)
	}
	path := filepath.Join(os.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("writing cookie file: %w", err)
	}
	return path, nil
}
