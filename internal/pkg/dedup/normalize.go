package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL reduces a video URL to a stable canonical form so that two
// links to the same video hash identically regardless of surface differences
// (http vs https, www., tracking params, trailing slash, letter case).
//
// Known platforms are reduced to "<platform>:<content id>"; anything else
// falls back to scheme//host+path with the query stripped.
func NormalizeURL(rawURL string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(rawURL))
	if trimmed == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid url: missing host")
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.TrimSuffix(u.Path, "/")

	if id := youtubeID(host, path, u.Query()); id != "" {
		return "youtube:" + id, nil
	}
	if id := twitterID(host, path); id != "" {
		return "twitter:" + id, nil
	}
	if id := tiktokID(host, path); id != "" {
		return "tiktok:" + id, nil
	}
	if id := instagramID(host, path); id != "" {
		return "instagram:" + id, nil
	}

	return u.Scheme + "//" + host + path, nil
}

// HashURL computes the dedup key: the SHA-256 of the normalized URL.
func HashURL(rawURL string) (string, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), nil
}

func youtubeID(host, path string, query url.Values) string {
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if path == "/watch" {
			return query.Get("v")
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/v/", "/live/"} {
			if strings.HasPrefix(path, prefix) {
				return firstSegment(strings.TrimPrefix(path, prefix))
			}
		}
	case "youtu.be":
		return firstSegment(strings.TrimPrefix(path, "/"))
	}
	return ""
}

func twitterID(host, path string) string {
	if host != "twitter.com" && host != "x.com" && host != "mobile.twitter.com" {
		return ""
	}
	// /<user>/status/<id>
	if idx := strings.Index(path, "/status/"); idx >= 0 {
		return firstSegment(path[idx+len("/status/"):])
	}
	return ""
}

func tiktokID(host, path string) string {
	if host != "tiktok.com" && host != "vm.tiktok.com" && host != "m.tiktok.com" {
		return ""
	}
	if idx := strings.Index(path, "/video/"); idx >= 0 {
		return firstSegment(path[idx+len("/video/"):])
	}
	if host == "vm.tiktok.com" {
		return firstSegment(strings.TrimPrefix(path, "/"))
	}
	return ""
}

func instagramID(host, path string) string {
	if host != "instagram.com" && host != "m.instagram.com" {
		return ""
	}
	for _, prefix := range []string{"/p/", "/reel/", "/reels/", "/tv/"} {
		if strings.HasPrefix(path, prefix) {
			return firstSegment(strings.TrimPrefix(path, prefix))
		}
	}
	return ""
}

func firstSegment(s string) string {
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		return s[:idx]
	}
	return s
}
