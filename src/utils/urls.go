/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	urlRegex  = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_]|[!*\\(),])+`)
	listRegex = regexp.MustCompile(`&list=.+`)
)

// supportedHosts are matched as substrings of the URL.
var supportedHosts = []string{
	"facebook.com/",
	"https://fb.watch/",
	"https://www.instagram.com/",
	"https://www.tiktok.com/",
	"https://vm.tiktok.com/",
	"https://twitter.com/",
	"https://x.com/",
}

var youtubePrefixes = []string{
	"https://www.youtube.com/shorts/",
	"https://youtube.com/shorts/",
	"https://youtu.be/",
}

// ExtractFirstURL returns the first http(s) URL found in text.
func ExtractFirstURL(text string) (string, bool) {
	match := urlRegex.FindString(text)
	return match, match != ""
}

// IsWellFormedURL reports whether s parses as an absolute http(s) URL with a host.
func IsWellFormedURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && strings.Contains(u.Host, ".")
}

// IsFromYouTube reports whether s points at a YouTube video or short.
func IsFromYouTube(s string) bool {
	if strings.Contains(s, "https://www.youtube.") && strings.Contains(s, "/watch?") {
		return true
	}
	for _, prefix := range youtubePrefixes {
		if strings.Contains(s, prefix) {
			return true
		}
	}
	return false
}

// IsSupported reports whether s belongs to one of the allow-listed hosting sites.
func IsSupported(s string) bool {
	if IsFromYouTube(s) {
		return true
	}
	for _, host := range supportedHosts {
		if strings.Contains(s, host) {
			return true
		}
	}
	return false
}

// CleanURL drops the playlist part of YouTube watch links.
func CleanURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "https://www.youtube.") && strings.Contains(s, "/watch?") {
		return listRegex.ReplaceAllString(s, "")
	}
	return s
}
