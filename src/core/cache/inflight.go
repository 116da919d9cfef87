/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package cache

import (
	"fmt"
	"time"

	"ashokshau/tgdownloader/src/utils"
)

// InFlight tracks downloads that are still running, keyed by chat, URL and mode.
// Entries expire on their own so a crashed handler never blocks a URL forever.
var InFlight = NewCache[time.Time](30 * time.Minute)

func inFlightKey(chatID int64, url string, mode utils.Mode) string {
	return fmt.Sprintf("dl:%d:%s:%s", chatID, mode, url)
}

// TryStart marks a download as running. It returns false if one is already running.
func TryStart(chatID int64, url string, mode utils.Mode) bool {
	return InFlight.SetIfAbsent(inFlightKey(chatID, url, mode), time.Now())
}

// Finish releases the mark set by TryStart.
func Finish(chatID int64, url string, mode utils.Mode) {
	InFlight.Delete(inFlightKey(chatID, url, mode))
}

// StartedAt returns when the running download for chat, URL and mode began.
func StartedAt(chatID int64, url string, mode utils.Mode) (time.Time, bool) {
	return InFlight.Get(inFlightKey(chatID, url, mode))
}

// Running returns the number of downloads in progress.
func Running() int {
	return InFlight.Len()
}
