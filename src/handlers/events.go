/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	tg "github.com/amarnathcjd/gogram/telegram"
)

// logEvent writes one line per handled update.
func logEvent(method string, user *tg.UserObj, text string) {
	if text == "" {
		text = "just a click"
	}
	logger.Info("%s - %s (%d): %s", method, firstName(user), userID(user), text)
}
