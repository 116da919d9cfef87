/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package core

import (
	"ashokshau/tgdownloader/src/lang"
	"ashokshau/tgdownloader/src/utils"

	"github.com/amarnathcjd/gogram/telegram"
)

// ModeKeyboard is the audio/video choice attached to the confirmation prompt.
func ModeKeyboard(langCode string) *telegram.ReplyInlineMarkup {
	audioBtn := telegram.Button.Data(lang.GetString(langCode, "btn_audio"), utils.Audio.CallbackData())
	videoBtn := telegram.Button.Data(lang.GetString(langCode, "btn_video"), utils.Video.CallbackData())

	return telegram.NewKeyboard().AddRow(audioBtn, videoBtn).Build()
}

// PromptText is the confirmation prompt for rawURL, carrying the callback token as a hidden anchor.
func PromptText(langCode, rawURL string) string {
	return lang.GetString(langCode, "valid_link") + utils.TokenAnchor(rawURL)
}
