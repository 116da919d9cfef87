/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package utils

// Mode selects the extraction profile chosen by the user.
type Mode string

const (
	Audio Mode = "mp3"
	Video Mode = "mp4"
)

// ParseMode maps callback data or a bare mode string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case string(Audio), "dl_" + string(Audio):
		return Audio, true
	case string(Video), "dl_" + string(Video):
		return Video, true
	}
	return "", false
}

// Extension is the file extension the mode produces once the download manager is done.
func (m Mode) Extension() string {
	return string(m)
}

// IsAudio reports whether the mode extracts audio only.
func (m Mode) IsAudio() bool {
	return m == Audio
}

// CallbackData is the inline button payload for the mode.
func (m Mode) CallbackData() string {
	return "dl_" + string(m)
}
