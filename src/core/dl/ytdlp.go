/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package dl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"ashokshau/tgdownloader/src/utils"

	"github.com/lrstanley/go-ytdlp"
)

const (
	MethodPrimary  = "primary"
	MethodDegraded = "degraded"

	// degradedFormat is the 360p progressive mp4 that is nearly always available.
	degradedFormat = "18"
	printFilepath  = "after_move:filepath"
)

// Profile is the set of extraction settings for a mode.
type Profile struct {
	Format       string
	ExtractAudio bool
	AudioFormat  string
}

// ProfileFor returns the extraction profile for mode.
func ProfileFor(mode utils.Mode) Profile {
	if mode.IsAudio() {
		return Profile{
			Format:       "m4a/bestaudio/best",
			ExtractAudio: true,
			AudioFormat:  "m4a",
		}
	}
	// Video keeps the extractor default format.
	return Profile{}
}

// YtDlpOptions carries credentials and network settings for yt-dlp.
type YtDlpOptions struct {
	YouTubeUser    string
	YouTubePass    string
	CookiesBrowser string
	Proxy          string
}

// YtDlp downloads through yt-dlp.
type YtDlp struct {
	name   string
	format string
	opts   YtDlpOptions
}

// NewYtDlp returns the primary extractor.
func NewYtDlp(opts YtDlpOptions) *YtDlp {
	return &YtDlp{name: MethodPrimary, opts: opts}
}

// NewDegradedYtDlp returns yt-dlp forced onto a low-quality progressive format.
func NewDegradedYtDlp(opts YtDlpOptions) *YtDlp {
	return &YtDlp{name: MethodDegraded, format: degradedFormat, opts: opts}
}

func (y *YtDlp) Name() string {
	return y.name
}

// profile merges the mode profile with the format override of this extractor.
func (y *YtDlp) profile(mode utils.Mode) Profile {
	p := ProfileFor(mode)
	if y.format != "" {
		p.Format = y.format
	}
	return p
}

// command builds the yt-dlp invocation for req.
func (y *YtDlp) command(req Request) *ytdlp.Command {
	p := y.profile(req.Mode)

	cmd := ytdlp.New().
		NoPlaylist().
		RestrictFilenames().
		WindowsFilenames().
		TrimFilenames(trimFileName).
		Paths(req.Dir).
		Print(printFilepath)

	if p.Format != "" {
		cmd = cmd.Format(p.Format)
	}
	if p.ExtractAudio {
		cmd = cmd.ExtractAudio().AudioFormat(p.AudioFormat)
	}

	if utils.IsFromYouTube(req.URL) {
		if y.opts.YouTubeUser != "" {
			cmd = cmd.Username(y.opts.YouTubeUser).Password(y.opts.YouTubePass)
		}
		if y.opts.CookiesBrowser != "" {
			cmd = cmd.CookiesFromBrowser(y.opts.CookiesBrowser)
		}
	}

	if y.opts.Proxy != "" {
		cmd = cmd.Proxy(y.opts.Proxy)
	}

	return cmd
}

// Download runs yt-dlp and returns the path it printed after post-processing.
func (y *YtDlp) Download(ctx context.Context, req Request) (string, error) {
	res, err := y.command(req).Run(ctx, req.URL)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("yt-dlp timed out for %s: %w", req.URL, ctx.Err())
		}
		if res != nil && strings.TrimSpace(res.Stderr) != "" {
			return "", fmt.Errorf("yt-dlp failed with exit code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
		}
		return "", fmt.Errorf("yt-dlp failed: %w", err)
	}

	path := lastLine(res.Stdout)
	if path == "" {
		return "", fmt.Errorf("no output path was returned for %s", req.URL)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("the file was not found at the reported path %s: %w", path, err)
	}

	return path, nil
}
