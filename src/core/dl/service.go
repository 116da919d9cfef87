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
	"path/filepath"
	"time"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/core/metrics"
	"ashokshau/tgdownloader/src/utils"

	"github.com/Laky-64/gologging"
	"github.com/google/uuid"
)

// ErrAllFailed is returned when no extractor produced a file.
var ErrAllFailed = errors.New("every download method failed")

// Request describes a single download job.
type Request struct {
	URL  string
	Mode utils.Mode
	// Dir is a directory owned by this job only.
	Dir string
}

// Extractor resolves a hosting-site URL and downloads the media to a local file.
type Extractor interface {
	// Name identifies the extractor in logs, metrics and the download history.
	Name() string
	// Download fetches req.URL and returns the path of the resulting file.
	Download(ctx context.Context, req Request) (string, error)
}

// Result is the outcome of a successful dispatch.
type Result struct {
	Path   string
	Method string
	JobDir string
}

// Dispatcher tries its extractors in order until one of them succeeds.
type Dispatcher struct {
	baseDir    string
	extractors []Extractor
}

// NewDispatcher creates a Dispatcher writing job directories under baseDir.
func NewDispatcher(baseDir string, extractors ...Extractor) *Dispatcher {
	return &Dispatcher{baseDir: baseDir, extractors: extractors}
}

// NewDefaultDispatcher builds the extractor chain from the configuration:
// yt-dlp, yt-dlp with a degraded format, you-get and, when configured, JDownloader.
func NewDefaultDispatcher(cfg *config.BotConfig) *Dispatcher {
	opts := YtDlpOptions{
		YouTubeUser:    cfg.YouTubeUser,
		YouTubePass:    cfg.YouTubePass,
		CookiesBrowser: cfg.CookiesBrowser,
		Proxy:          cfg.Proxy,
	}

	chain := []Extractor{
		NewYtDlp(opts),
		NewDegradedYtDlp(opts),
		NewYouGet(cfg.YouGetPath),
	}

	if cfg.JDownloader.Enabled() {
		chain = append(chain, NewJDownloader(
			NewJDownloaderClient(cfg.JDownloader.ApiUrl, nil),
			cfg.JDownloader.DownloadPath,
			cfg.JDownloader.PollInterval,
			cfg.JDownloader.WaitTimeout,
		))
	}

	return NewDispatcher(cfg.DownloadsDir, chain...)
}

// Methods lists the extractor names in the order they are tried.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.extractors))
	for _, ex := range d.extractors {
		names = append(names, ex.Name())
	}
	return names
}

// Download runs the extractor chain for url and returns the first file produced.
// On failure the job directory is removed and the errors of every tier are joined.
func (d *Dispatcher) Download(ctx context.Context, url string, mode utils.Mode) (*Result, error) {
	if len(d.extractors) == 0 {
		return nil, errors.New("no extractors configured")
	}

	jobDir := filepath.Join(d.baseDir, uuid.NewString())
	if err := os.MkdirAll(jobDir, defaultDownloadDirPerm); err != nil {
		return nil, fmt.Errorf("create job dir: %w", err)
	}

	metrics.InFlight.Inc()
	defer metrics.InFlight.Dec()

	req := Request{URL: url, Mode: mode, Dir: jobDir}
	var errs []error
	for _, ex := range d.extractors {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		start := time.Now()
		path, err := ex.Download(ctx, req)
		metrics.ObserveDownload(ex.Name(), err, time.Since(start))
		if err == nil {
			gologging.InfoF("downloaded %s with %s into %s", url, ex.Name(), path)
			return &Result{Path: path, Method: ex.Name(), JobDir: jobDir}, nil
		}

		gologging.WarnF("%s failed for %s: %v", ex.Name(), url, err)
		errs = append(errs, fmt.Errorf("%s: %w", ex.Name(), err))
	}

	_ = os.RemoveAll(jobDir)
	return nil, fmt.Errorf("%w: %w", ErrAllFailed, errors.Join(errs...))
}

// Cleanup removes the job directory of a finished download.
func (d *Dispatcher) Cleanup(res *Result) {
	if res == nil || res.JobDir == "" {
		return
	}
	if err := os.RemoveAll(res.JobDir); err != nil {
		gologging.WarnF("failed to remove %s: %v", res.JobDir, err)
	}
}
