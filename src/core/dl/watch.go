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
	"strings"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/fsnotify/fsnotify"
)

var ErrWaitTimeout = errors.New("file did not appear in time")

// WaitForFile blocks until a file with extension ext whose name contains expected
// exists in dir. Directory events wake it up early, the ticker covers filesystems
// where events are not delivered. It gives up when ctx is done.
func WaitForFile(ctx context.Context, dir, expected, ext string, interval time.Duration) (string, error) {
	if interval <= 0 {
		interval = time.Second
	}

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		gologging.WarnF("fsnotify unavailable, falling back to polling: %s", err.Error())
	} else {
		defer watcher.Close()
		if err := watcher.Add(dir); err != nil {
			gologging.WarnF("cannot watch %s, falling back to polling: %v", dir, err)
		} else {
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		path, seen, err := findExpected(dir, expected, ext)
		if err != nil {
			return "", fmt.Errorf("scan %s: %w", dir, err)
		}
		if path != "" {
			gologging.InfoF("file detected: %s", path)
			return path, nil
		}
		if len(seen) > 0 {
			gologging.DebugF("files detected in %s: %s", dir, strings.Join(seen, ", "))
		} else {
			gologging.DebugF("no %s files in %s", strings.ToUpper(ext), dir)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %s in %s: %w", ErrWaitTimeout, expected, dir, ctx.Err())
		case <-ticker.C:
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !strings.HasSuffix(ev.Name, "."+ext) {
				continue
			}
		case werr, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			gologging.WarnF("watch error: %s", werr.Error())
		}
	}
}
