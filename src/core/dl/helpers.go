/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package dl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	defaultDownloadDirPerm = 0755
	// trimFileName caps the file name length passed to yt-dlp.
	trimFileName = 16
)

var errNoOutputFile = errors.New("no output file found")

// lastLine returns the last non-empty line of out.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// findFileWithPrefix returns the first regular file in dir whose name starts with prefix.
func findFileWithPrefix(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w with prefix %q in %s", errNoOutputFile, prefix, dir)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// expectedName derives the file name the download manager will produce for mode ext.
// The manager reports the name with its original 4-char extension (".mp4", ".m4a").
func expectedName(name, ext string) string {
	base := name
	if len(base) > 4 && base[len(base)-4] == '.' {
		base = base[:len(base)-4]
	}
	return base + "." + ext
}

// findExpected scans dir for a file with extension ext containing expected.
func findExpected(dir, expected, ext string) (string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, err
	}

	var seen []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "."+ext) {
			continue
		}
		seen = append(seen, e.Name())
		if strings.Contains(e.Name(), expected) {
			return filepath.Join(dir, e.Name()), seen, nil
		}
	}
	return "", seen, nil
}
