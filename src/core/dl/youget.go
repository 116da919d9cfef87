/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package dl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Laky-64/gologging"
)

const (
	MethodSecondary = "secondary"

	youGetSubDir = "o"
	youGetName   = "__o"
)

// YouGet downloads by running the you-get command line tool.
type YouGet struct {
	bin string
}

// NewYouGet returns the secondary extractor using the executable at bin.
func NewYouGet(bin string) *YouGet {
	if bin == "" {
		bin = "you-get"
	}
	return &YouGet{bin: bin}
}

func (y *YouGet) Name() string {
	return MethodSecondary
}

func (y *YouGet) args(outDir, url string) []string {
	return []string{"-k", "-f", "-o", outDir, "-O", youGetName, url}
}

func (y *YouGet) Download(ctx context.Context, req Request) (string, error) {
	outDir := filepath.Join(req.Dir, youGetSubDir)
	if err := os.MkdirAll(outDir, defaultDownloadDirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	args := y.args(outDir, req.URL)
	gologging.InfoF("%s %s", y.bin, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, y.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("you-get timed out for %s: %w", req.URL, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("you-get failed: %s", msg)
	}

	gologging.DebugF("you-get output: %s", strings.TrimSpace(stdout.String()))
	return findFileWithPrefix(outDir, youGetName+".")
}
