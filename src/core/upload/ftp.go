/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/utils"

	"github.com/Laky-64/gologging"
	"github.com/jlaffaye/ftp"
)

var ErrNotConfigured = errors.New("ftp host is not configured")

// conn is the part of *ftp.ServerConn used by Upload.
type conn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	Stor(path string, r io.Reader) error
	Quit() error
}

type dialFunc func(ctx context.Context, addr string, timeout time.Duration) (conn, error)

func dialFTP(ctx context.Context, addr string, timeout time.Duration) (conn, error) {
	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if timeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(timeout))
	}
	return ftp.Dial(addr, opts...)
}

// Uploader stores files on the fallback FTP server.
type Uploader struct {
	host         string
	user         string
	pass         string
	remoteFolder string
	publicURL    string
	localRoot    string
	timeout      time.Duration
	dial         dialFunc
}

// NewUploader creates an Uploader. localRoot is stripped from uploaded paths to build the remote name.
func NewUploader(cfg config.FTP, localRoot string) *Uploader {
	return &Uploader{
		host:         cfg.Host,
		user:         cfg.User,
		pass:         cfg.Pass,
		remoteFolder: cfg.RemoteFolder,
		publicURL:    cfg.PublicURL,
		localRoot:    localRoot,
		timeout:      cfg.Timeout,
		dial:         dialFTP,
	}
}

// RemoteName is the name under which localPath is stored: its path relative to the
// downloads root with separators turned into "_", so the job directory stays part of
// the name. Whitespace runs are replaced by "_" too. Paths outside the root keep
// only their base name.
func (u *Uploader) RemoteName(localPath string) string {
	name := filepath.Base(localPath)
	if u.localRoot != "" {
		if rel, err := filepath.Rel(u.localRoot, localPath); err == nil && !strings.HasPrefix(rel, "..") {
			name = strings.ReplaceAll(filepath.ToSlash(rel), "/", "_")
		}
	}
	return utils.CollapseSpaces(name)
}

// PublicLink is the URL users can fetch remoteName from.
func (u *Uploader) PublicLink(remoteName string) string {
	return u.publicURL + remoteName
}

// Upload stores localPath in the remote folder and returns the remote name.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if u.host == "" {
		return "", ErrNotConfigured
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	c, err := u.dial(ctx, u.host, u.timeout)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", u.host, err)
	}
	defer func() {
		if err := c.Quit(); err != nil {
			gologging.DebugF("ftp quit: %s", err.Error())
		}
	}()

	if err := c.Login(u.user, u.pass); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if u.remoteFolder != "" {
		if err := c.ChangeDir(u.remoteFolder); err != nil {
			return "", fmt.Errorf("cwd %s: %w", u.remoteFolder, err)
		}
	}

	remote := u.RemoteName(localPath)
	if err := c.Stor(remote, f); err != nil {
		return "", fmt.Errorf("stor %s: %w", remote, err)
	}

	gologging.InfoF("upload ok: %s", remote)
	return remote, nil
}
