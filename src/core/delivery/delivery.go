/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

// Package delivery sends a downloaded file back to the chat, falling back to an FTP link.
package delivery

import (
	"context"
	"errors"
	"fmt"

	"ashokshau/tgdownloader/src/core/metrics"
	"ashokshau/tgdownloader/src/lang"
	"ashokshau/tgdownloader/src/utils"

	"github.com/Laky-64/gologging"
)

// Outcome is the channel through which a file reached the user.
type Outcome string

const (
	Chat   Outcome = "chat"
	FTP    Outcome = "ftp"
	Failed Outcome = "failed"
)

// Transport sends messages and files to a chat.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendFile(ctx context.Context, chatID int64, path string, mode utils.Mode) error
}

// Uploader stores a file somewhere reachable by a link.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
	PublicLink(remoteName string) string
}

// Job describes one file to hand back.
type Job struct {
	ChatID   int64
	Path     string
	Mode     utils.Mode
	LangCode string
}

type Service struct {
	transport Transport
	uploader  Uploader
}

// NewService creates a delivery Service. uploader may be nil, in which case a
// rejected file is reported as an upload error.
func NewService(transport Transport, uploader Uploader) *Service {
	return &Service{transport: transport, uploader: uploader}
}

// Deliver sends job.Path to the chat. When the transport rejects the file, it is
// uploaded over FTP and the user receives a link instead.
func (s *Service) Deliver(ctx context.Context, job Job) (Outcome, error) {
	sendErr := s.transport.SendFile(ctx, job.ChatID, job.Path, job.Mode)
	if sendErr == nil {
		metrics.ObserveDelivery(string(Chat))
		return Chat, nil
	}

	gologging.WarnF("send %s to %d failed, falling back to ftp: %v", job.Path, job.ChatID, sendErr)
	if errors.Is(sendErr, context.Canceled) {
		metrics.ObserveDelivery(string(Failed))
		return Failed, sendErr
	}

	_ = s.transport.SendText(ctx, job.ChatID, lang.GetString(job.LangCode, "ftp_start"))

	remote, err := s.upload(ctx, job.Path)
	if err != nil {
		gologging.ErrorF("ftp upload of %s failed: %v", job.Path, err)
		_ = s.transport.SendText(ctx, job.ChatID, lang.GetString(job.LangCode, "upload_error")+err.Error())
		metrics.ObserveDelivery(string(Failed))
		return Failed, fmt.Errorf("send: %w; upload: %w", sendErr, err)
	}

	link := s.uploader.PublicLink(remote)
	if err := s.transport.SendText(ctx, job.ChatID, lang.GetString(job.LangCode, "ftp_ok")+link); err != nil {
		metrics.ObserveDelivery(string(Failed))
		return Failed, fmt.Errorf("send link: %w", err)
	}

	metrics.ObserveDelivery(string(FTP))
	return FTP, nil
}

func (s *Service) upload(ctx context.Context, path string) (string, error) {
	if s.uploader == nil {
		return "", errors.New("no upload target configured")
	}
	return s.uploader.Upload(ctx, path)
}
