/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// BotConfig holds the runtime configuration of the bot.
type BotConfig struct {
	ApiId   int32  `env:"API_ID"`
	ApiHash string `env:"API_HASH"`
	Token   string `env:"TOKEN"`

	// LoggerId is the group that receives start/stop notices.
	LoggerId int64 `env:"TELEGRAM_GROUP_ID"`
	// DevChatId receives error reports and may call /shutdown.
	DevChatId int64   `env:"TELEGRAM_DEVELOPER_CHAT_ID"`
	DEVS      []int64 `env:"DEVS" envSeparator:" "`

	LogLevel             string `env:"LOG_LEVEL"               envDefault:"info"`
	SendStartStopMessage bool   `env:"SEND_START_AND_STOP_MESSAGE" envDefault:"false"`
	SendErrorToDev       bool   `env:"SEND_ERROR_TO_DEV"       envDefault:"true"`
	SendErrorToUser      bool   `env:"SEND_ERROR_TO_USER"      envDefault:"false"`
	ChangelogPath        string `env:"CHANGELOG_PATH"          envDefault:"changelog.txt"`

	// Outgoing message throttling, in messages per second.
	RateLimit     float64       `env:"RATE_LIMIT"       envDefault:"20"`
	RateBurst     int           `env:"RATE_BURST"       envDefault:"5"`
	MaxFloodWait  time.Duration `env:"MAX_FLOOD_WAIT"   envDefault:"5m"`
	HandleTimeout time.Duration `env:"HANDLE_TIMEOUT"   envDefault:"30m"`

	DownloadsDir string `env:"DOWNLOADS_DIR" envDefault:"download"`
	YouTubeUser  string `env:"YOUTUBE_USER"`
	YouTubePass  string `env:"YOUTUBE_PASS"`
	// CookiesBrowser is passed to yt-dlp --cookies-from-browser for YouTube links.
	CookiesBrowser string `env:"COOKIES_PATH"`
	Proxy          string `env:"PROXY"`
	YouGetPath     string `env:"YOU_GET_PATH" envDefault:"you-get"`

	FTP         FTP
	JDownloader JDownloader

	MongoUri    string `env:"MONGO_URI"`
	DbName      string `env:"DB_NAME"      envDefault:"TgDownloaderBot"`
	MetricsAddr string `env:"METRICS_ADDR"`
}

// FTP holds the fallback upload target.
type FTP struct {
	Host         string        `env:"FTP_HOST"`
	User         string        `env:"FTP_USER"`
	Pass         string        `env:"FTP_PASS"`
	RemoteFolder string        `env:"FTP_REMOTE_FOLDER" envDefault:"/"`
	PublicURL    string        `env:"FTP_URL"`
	Timeout      time.Duration `env:"FTP_TIMEOUT"       envDefault:"30s"`
}

// Enabled reports whether an FTP host was configured.
func (f FTP) Enabled() bool {
	return f.Host != ""
}

// JDownloader holds the remote download-manager settings. ApiUrl points at the
// local direct-connection API of the instance.
type JDownloader struct {
	ApiUrl       string        `env:"JDOWNLOADER_API_URL"`
	DownloadPath string        `env:"JDOWNLOADER_DOWNLOAD_PATH"`
	PollInterval time.Duration `env:"JDOWNLOADER_POLL_INTERVAL" envDefault:"1s"`
	WaitTimeout  time.Duration `env:"JDOWNLOADER_WAIT_TIMEOUT"  envDefault:"20m"`
}

// Enabled reports whether the JDownloader tier can be used.
func (j JDownloader) Enabled() bool {
	return j.ApiUrl != "" && j.DownloadPath != ""
}

var Conf *BotConfig

// LoadConfig reads .env (if present) and the process environment into Conf.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := Parse()
	if err != nil {
		return err
	}

	Conf = cfg
	return nil
}

// Parse builds a BotConfig from the environment and validates it.
func Parse() (*BotConfig, error) {
	cfg := &BotConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.DevChatId != 0 && !cfg.IsDev(cfg.DevChatId) {
		cfg.DEVS = append(cfg.DEVS, cfg.DevChatId)
	}

	abs, err := filepath.Abs(cfg.DownloadsDir)
	if err != nil {
		return nil, fmt.Errorf("downloads dir: %w", err)
	}
	cfg.DownloadsDir = abs

	if err := os.MkdirAll(cfg.DownloadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}

	return cfg, nil
}

func (c *BotConfig) validate() error {
	switch {
	case c.ApiId == 0:
		return errors.New("API_ID is required")
	case c.ApiHash == "":
		return errors.New("API_HASH is required")
	case c.Token == "":
		return errors.New("TOKEN is required")
	case c.RateLimit <= 0:
		return errors.New("RATE_LIMIT must be positive")
	}
	return nil
}

// IsDev reports whether userID is listed as a developer.
func (c *BotConfig) IsDev(userID int64) bool {
	for _, dev := range c.DEVS {
		if dev == userID {
			return true
		}
	}
	return false
}
