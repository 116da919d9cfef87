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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Laky-64/gologging"
)

const (
	MethodJDownloader = "jdownloader"

	jdAddLinksPath   = "/linkgrabberv2/addLinks"
	jdQueryLinksPath = "/downloadsV2/queryLinks"
	jdAPIVersion     = 1
)

var ErrLinkNotFound = errors.New("link not found in download list")

// AddLinksQuery mirrors the linkgrabber addLinks parameters.
type AddLinksQuery struct {
	Autostart                bool   `json:"autostart"`
	Links                    string `json:"links"`
	PackageName              string `json:"packageName,omitempty"`
	ExtractPassword          string `json:"extractPassword,omitempty"`
	Priority                 string `json:"priority"`
	DownloadPassword         string `json:"downloadPassword,omitempty"`
	DestinationFolder        string `json:"destinationFolder"`
	OverwritePackagizerRules bool   `json:"overwritePackagizerRules"`
}

// LinkQuery selects the fields returned by queryLinks.
type LinkQuery struct {
	Name       bool `json:"name"`
	URL        bool `json:"url"`
	BytesTotal bool `json:"bytesTotal"`
	Finished   bool `json:"finished"`
}

// DownloadLink is one entry of the download list.
type DownloadLink struct {
	UUID       int64  `json:"uuid"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	BytesTotal int64  `json:"bytesTotal"`
	Finished   bool   `json:"finished"`
}

type jdRequest struct {
	URL    string   `json:"url"`
	Params []string `json:"params,omitempty"`
	RID    int64    `json:"rid"`
	APIVer int      `json:"apiVer"`
}

type jdResponse struct {
	Data json.RawMessage `json:"data"`
	RID  int64           `json:"rid"`
}

// JDownloaderClient talks to the remote-control API of a JDownloader instance
// exposed through its direct connection.
type JDownloaderClient struct {
	baseURL    string
	httpClient *http.Client
	rid        atomic.Int64
}

// NewJDownloaderClient creates a client for baseURL. A nil httpClient uses a 30s timeout client.
func NewJDownloaderClient(baseURL string, httpClient *http.Client) *JDownloaderClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &JDownloaderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
	c.rid.Store(time.Now().UnixMilli())
	return c
}

func (c *JDownloaderClient) call(ctx context.Context, path string, param any, out any) error {
	req := jdRequest{URL: path, RID: c.rid.Add(1), APIVer: jdAPIVersion}
	if param != nil {
		raw, err := json.Marshal(param)
		if err != nil {
			return fmt.Errorf("encode params: %w", err)
		}
		req.Params = []string{string(raw)}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded jdResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	if decoded.RID != 0 && decoded.RID != req.RID {
		return fmt.Errorf("%s: response id %d does not match request %d", path, decoded.RID, req.RID)
	}

	if out == nil || len(decoded.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", path, err)
	}
	return nil
}

// AddLinks queues links in the linkgrabber.
func (c *JDownloaderClient) AddLinks(ctx context.Context, q AddLinksQuery) error {
	return c.call(ctx, jdAddLinksPath, q, nil)
}

// QueryLinks lists the entries of the download list.
func (c *JDownloaderClient) QueryLinks(ctx context.Context, q LinkQuery) ([]DownloadLink, error) {
	var links []DownloadLink
	if err := c.call(ctx, jdQueryLinksPath, q, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// LinkGrabber is the subset of the remote API used by the JDownloader extractor.
type LinkGrabber interface {
	AddLinks(ctx context.Context, q AddLinksQuery) error
	QueryLinks(ctx context.Context, q LinkQuery) ([]DownloadLink, error)
}

// JDownloader hands the download to a remote JDownloader and waits for the file
// to appear in its destination folder.
type JDownloader struct {
	client       LinkGrabber
	downloadPath string
	pollInterval time.Duration
	waitTimeout  time.Duration
}

// NewJDownloader returns the download-manager extractor.
func NewJDownloader(client LinkGrabber, downloadPath string, pollInterval, waitTimeout time.Duration) *JDownloader {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &JDownloader{
		client:       client,
		downloadPath: downloadPath,
		pollInterval: pollInterval,
		waitTimeout:  waitTimeout,
	}
}

func (j *JDownloader) Name() string {
	return MethodJDownloader
}

func (j *JDownloader) Download(ctx context.Context, req Request) (string, error) {
	gologging.InfoF("using the download manager for url=%s mode=%s", req.URL, req.Mode)

	if j.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.waitTimeout)
		defer cancel()
	}

	err := j.client.AddLinks(ctx, AddLinksQuery{
		Autostart:                true,
		Links:                    req.URL,
		Priority:                 "DEFAULT",
		DestinationFolder:        j.downloadPath,
		OverwritePackagizerRules: true,
	})
	if err != nil {
		return "", fmt.Errorf("add links: %w", err)
	}

	name, err := j.lookupName(ctx, req.URL)
	if err != nil {
		return "", err
	}

	return WaitForFile(ctx, j.downloadPath, expectedName(name, req.Mode.Extension()), req.Mode.Extension(), j.pollInterval)
}

// lookupName polls the download list until the entry for url shows up.
func (j *JDownloader) lookupName(ctx context.Context, url string) (string, error) {
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		links, err := j.client.QueryLinks(ctx, LinkQuery{Name: true, URL: true})
		if err != nil {
			return "", fmt.Errorf("query links: %w", err)
		}

		for _, link := range links {
			if link.URL == url && link.Name != "" {
				return link.Name, nil
			}
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %s", ErrLinkNotFound, url)
		case <-ticker.C:
		}
	}
}
