/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

// Package metrics exposes Prometheus counters for downloads and deliveries.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tgdownloader"

var (
	DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "downloads",
		Name:      "total",
		Help:      "Download attempts by extractor and outcome",
	}, []string{"method", "outcome"})

	DownloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "downloads",
		Name:      "duration_seconds",
		Help:      "Time spent in each extractor",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200},
	}, []string{"method"})

	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "deliveries",
		Name:      "total",
		Help:      "Finished deliveries by channel (chat, ftp, failed)",
	}, []string{"channel"})

	PromptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "prompts",
		Name:      "total",
		Help:      "Confirmation prompts sent for supported URLs",
	})

	InFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "downloads",
		Name:      "in_flight",
		Help:      "Downloads currently running",
	})
)

// ObserveDownload records one extractor attempt.
func ObserveDownload(method string, err error, took time.Duration) {
	DownloadsTotal.WithLabelValues(method, outcome(err)).Inc()
	DownloadDuration.WithLabelValues(method).Observe(took.Seconds())
}

// ObserveDelivery records how a file reached the user.
func ObserveDelivery(channel string) {
	DeliveriesTotal.WithLabelValues(channel).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
