package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "canceled", outcome(fmt.Errorf("run: %w", context.Canceled)))
	assert.Equal(t, "timeout", outcome(context.DeadlineExceeded))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}

func TestObserveDownload(t *testing.T) {
	before := testutil.ToFloat64(DownloadsTotal.WithLabelValues("test-method", "error"))

	ObserveDownload("test-method", errors.New("boom"), time.Second)

	after := testutil.ToFloat64(DownloadsTotal.WithLabelValues("test-method", "error"))
	assert.Equal(t, before+1, after)
}

func TestObserveDelivery(t *testing.T) {
	before := testutil.ToFloat64(DeliveriesTotal.WithLabelValues("ftp"))
	ObserveDelivery("ftp")
	assert.Equal(t, before+1, testutil.ToFloat64(DeliveriesTotal.WithLabelValues("ftp")))
}
