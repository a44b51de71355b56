package metrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/prometheus/prompb"
	"go.uber.org/zap"
)

const metricPrefix = "sitegrade_"

// StartRemoteWrite periodically pushes the collector's metric families
// to a Prometheus remote-write endpoint. Only called when a remote
// write URL is configured.
func (c *Collector) StartRemoteWrite(ctx context.Context, logger *zap.Logger) {
	ticker := time.NewTicker(c.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.flush(ctx); err != nil {
				logger.Warn("remote write flush failed", zap.Error(err))
			}
		}
	}
}

func (c *Collector) flush(ctx context.Context) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	series := c.familiesToSeries(mfs)
	if len(series) == 0 {
		return nil
	}

	for i := 0; i < len(series); i += c.config.BatchSize {
		end := i + c.config.BatchSize
		if end > len(series) {
			end = len(series)
		}
		if err := c.sendBatch(ctx, series[i:end]); err != nil {
			return fmt.Errorf("failed to send batch: %w", err)
		}
	}

	return nil
}

func (c *Collector) familiesToSeries(mfs []*dto.MetricFamily) []prompb.TimeSeries {
	now := time.Now().UnixMilli()
	var series []prompb.TimeSeries

	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), metricPrefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				series = append(series, makeSeries(mf.GetName(), m, m.GetCounter().GetValue(), now))
			case dto.MetricType_GAUGE:
				series = append(series, makeSeries(mf.GetName(), m, m.GetGauge().GetValue(), now))
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				series = append(series,
					makeSeries(mf.GetName()+"_sum", m, h.GetSampleSum(), now),
					makeSeries(mf.GetName()+"_count", m, float64(h.GetSampleCount()), now),
				)
			}
		}
	}

	return series
}

func makeSeries(name string, m *dto.Metric, value float64, ts int64) prompb.TimeSeries {
	labels := []prompb.Label{{Name: "__name__", Value: name}}
	for _, lp := range m.GetLabel() {
		labels = append(labels, prompb.Label{Name: lp.GetName(), Value: lp.GetValue()})
	}
	return prompb.TimeSeries{
		Labels:  labels,
		Samples: []prompb.Sample{{Value: value, Timestamp: ts}},
	}
}

func (c *Collector) sendBatch(ctx context.Context, series []prompb.TimeSeries) error {
	req := &prompb.WriteRequest{Timeseries: series}
	data, err := req.Marshal()
	if err != nil {
		return err
	}

	compressed := snappy.Encode(nil, data)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.RemoteWriteURL, bytes.NewReader(compressed))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")
	if c.config.AuthToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("remote write returned HTTP %d", resp.StatusCode)
	}
	return nil
}
