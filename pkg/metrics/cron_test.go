package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestCronJobMetricsCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	job := "analytics-refresh"

	m.ObserveRun(job, 250*time.Millisecond, nil)
	m.ObserveRun(job, 100*time.Millisecond, nil)
	m.ObserveRun(job, time.Second, errors.New("boom"))

	require.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(job, outcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(job, outcomeFailure)))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	hist := findMetric(mfs, "ecotech_cron_job_duration_seconds", "job", job)
	require.NotNil(t, hist)
	require.EqualValues(t, 3, hist.GetHistogram().GetSampleCount())
	require.InDelta(t, 1.35, hist.GetHistogram().GetSampleSum(), 1e-9)
}

func TestCronJobMetricsFailureLeavesLastSuccessUnset(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.ObserveRun("job", time.Millisecond, errors.New("boom"))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Nil(t, findMetric(mfs, "ecotech_cron_job_last_success_timestamp_seconds", "job", "job"))
}

func TestCronJobMetricsStampsLastSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.ObserveRun("", time.Millisecond, nil)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	gauge := findMetric(mfs, "ecotech_cron_job_last_success_timestamp_seconds", "job", "unknown")
	require.NotNil(t, gauge, "empty job label should normalize to unknown")
	require.Positive(t, gauge.GetGauge().GetValue())
}

func TestCronJobMetricsSkipped(t *testing.T) {
	m := NewCronJobMetrics(prometheus.NewRegistry())
	m.IncSkipped()
	m.IncSkipped()
	require.Equal(t, 2.0, testutil.ToFloat64(m.skipped))
}

func TestCronJobMetricsNilSafe(t *testing.T) {
	var nilMetrics *CronJobMetrics
	nilMetrics.ObserveRun("job", time.Second, nil)
	nilMetrics.IncSkipped()

	unregistered := NewCronJobMetrics(nil)
	unregistered.ObserveRun("job", time.Second, errors.New("x"))
	unregistered.IncSkipped()
}

func findMetric(mfs []*dto.MetricFamily, name, label, value string) *dto.Metric {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric
				}
			}
		}
	}
	return nil
}
