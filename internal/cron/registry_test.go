package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	jobA := &stubJob{name: "a"}
	jobB := &stubJob{name: "b"}
	require.NoError(t, registry.Register(jobA))
	require.NoError(t, registry.Register(jobB))

	jobs := registry.Jobs()
	require.Equal(t, []Job{jobA, jobB}, jobs)
	require.Equal(t, []string{"a", "b"}, registry.Names())

	jobs[0] = nil
	require.NotNil(t, registry.Jobs()[0], "internal slice leaked")
}

func TestRegistryRejectsBadJobs(t *testing.T) {
	registry := NewRegistry(&stubJob{name: AnalyticsRefreshJobName})

	require.Error(t, registry.Register(nil))
	require.ErrorContains(t, registry.Register(&stubJob{name: "  "}), "name required")
	require.ErrorContains(t, registry.Register(&stubJob{name: AnalyticsRefreshJobName}), "already registered")
	require.Len(t, registry.Jobs(), 1)

	require.Panics(t, func() { NewRegistry(&stubJob{name: "x"}, &stubJob{name: "x"}) })
}

func TestZeroRegistryAcceptsJobs(t *testing.T) {
	var registry Registry
	require.NoError(t, registry.Register(&stubJob{name: "a"}))
	require.Equal(t, []string{"a"}, registry.Names())
}
