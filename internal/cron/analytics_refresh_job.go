package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ecotech-backend/pkg/logger"
)

const AnalyticsRefreshJobName = "analytics-refresh"

type analyticsRefresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

type AnalyticsRefreshJobParams struct {
	Logger    *logger.Logger
	Analytics analyticsRefresher
}

// NewAnalyticsRefreshJob recomputes every user's cached summary.
func NewAnalyticsRefreshJob(params AnalyticsRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Analytics == nil {
		return nil, fmt.Errorf("analytics service required")
	}
	return &analyticsRefreshJob{logg: params.Logger, analytics: params.Analytics}, nil
}

type analyticsRefreshJob struct {
	logg      *logger.Logger
	analytics analyticsRefresher
}

func (j *analyticsRefreshJob) Name() string { return AnalyticsRefreshJobName }

func (j *analyticsRefreshJob) Run(ctx context.Context) error {
	refreshed, err := j.analytics.RefreshAll(ctx)
	if err != nil {
		return fmt.Errorf("analytics refresh (%d users refreshed): %w", refreshed, err)
	}
	j.logg.Info(j.logg.WithField(ctx, "users_refreshed", refreshed), "analytics refresh complete")
	return nil
}
