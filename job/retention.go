// Package job holds the scheduled maintenance tasks.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/prnvtripathi/tract-us/pkg/logger"
	"github.com/prnvtripathi/tract-us/service"
	"github.com/robfig/cron/v3"
)

// retentionSpec runs the purge daily at 02:00
const retentionSpec = "0 2 * * *"

// StartRetention schedules the daily purge of DRAFT contracts that never
// received an analysis result within the retention window. The returned
// cron should be stopped on shutdown.
func StartRetention(store service.ContractStore, retentionDays int) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(retentionSpec, func() {
		PurgeStaleDrafts(store, retentionDays)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule retention job: %w", err)
	}

	c.Start()
	return c, nil
}

// PurgeStaleDrafts deletes un-analyzed drafts older than retentionDays.
func PurgeStaleDrafts(store service.ContractStore, retentionDays int) {
	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	purged, err := store.PurgeStaleDrafts(ctx, cutoff)
	if err != nil {
		logger.Error(ctx, "draft retention purge failed", "error", err)
		return
	}

	if purged > 0 {
		logger.Info(ctx, "purged stale draft contracts",
			"purged", purged,
			"cutoff", cutoff,
		)
	}
}
