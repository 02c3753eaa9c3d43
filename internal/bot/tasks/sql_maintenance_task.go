package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/motivbot/internal/config"
)

// newSQLMaintenanceTask compacts the store and logs a daily summary of how
// many users receive each delivery.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", config.TaskSQLMaintenance)

	return func(ctx context.Context) error {
		started := deps.clock().Now()
		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		prefs, err := deps.Store.ListPreferences(ctx)
		if err != nil {
			return fmt.Errorf("failed to summarise subscribers: %w", err)
		}
		var morning, evening, motivation int
		for _, p := range prefs {
			if p.SendMorning {
				morning++
			}
			if p.SendEvening {
				evening++
			}
			if p.SendMotivation {
				motivation++
			}
		}

		log.InfoContext(ctx, "Store maintenance finished",
			"subscribers", len(prefs),
			"morning_on", morning,
			"evening_on", evening,
			"motivation_on", motivation,
			"duration", deps.clock().Since(started).Round(time.Millisecond))
		return nil
	}
}
