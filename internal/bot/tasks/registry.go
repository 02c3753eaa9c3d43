package tasks

import (
	"context"

	"github.com/edgard/motivbot/internal/config"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every scheduled task keyed by the name used in
// the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		config.TaskMorningDelivery: newDeliveryTask(deps, morningDelivery).Run,
		config.TaskEveningDelivery: newDeliveryTask(deps, eveningDelivery).Run,
		config.TaskSQLMaintenance:  newSQLMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
