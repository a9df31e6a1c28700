package scheduler

import (
	"context"
	"log/slog"

	"github.com/ado1d/profile-taks-manager/internal/metrics"
	"github.com/ado1d/profile-taks-manager/internal/models"
	"github.com/ado1d/profile-taks-manager/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts a background scheduler that refreshes the tasks_by_status gauge
// from the database every minute. Returns the cron so callers can Stop it on
// shutdown.
func Run(taskRepo *repo.TaskRepo) *cron.Cron {
	c := cron.New()

	refresh := func() {
		counts, err := taskRepo.CountByStatus(context.Background())
		if err != nil {
			slog.Error("scheduler: count tasks by status", "error", err)
			return
		}
		// Reset all three so a status that dropped to zero is reported as zero.
		for _, status := range []string{models.StatusTodo, models.StatusInProgress, models.StatusCompleted} {
			metrics.SetTasksByStatus(status, counts[status])
		}
	}

	if _, err := c.AddFunc("@every 1m", refresh); err != nil {
		slog.Error("scheduler: add refresh job", "error", err)
		return c
	}

	refresh()
	c.Start()
	return c
}
