package auth

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const DefaultCleanupSchedule = "@every 10m"

// ScheduleSessionCleanup registers a job on c that sweeps expired sessions.
func ScheduleSessionCleanup(c *cron.Cron, schedule string, authService Service) (cron.EntryID, error) {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	return c.AddFunc(schedule, func() {
		if removed := authService.CleanupExpiredSessions(); removed > 0 {
			log.Info().Int("removed", removed).Msg("Expired sessions removed")
		}
	})
}
