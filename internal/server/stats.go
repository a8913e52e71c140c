package server

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const statsTimeout = 10 * time.Second

// RefreshStats reloads the games-by-status gauge from the database.
func (s *Server) RefreshStats(ctx context.Context) error {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return err
	}
	s.metrics.setGameCounts(counts)
	return nil
}

// StartStatsJob refreshes the game gauges on schedule until the returned
// scheduler is stopped.
func (s *Server) StartStatsJob(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()
		if err := s.RefreshStats(ctx); err != nil {
			s.logger.Error("refresh game stats failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
