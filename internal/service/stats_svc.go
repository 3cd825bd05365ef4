package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/model"
)

// StatsStore computes the submission aggregates.
type StatsStore interface {
	Stats(ctx context.Context) (*model.StatsResponse, error)
}

// ChannelCounter counts channels by moderation status.
type ChannelCounter interface {
	CountByStatus(ctx context.Context) (pending, approved int, err error)
}

// StatsService assembles the admin dashboard aggregates with a cache-aside
// layer. The stats worker refreshes the cache eagerly on new submissions.
type StatsService struct {
	subs            StatsStore
	channels        ChannelCounter
	cache           *CacheService
	refreshDuration prometheus.Observer
}

func NewStatsService(subs StatsStore, channels ChannelCounter, cache *CacheService) *StatsService {
	return &StatsService{subs: subs, channels: channels, cache: cache}
}

// ObserveRefreshDuration registers a histogram that records how long each
// aggregate recomputation takes.
func (s *StatsService) ObserveRefreshDuration(o prometheus.Observer) {
	s.refreshDuration = o
}

// GetStats returns the dashboard aggregates, from cache when possible.
func (s *StatsService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetStats(ctx)
		if err != nil {
			middleware.Logger.Warn().Err(err).Msg("cache: stats get error")
		} else if cached != nil {
			return cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the aggregates from the store and repopulates the
// cache.
func (s *StatsService) Refresh(ctx context.Context) (*model.StatsResponse, error) {
	if s.refreshDuration != nil {
		timer := prometheus.NewTimer(s.refreshDuration)
		defer timer.ObserveDuration()
	}

	stats, err := s.subs.Stats(ctx)
	if err != nil {
		return nil, err
	}

	pending, approved, err := s.channels.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.PendingChannels = pending
	stats.ApprovedChannels = approved

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			middleware.Logger.Warn().Err(err).Msg("cache: stats set error")
		}
	}
	return stats, nil
}
