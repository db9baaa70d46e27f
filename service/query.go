package service

import (
	"context"
	"encoding/json"

	"devquest/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetProgress returns the full persisted progress record, or nil when the user
// has never been synced.
func (s *AnalyticsService) GetProgress(ctx context.Context, userID string) (*model.UserProgress, error) {
	return s.RepoConnInstance.FindByUserID(ctx, userID)
}

// GetCachedStats returns the mirrored aggregate from the cache, or nil on a miss.
// Cache errors are treated as misses.
func (s *AnalyticsService) GetCachedStats(userID string) *model.AggregatedStats {
	cached, err := s.CacheClient.Get(statsCacheKey(userID))
	if err != nil || cached == nil {
		return nil
	}
	cachedStr, ok := cached.(string)
	if !ok {
		return nil
	}
	var stats model.AggregatedStats
	if err := json.Unmarshal([]byte(cachedStr), &stats); err != nil {
		s.logger.Warn("Failed to decode cached stats, falling back to store",
			zap.String("userId", userID), zap.Error(err))
		return nil
	}
	return &stats
}

// GetStats serves the aggregate record cache-first, falling back to the document
// store and refilling the cache on a miss. Returns nil when the user is unknown.
func (s *AnalyticsService) GetStats(ctx context.Context, userID string) (*model.AggregatedStats, error) {
	traceID := uuid.New().String()
	log := s.logger.With(zap.String("traceId", traceID), zap.String("userId", userID))

	if stats := s.GetCachedStats(userID); stats != nil {
		log.Debug("Aggregated stats served from cache")
		return stats, nil
	}

	progress, err := s.RepoConnInstance.FindByUserID(ctx, userID)
	if err != nil {
		log.Error("Failed to load stats from store", zap.Error(err))
		return nil, err
	}
	if progress == nil {
		return nil, nil
	}

	s.cacheAggregatedStats(log, userID, &progress.AggregatedStats)
	return &progress.AggregatedStats, nil
}

// GetHeatmap builds the yearly heatmap view over the stored calendar aggregate.
// Returns nil when the user is unknown.
func (s *AnalyticsService) GetHeatmap(ctx context.Context, userID string, year int) (*model.HeatmapResponse, error) {
	stats, err := s.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, nil
	}
	resp := BuildHeatmap(stats.CalendarStats, year)
	return &resp, nil
}

// GetLeaderboard returns users ranked by total solved, descending.
func (s *AnalyticsService) GetLeaderboard(ctx context.Context, limit int64) ([]model.UserProgress, error) {
	return s.RepoConnInstance.FindLeaderboard(ctx, limit)
}
