package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"devquest/cache"
	"devquest/leetcode"
	"devquest/model"
	"devquest/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func statsCacheKey(userID string) string {
	return fmt.Sprintf("user:stats:%s", userID)
}

// AnalyticsService owns the sync read-modify-write boundary and the aggregate
// read paths. It assumes the job queue serializes syncs per user; two concurrent
// syncs for one user race and the later write wins.
type AnalyticsService struct {
	RepoConnInstance *repository.Repository
	CacheClient      cache.Cache
	LeetCodeClient   *leetcode.Client
	GraphQLClient    *leetcode.GraphQLClient
	statsTTL         time.Duration
	logger           *zap.Logger
}

func NewService(
	repo *repository.Repository,
	cacheClient cache.Cache,
	leetcodeClient *leetcode.Client,
	graphqlClient *leetcode.GraphQLClient,
	statsTTL time.Duration,
	logger *zap.Logger,
) *AnalyticsService {
	if statsTTL <= 0 {
		statsTTL = time.Hour
	}
	return &AnalyticsService{
		RepoConnInstance: repo,
		CacheClient:      cacheClient,
		LeetCodeClient:   leetcodeClient,
		GraphQLClient:    graphqlClient,
		statsTTL:         statsTTL,
		logger:           logger,
	}
}

// SyncUserData runs one end-to-end sync: fetch the submission feed and the five
// statistic queries concurrently, merge into the stored record, rebuild the
// aggregate, persist, and mirror the aggregate into the cache. Fetch failures
// degrade to partial or stale data; merge and persist failures propagate.
func (s *AnalyticsService) SyncUserData(ctx context.Context, userID, username string, auth leetcode.Auth) (*model.UserProgress, error) {
	traceID := uuid.New().String()
	log := s.logger.With(zap.String("traceId", traceID), zap.String("userId", userID))
	log.Info("Starting sync", zap.String("username", username))

	var submissions []leetcode.Submission
	var bundle leetcode.StatsBundle

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		submissions = s.LeetCodeClient.FetchAllSubmissions(ctx, auth, 0)
	}()
	go func() {
		defer wg.Done()
		bundle = s.GraphQLClient.FetchAllStats(ctx, auth, username)
	}()
	wg.Wait()

	log.Info("Fetched external data", zap.Int("submissions", len(submissions)))

	progress, err := s.RepoConnInstance.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}
	if progress == nil {
		log.Info("No existing progress record, creating one")
		progress = model.NewUserProgress(userID)
	}
	if progress.ProgressData.LeetCode == nil {
		progress.ProgressData.LeetCode = &model.PlatformProgress{Questions: []model.Question{}}
	}

	progress.ProgressData.LeetCode.Questions = MergeQuestions(
		progress.ProgressData.LeetCode.Questions,
		submissions,
	)

	RebuildAggregates(progress, bundle)
	progress.LastUpdated = time.Now().UTC()

	if err := s.RepoConnInstance.Save(ctx, progress); err != nil {
		log.Error("Failed to save progress record", zap.Error(err))
		return nil, err
	}

	s.cacheAggregatedStats(log, userID, &progress.AggregatedStats)

	log.Info("Sync completed",
		zap.Int("questions", len(progress.ProgressData.LeetCode.Questions)),
		zap.Int("totalSolved", progress.AggregatedStats.TotalSolved))
	return progress, nil
}

// cacheAggregatedStats mirrors the aggregate into the cache. The mirror is best
// effort; failures are logged and the sync still succeeds.
func (s *AnalyticsService) cacheAggregatedStats(log *zap.Logger, userID string, stats *model.AggregatedStats) {
	statsBytes, err := json.Marshal(stats)
	if err != nil {
		log.Error("Failed to marshal aggregated stats for cache", zap.Error(err))
		return
	}
	if err := s.CacheClient.Set(statsCacheKey(userID), statsBytes, s.statsTTL); err != nil {
		log.Error("Failed to cache aggregated stats", zap.Error(err))
	}
}
