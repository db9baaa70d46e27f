package service

import (
	"context"
	"time"

	"devquest/leetcode"
	"devquest/model"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SyncEnqueuer dispatches a sync job for asynchronous execution.
type SyncEnqueuer interface {
	Enqueue(job model.SyncJob) (string, error)
}

// CredentialProvider resolves stored platform credentials for a user. The
// periodic re-sync skips users it cannot resolve.
type CredentialProvider interface {
	Credentials(ctx context.Context, userID string) (username string, auth leetcode.Auth, ok bool)
}

// StartCronJob schedules the daily re-sync of stale users. The returned cron is
// already started; callers own stopping it at shutdown.
func (s *AnalyticsService) StartCronJob(enqueuer SyncEnqueuer, credentials CredentialProvider) *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 24h", func() {
		ctx := context.Background()
		s.logger.Info("Starting periodic sync of stale users")

		cutoff := time.Now().UTC().Add(-24 * time.Hour)
		staleUsers, err := s.RepoConnInstance.FindStaleSince(ctx, cutoff)
		if err != nil {
			s.logger.Error("Failed to list stale users for periodic sync", zap.Error(err))
			return
		}

		enqueued := 0
		for _, user := range staleUsers {
			username, auth, ok := credentials.Credentials(ctx, user.UserID)
			if !ok {
				continue
			}
			_, err := enqueuer.Enqueue(model.SyncJob{
				UserID:    user.UserID,
				Username:  username,
				CSRFToken: auth.CSRFToken,
				Cookie:    auth.Cookie,
			})
			if err != nil {
				s.logger.Error("Failed to enqueue periodic sync",
					zap.String("userId", user.UserID), zap.Error(err))
				continue
			}
			enqueued++
		}

		s.logger.Info("Periodic sync scheduled",
			zap.Int("stale", len(staleUsers)), zap.Int("enqueued", enqueued))
	})

	c.Start()
	return c
}

// NoCredentials is the default provider: no credentials are stored, so the
// periodic job enqueues nothing until a real store is plugged in.
type NoCredentials struct{}

func (NoCredentials) Credentials(ctx context.Context, userID string) (string, leetcode.Auth, bool) {
	return "", leetcode.Auth{}, false
}
