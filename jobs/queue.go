package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devquest/cache"
	"devquest/leetcode"
	"devquest/model"
	"devquest/natsclient"
	"devquest/service"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	subjectSyncRequest = "analytics.sync.request"

	// Upper bound for one sync run; matches the queue's task time limit.
	syncTimeout = 30 * time.Minute
)

var ErrJobNotFound = errors.New("job not found")

func jobStatusKey(jobID string) string {
	return fmt.Sprintf("job:status:%s", jobID)
}

// Queue is the NATS-backed sync job queue. Enqueue publishes a job, the worker
// subscription executes it, and job status lives in the cache under a TTL.
type Queue struct {
	NatsClient  *natsclient.NatsClient
	CacheClient cache.Cache
	svc         *service.AnalyticsService
	statusTTL   time.Duration
	logger      *zap.Logger
	sub         *nats.Subscription
}

func NewQueue(
	natsClient *natsclient.NatsClient,
	cacheClient cache.Cache,
	svc *service.AnalyticsService,
	statusTTL time.Duration,
	logger *zap.Logger,
) *Queue {
	if statusTTL <= 0 {
		statusTTL = 24 * time.Hour
	}
	return &Queue{
		NatsClient:  natsClient,
		CacheClient: cacheClient,
		svc:         svc,
		statusTTL:   statusTTL,
		logger:      logger,
	}
}

// Enqueue publishes a sync job and returns its job ID. The job starts in pending
// status.
func (q *Queue) Enqueue(job model.SyncJob) (string, error) {
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}

	if err := q.setStatus(job.JobID, model.JobStatusPending); err != nil {
		return "", err
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sync job: %w", err)
	}
	if err := q.NatsClient.Publish(subjectSyncRequest, payload); err != nil {
		return "", fmt.Errorf("failed to publish sync job: %w", err)
	}

	q.logger.Info("Sync job enqueued",
		zap.String("jobId", job.JobID), zap.String("userId", job.UserID))
	return job.JobID, nil
}

// PollStatus reports pending, success or failure for a job.
func (q *Queue) PollStatus(jobID string) (string, error) {
	val, err := q.CacheClient.Get(jobStatusKey(jobID))
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", ErrJobNotFound
	}
	status, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("unexpected job status payload for %s", jobID)
	}
	return status, nil
}

// Start subscribes the worker to the sync subject.
func (q *Queue) Start() error {
	sub, err := q.NatsClient.Subscribe(subjectSyncRequest, q.handleSyncRequest)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subjectSyncRequest, err)
	}
	q.sub = sub
	q.logger.Info("Sync worker started", zap.String("subject", subjectSyncRequest))
	return nil
}

func (q *Queue) Stop() {
	if q.sub != nil {
		q.sub.Unsubscribe()
	}
}

func (q *Queue) handleSyncRequest(msg *nats.Msg) {
	var job model.SyncJob
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		q.logger.Error("Failed to decode sync job payload", zap.Error(err))
		return
	}

	log := q.logger.With(zap.String("jobId", job.JobID), zap.String("userId", job.UserID))
	log.Info("Starting sync job")

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	auth := leetcode.Auth{CSRFToken: job.CSRFToken, Cookie: job.Cookie}
	if _, err := q.svc.SyncUserData(ctx, job.UserID, job.Username, auth); err != nil {
		log.Error("Sync job failed", zap.Error(err))
		if err := q.setStatus(job.JobID, model.JobStatusFailure); err != nil {
			log.Error("Failed to record job failure", zap.Error(err))
		}
		return
	}

	if err := q.setStatus(job.JobID, model.JobStatusSuccess); err != nil {
		log.Error("Failed to record job success", zap.Error(err))
		return
	}
	log.Info("Sync job completed")
}

func (q *Queue) setStatus(jobID, status string) error {
	if err := q.CacheClient.Set(jobStatusKey(jobID), status, q.statusTTL); err != nil {
		return fmt.Errorf("failed to record status for job %s: %w", jobID, err)
	}
	return nil
}
