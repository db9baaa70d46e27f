package jobs

import (
	"sync"
	"testing"
	"time"

	"devquest/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) Set(key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	}
	return nil
}

func (m *memoryCache) Get(key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return val, nil
}

func (m *memoryCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryCache) Exists(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok, nil
}

func TestPollStatus_UnknownJob(t *testing.T) {
	q := NewQueue(nil, newMemoryCache(), nil, time.Hour, zap.NewNop())

	_, err := q.PollStatus("missing-job")

	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobStatusLifecycle(t *testing.T) {
	q := NewQueue(nil, newMemoryCache(), nil, time.Hour, zap.NewNop())

	require.NoError(t, q.setStatus("job-1", model.JobStatusPending))
	status, err := q.PollStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPending, status)

	require.NoError(t, q.setStatus("job-1", model.JobStatusSuccess))
	status, err = q.PollStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusSuccess, status)
}
