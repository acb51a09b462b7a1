package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStatsRepo struct {
	mu          sync.Mutex
	websiteRuns int
	eventRuns   []string
}

func (m *mockStatsRepo) UpdateEventStats(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventRuns = append(m.eventRuns, eventID)
	return nil
}

func (m *mockStatsRepo) UpdateWebsiteStats(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.websiteRuns++
	return nil
}

func TestStatsServiceProcessesJobs(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := NewStatsService(repo, 1, 1, 0, nil)
	svc.Start(context.Background())

	require.NoError(t, svc.EnqueueWebsiteStats())
	require.NoError(t, svc.EnqueueEventStats("ev-1"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		repo.mu.Lock()
		done := repo.websiteRuns == 1 && len(repo.eventRuns) == 1
		repo.mu.Unlock()
		if done {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	svc.Stop()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.websiteRuns)
	assert.Equal(t, []string{"ev-1"}, repo.eventRuns)
}

func TestStatsServiceRejectsEmptyEventID(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := NewStatsService(repo, 1, 1, 0, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	require.NoError(t, svc.EnqueueEventStats(""))
	time.Sleep(50 * time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Empty(t, repo.eventRuns)
}
