package blocklist_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	appblocklist "github.com/linkveil/cloakgate/pkg/app/blocklist"
	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
)

type fakeRepo struct {
	mu      sync.Mutex
	overlay blocklist.GlobalBlocklists
	err     error
	fetches atomic.Int64
	gate    chan struct{}
}

func (f *fakeRepo) GetOverlay(ctx context.Context) (blocklist.GlobalBlocklists, error) {
	f.fetches.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return blocklist.GlobalBlocklists{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlay, f.err
}

func (f *fakeRepo) MergeWrite(_ context.Context, lists blocklist.GlobalBlocklists) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overlay = f.overlay.Merge(lists)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestStore_BaselineBeforeFirstFetch(t *testing.T) {
	repo := &fakeRepo{gate: make(chan struct{})}
	store := appblocklist.NewStore(repo, time.Minute, testLogger())

	lists := store.Get(context.Background())

	baseline := appblocklist.Baseline()
	assert.Equal(t, baseline.BlockedIPs, lists.BlockedIPs)
	assert.Equal(t, baseline.BlockedUserAgents, lists.BlockedUserAgents)
	close(repo.gate)
}

func TestStore_SingleFetchUnderConcurrentGets(t *testing.T) {
	repo := &fakeRepo{
		overlay: blocklist.GlobalBlocklists{BlockedIPs: []string{"198.51.100.1"}},
		gate:    make(chan struct{}),
	}
	store := appblocklist.NewStore(repo, time.Minute, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Get(context.Background())
		}()
	}
	wg.Wait()

	// All callers returned without waiting on the fetch.
	close(repo.gate)
	assert.Eventually(t, func() bool {
		lists := store.Get(context.Background())
		return contains(lists.BlockedIPs, "198.51.100.1")
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, int64(1), repo.fetches.Load())
}

func TestStore_ServesLastKnownGoodOnFailure(t *testing.T) {
	repo := &fakeRepo{overlay: blocklist.GlobalBlocklists{BlockedIPs: []string{"198.51.100.1"}}}
	store := appblocklist.NewStore(repo, time.Minute, testLogger())

	assert.NoError(t, store.Refresh(context.Background()))
	lists := store.Get(context.Background())
	assert.True(t, contains(lists.BlockedIPs, "198.51.100.1"))

	repo.mu.Lock()
	repo.err = errors.New("connection refused")
	repo.mu.Unlock()

	assert.Error(t, store.Refresh(context.Background()))

	lists = store.Get(context.Background())
	assert.True(t, contains(lists.BlockedIPs, "198.51.100.1"))
}

func TestStore_RefreshMergesOverlayOverBaseline(t *testing.T) {
	repo := &fakeRepo{overlay: blocklist.GlobalBlocklists{
		BlockedIPs:        []string{"198.51.100.1"},
		BlockedUserAgents: []string{"GoogleBot"},
	}}
	store := appblocklist.NewStore(repo, time.Minute, testLogger())

	assert.NoError(t, store.Refresh(context.Background()))
	lists := store.Get(context.Background())

	assert.True(t, contains(lists.BlockedIPs, "198.51.100.1"))
	// Overlay value deduplicates case-insensitively against the baseline.
	count := 0
	for _, ua := range lists.BlockedUserAgents {
		if ua == "googlebot" || ua == "GoogleBot" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	// Baseline entries survive the merge.
	assert.True(t, contains(lists.BlockedIPs, "66.249.64.0/19"))
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
