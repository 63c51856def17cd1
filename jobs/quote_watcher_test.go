package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-gateway/jobs"
	"marketplace-gateway/models"
)

type fakeRequestLister struct {
	mu       sync.Mutex
	requests []models.ServiceRequest
	err      error
}

func (f *fakeRequestLister) ListServiceRequests(ctx context.Context, token string) ([]models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.ServiceRequest, len(f.requests))
	copy(out, f.requests)
	return out, nil
}

func (f *fakeRequestLister) setCounts(counts map[uint]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = f.requests[:0]
	for id, count := range counts {
		f.requests = append(f.requests, models.ServiceRequest{
			ID:          id,
			Status:      models.RequestStatusPending,
			QuotesCount: count,
		})
	}
}

type notifyCall struct {
	userID     uint
	requestIDs []uint
}

type fakeQuoteNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeQuoteNotifier) NotifyNewQuotes(userID uint, requestIDs []uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{userID: userID, requestIDs: requestIDs})
}

func (f *fakeQuoteNotifier) snapshot() []notifyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notifyCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func newWatcherFixture() (*jobs.QuoteWatcher, *fakeRequestLister, *fakeQuoteNotifier) {
	api := &fakeRequestLister{}
	notifier := &fakeQuoteNotifier{}
	watcher := jobs.NewQuoteWatcher(api, notifier, time.Hour, time.Second)
	return watcher, api, notifier
}

func TestFirstCheckOnlyPrimes(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 3, 2: 1})
	watcher.Watch(7, "tok")

	watcher.Check(7)

	assert.Empty(t, notifier.snapshot(), "the priming load must not fire notifications")
}

func TestUnchangedCountsNeverRefire(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 2})
	watcher.Watch(7, "tok")

	watcher.Check(7)
	watcher.Check(7)
	watcher.Check(7)

	assert.Empty(t, notifier.snapshot())
}

func TestIncreasedCountFiresOnce(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 2, 2: 0})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	api.setCounts(map[uint]int{1: 3, 2: 0})
	watcher.Check(7)

	calls := notifier.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, uint(7), calls[0].userID)
	assert.Equal(t, []uint{1}, calls[0].requestIDs)

	// steady state again: no repeat for the same counts
	watcher.Check(7)
	assert.Len(t, notifier.snapshot(), 1)
}

func TestMultipleIncreasesBundleIntoOneCall(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{3: 1, 1: 0, 2: 5})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	api.setCounts(map[uint]int{3: 2, 1: 1, 2: 5})
	watcher.Check(7)

	calls := notifier.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []uint{1, 3}, calls[0].requestIDs, "ids are sorted and bundled per cycle")
}

func TestDecreasedCountIsIgnored(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 4})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	api.setCounts(map[uint]int{1: 2})
	watcher.Check(7)

	assert.Empty(t, notifier.snapshot())
}

func TestNewRequestAfterPrimingFires(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 0})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	// a request created after priming that already carries a quote
	api.setCounts(map[uint]int{1: 0, 2: 1})
	watcher.Check(7)

	calls := notifier.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []uint{2}, calls[0].requestIDs)
}

func TestPollFailureKeepsSnapshot(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 2})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	api.mu.Lock()
	api.err = errors.New("backend down")
	api.mu.Unlock()
	watcher.Check(7)

	// back up, with one new quote: the diff runs against the pre-failure
	// snapshot
	api.mu.Lock()
	api.err = nil
	api.mu.Unlock()
	api.setCounts(map[uint]int{1: 3})
	watcher.Check(7)

	calls := notifier.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []uint{1}, calls[0].requestIDs)
}

func TestUnwatchStopsDetection(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 0})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	watcher.Unwatch(7)
	api.setCounts(map[uint]int{1: 5})
	watcher.Check(7)

	assert.Empty(t, notifier.snapshot())
}

func TestRewatchStartsUnprimed(t *testing.T) {
	watcher, api, notifier := newWatcherFixture()
	api.setCounts(map[uint]int{1: 0})
	watcher.Watch(7, "tok")
	watcher.Check(7)

	watcher.Unwatch(7)
	watcher.Watch(7, "tok-2")

	// counts grew while unwatched; the fresh watch primes silently
	api.setCounts(map[uint]int{1: 5})
	watcher.Check(7)

	assert.Empty(t, notifier.snapshot())
}
