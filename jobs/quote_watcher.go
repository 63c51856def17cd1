package jobs

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"marketplace-gateway/models"
)

// RequestLister is the slice of the backend the watcher needs
type RequestLister interface {
	ListServiceRequests(ctx context.Context, token string) ([]models.ServiceRequest, error)
}

// QuoteNotifier receives one event per refresh cycle that found new quotes
type QuoteNotifier interface {
	NotifyNewQuotes(userID uint, requestIDs []uint)
}

// watch is the per-client polling state: the last quotes_count snapshot and
// whether a first load has primed it
type watch struct {
	token    string
	snapshot map[uint]int
	primed   bool
}

// QuoteWatcher polls the backend for each watched client and detects
// requests whose quotes_count increased since the previous snapshot.
// Detection is edge-triggered: unchanged counts never re-fire, and the first
// load only primes the snapshot.
type QuoteWatcher struct {
	api      RequestLister
	notifier QuoteNotifier
	interval time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	watches map[uint]*watch

	stopChan chan bool
}

// NewQuoteWatcher creates a watcher polling at the given interval
func NewQuoteWatcher(api RequestLister, notifier QuoteNotifier, interval, timeout time.Duration) *QuoteWatcher {
	return &QuoteWatcher{
		api:      api,
		notifier: notifier,
		interval: interval,
		timeout:  timeout,
		watches:  make(map[uint]*watch),
		stopChan: make(chan bool),
	}
}

// Watch registers (or re-registers) a client for new-quote detection. The
// token is kept for the background polls.
func (j *QuoteWatcher) Watch(userID uint, token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w, ok := j.watches[userID]; ok {
		w.token = token
		return
	}
	j.watches[userID] = &watch{token: token, snapshot: make(map[uint]int)}
}

// Unwatch stops polling for a client and drops their snapshot
func (j *QuoteWatcher) Unwatch(userID uint) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.watches, userID)
}

// Start begins the watcher loop
func (j *QuoteWatcher) Start() {
	go j.run()
	log.Println("🚀 Quote watcher started")
}

// Stop stops the watcher loop
func (j *QuoteWatcher) Stop() {
	j.stopChan <- true
	log.Println("🛑 Quote watcher stopped")
}

func (j *QuoteWatcher) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.CheckAll()
		case <-j.stopChan:
			return
		}
	}
}

// CheckAll runs one detection cycle for every watched client
func (j *QuoteWatcher) CheckAll() {
	j.mu.Lock()
	users := make([]uint, 0, len(j.watches))
	for userID := range j.watches {
		users = append(users, userID)
	}
	j.mu.Unlock()

	for _, userID := range users {
		j.Check(userID)
	}
}

// Check runs one detection cycle for a single client. At most one
// notification fires per cycle, listing every request whose count grew.
func (j *QuoteWatcher) Check(userID uint) {
	j.mu.Lock()
	w, ok := j.watches[userID]
	if !ok {
		j.mu.Unlock()
		return
	}
	token := w.token
	j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	requests, err := j.api.ListServiceRequests(ctx, token)
	if err != nil {
		log.Printf("⚠️ Quote watcher poll failed for user %d: %v", userID, err)
		return
	}

	fresh := make(map[uint]int, len(requests))
	for _, r := range requests {
		fresh[r.ID] = r.QuotesCount
	}

	j.mu.Lock()
	w, ok = j.watches[userID]
	if !ok {
		j.mu.Unlock()
		return
	}
	var increased []uint
	if w.primed {
		for id, count := range fresh {
			if count > w.snapshot[id] {
				increased = append(increased, id)
			}
		}
	}
	// swap the snapshot only after the comparison so the next tick diffs
	// against this cycle's counts
	w.snapshot = fresh
	w.primed = true
	j.mu.Unlock()

	if len(increased) == 0 {
		return
	}
	sort.Slice(increased, func(a, b int) bool { return increased[a] < increased[b] })
	log.Printf("📨 New quotes detected for user %d on requests %v", userID, increased)
	if j.notifier != nil {
		j.notifier.NotifyNewQuotes(userID, increased)
	}
}
