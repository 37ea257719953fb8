package engines

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/mq_client"
)

const ExpiryWatcherName = "expiry_watcher"

type deadline struct {
	ID        uint64
	ExpiresAt time.Time
}

func byDeadline(a, b interface{}) int {
	x, y := a.(deadline).ExpiresAt, b.(deadline).ExpiresAt

	switch {
	case x.Before(y):
		return -1
	case x.After(y):
		return 1
	default:
		return 0
	}
}

// ExpiryWatcher expires each pending convocation right at its deadline instead of
// waiting for the next sweep. The sweep job still catches anything missed here.
type ExpiryWatcher struct {
	mu     sync.Mutex
	heap   *binaryheap.Heap
	wakeup chan struct{}
	expire func(id uint64, now time.Time) (bool, error)
}

func NewExpiryWatcher() *ExpiryWatcher {
	w := newExpiryWatcher(models.ExpireConvocation)

	deadlines, err := models.PendingDeadlines()
	if err != nil {
		config.Logger.Errorf("%s: failed to load pending convocations: %v", ExpiryWatcherName, err)
	}
	for _, d := range deadlines {
		w.Watch(d.ID, d.ExpiresAt)
	}

	return w
}

func newExpiryWatcher(expire func(id uint64, now time.Time) (bool, error)) *ExpiryWatcher {
	return &ExpiryWatcher{
		heap:   binaryheap.NewWith(byDeadline),
		wakeup: make(chan struct{}, 1),
		expire: expire,
	}
}

func (w *ExpiryWatcher) Watch(id uint64, expiresAt time.Time) {
	w.mu.Lock()
	w.heap.Push(deadline{ID: id, ExpiresAt: expiresAt})
	w.mu.Unlock()

	select {
	case w.wakeup <- struct{}{}:
	default:
	}
}

func (w *ExpiryWatcher) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.heap.Size()
}

// Next returns the earliest deadline being watched.
func (w *ExpiryWatcher) Next() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	top, ok := w.heap.Peek()
	if !ok {
		return time.Time{}, false
	}

	return top.(deadline).ExpiresAt, true
}

// Due pops every convocation id whose deadline is at or before now.
func (w *ExpiryWatcher) Due(now time.Time) []uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ids []uint64
	for {
		top, ok := w.heap.Peek()
		if !ok || top.(deadline).ExpiresAt.After(now) {
			return ids
		}

		w.heap.Pop()
		ids = append(ids, top.(deadline).ID)
	}
}

// Tick expires everything due at now and returns how many convocations changed.
func (w *ExpiryWatcher) Tick(now time.Time) int {
	expired := 0

	for _, id := range w.Due(now) {
		changed, err := w.expire(id, now)
		if err != nil {
			metrics.RecordJobItem(ExpiryWatcherName, false)
			config.Logger.WithField("convocacao_id", id).Errorf("%s: %v", ExpiryWatcherName, err)
			continue
		}
		if changed {
			expired++
			metrics.RecordJobItem(ExpiryWatcherName, true)
		}
	}

	return expired
}

func (w *ExpiryWatcher) Process(payload []byte) error {
	event, err := mq_client.DecodeEvent(payload)
	if err != nil {
		return err
	}
	if event.Kind != mq_client.EventConvocationCreated {
		return nil
	}

	var convocation struct {
		ID        uint64    `json:"id"`
		ExpiresAt time.Time `json:"expira_em"`
	}
	if err := json.Unmarshal(event.Data, &convocation); err != nil {
		return err
	}

	w.Watch(convocation.ID, convocation.ExpiresAt)

	return nil
}

func (w *ExpiryWatcher) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		w.Tick(models.Now())

		wait := time.Hour
		if next, ok := w.Next(); ok {
			wait = time.Until(next)
			if wait < 0 {
				wait = 0
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case <-w.wakeup:
		case <-timer.C:
		}
	}
}
