package engines

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goleiroon/goleiroon/mq_client"
)

var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type expireRecorder struct {
	mu   sync.Mutex
	ids  []uint64
	fail map[uint64]bool
}

func (r *expireRecorder) expire(id uint64, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail[id] {
		return false, errors.New("boom")
	}
	r.ids = append(r.ids, id)

	return true, nil
}

func (r *expireRecorder) expired() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]uint64(nil), r.ids...)
}

func TestExpiryWatcher_Due(t *testing.T) {
	w := newExpiryWatcher(nil)

	w.Watch(3, base.Add(30*time.Minute))
	w.Watch(1, base.Add(10*time.Minute))
	w.Watch(2, base.Add(20*time.Minute))

	next, ok := w.Next()
	require.True(t, ok)
	assert.True(t, next.Equal(base.Add(10*time.Minute)))

	assert.Empty(t, w.Due(base))
	assert.Equal(t, []uint64{1, 2}, w.Due(base.Add(20*time.Minute)))
	assert.Equal(t, 1, w.Size())
	assert.Equal(t, []uint64{3}, w.Due(base.Add(time.Hour)))

	_, ok = w.Next()
	assert.False(t, ok)
}

func TestExpiryWatcher_Tick(t *testing.T) {
	recorder := &expireRecorder{fail: map[uint64]bool{2: true}}
	w := newExpiryWatcher(recorder.expire)

	w.Watch(1, base)
	w.Watch(2, base)
	w.Watch(3, base.Add(time.Hour))

	assert.Equal(t, 1, w.Tick(base))
	assert.Equal(t, []uint64{1}, recorder.expired())
	assert.Equal(t, 1, w.Size())
}

func createdEvent(t *testing.T, kind mq_client.EventKind, id uint64, expiresAt time.Time) []byte {
	t.Helper()

	data, err := json.Marshal(map[string]interface{}{"id": id, "expira_em": expiresAt})
	require.NoError(t, err)

	payload, err := json.Marshal(mq_client.Event{Kind: kind, Data: data, OccurredAt: base})
	require.NoError(t, err)

	return payload
}

func TestExpiryWatcher_Process(t *testing.T) {
	w := newExpiryWatcher(nil)

	require.NoError(t, w.Process(createdEvent(t, mq_client.EventConvocationCreated, 7, base)))
	require.NoError(t, w.Process(createdEvent(t, mq_client.EventConvocationAccepted, 8, base)))
	assert.Error(t, w.Process([]byte("not json")))

	assert.Equal(t, []uint64{7}, w.Due(base))
}

func TestExpiryWatcher_Run(t *testing.T) {
	recorder := &expireRecorder{}
	w := newExpiryWatcher(recorder.expire)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	w.Watch(42, time.Now().Add(-time.Second))

	assert.Eventually(t, func() bool {
		return len(recorder.expired()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}

	assert.Equal(t, []uint64{42}, recorder.expired())
}
