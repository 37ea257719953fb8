package mq_client

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/goleiroon/goleiroon/config"
)

type Publisher interface {
	Publish(subject string, data []byte) error
}

var (
	publisherMu sync.RWMutex
	publisher   Publisher
)

// SetPublisher overrides the NATS connection as event sink. Passing nil restores it.
func SetPublisher(p Publisher) {
	publisherMu.Lock()
	defer publisherMu.Unlock()

	publisher = p
}

func currentPublisher() Publisher {
	publisherMu.RLock()
	defer publisherMu.RUnlock()

	if publisher != nil {
		return publisher
	}
	if config.Nats != nil {
		return config.Nats
	}

	return nil
}

// EnqueueEvent publishes an event. Without a broker the event is dropped after a debug log.
func EnqueueEvent(kind EventKind, data interface{}, recipients ...uint64) {
	p := currentPublisher()
	if p == nil {
		config.Logger.Debugf("event %s dropped: no publisher", kind)
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		config.Logger.Errorf("Failed to marshal event %s: %v", kind, err)
		return
	}

	payload, err := json.Marshal(Event{
		Kind:       kind,
		Recipients: recipients,
		Data:       raw,
		OccurredAt: time.Now(),
	})
	if err != nil {
		config.Logger.Errorf("Failed to marshal event %s: %v", kind, err)
		return
	}

	if err := p.Publish(Subject(kind), payload); err != nil {
		config.Logger.Errorf("Failed to publish event %s: %v", kind, err)
	}
}

// Subscribe attaches handler to the worker binding as a queue subscriber.
func Subscribe(binding *Binding, handler func(msg *nats.Msg)) (*nats.Subscription, error) {
	if config.Nats == nil {
		return nil, nats.ErrConnectionClosed
	}

	return config.Nats.QueueSubscribe(binding.Subject, binding.Queue, handler)
}

func DecodeEvent(payload []byte) (*Event, error) {
	event := &Event{}
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, err
	}

	return event, nil
}
