// Package notify fans library changes out to in-process subscribers.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const TopicLibrary = "library"

type ChangeKind string

const (
	PlantAdded        ChangeKind = "PlantAdded"
	PlantRemoved      ChangeKind = "PlantRemoved"
	PlantRenamed      ChangeKind = "PlantRenamed"
	PlantUpdated      ChangeKind = "PlantUpdated"
	SortOptionChanged ChangeKind = "SortOptionChanged"
)

// Change describes one mutation of the library.
type Change struct {
	ID         uuid.UUID  `json:"id"`
	Kind       ChangeKind `json:"kind"`
	PlantID    uuid.UUID  `json:"plantId,omitempty"`
	SortOption string     `json:"sortOption,omitempty"`
	At         time.Time  `json:"at"`
}

func NewChange(kind ChangeKind, plantID uuid.UUID) Change {
	return Change{
		ID:      uuid.New(),
		Kind:    kind,
		PlantID: plantID,
		At:      time.Now(),
	}
}

type Subscriber chan Change

type Broker interface {
	Subscribe(topic string) Subscriber
	Unsubscribe(topic string, ch Subscriber)
	Publish(ctx context.Context, topic string, change Change) error
}

type MessageBroker struct {
	subscribers map[string][]Subscriber // keys are topics
	mu          sync.RWMutex
	log         zerolog.Logger
}

func NewMessageBroker(log zerolog.Logger) *MessageBroker {
	return &MessageBroker{
		subscribers: make(map[string][]Subscriber),
		log:         log.With().Str("component", "broker").Logger(),
	}
}

func (b *MessageBroker) Subscribe(topic string) Subscriber {
	ch := make(Subscriber, 10)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

func (b *MessageBroker) Unsubscribe(topic string, ch Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			b.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	b.log.Debug().Str("topic", topic).Msg("unsubscribed")
}

// Publish delivers change to every subscriber of topic without blocking. A
// full inbox or a done context counts as a failed delivery; the rest still
// receive the change.
func (b *MessageBroker) Publish(ctx context.Context, topic string, change Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := b.subscribers[topic]
	if len(subs) == 0 {
		b.log.Debug().Str("topic", topic).Str("change", change.ID.String()).Msg("no subscribers")
		return nil
	}

	var (
		successCount     int
		timeoutCount     int
		channelFullCount int
	)

	for i, sub := range subs {
		if ctx.Err() != nil {
			timeoutCount++
			continue
		}
		select {
		case sub <- change:
			successCount++
		default:
			channelFullCount++
			b.log.Warn().Str("topic", topic).Int("subscriber", i).Str("change", change.ID.String()).Msg("channel full")
		}
	}

	if timeoutCount > 0 || channelFullCount > 0 {
		return fmt.Errorf(
			"partial delivery failure on topic '%s': %d/%d delivered (%d timeout, %d channel full)",
			topic, successCount, len(subs), timeoutCount, channelFullCount,
		)
	}

	b.log.Debug().Str("topic", topic).Str("kind", string(change.Kind)).Int("subscribers", successCount).Msg("change delivered")
	return nil
}
