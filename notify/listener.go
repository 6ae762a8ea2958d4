package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type ChangeHandler interface {
	HandleChange(change Change)
}

// HandlerFunc adapts a function to ChangeHandler.
type HandlerFunc func(change Change)

func (f HandlerFunc) HandleChange(change Change) { f(change) }

// Listener drains one subscription on its own goroutine.
type Listener struct {
	ID      uuid.UUID
	broker  Broker
	inbox   Subscriber
	topic   string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	handler ChangeHandler
}

// NewListener subscribes immediately, so changes published before Start are
// buffered rather than lost.
func NewListener(broker Broker, topic string, handler ChangeHandler) *Listener {
	return &Listener{
		ID:      uuid.New(),
		broker:  broker,
		inbox:   broker.Subscribe(topic),
		topic:   topic,
		handler: handler,
	}
}

func (l *Listener) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(1)
	go l.listen(ctx)
}

func (l *Listener) Shutdown() {
	if l.cancel != nil {
		l.cancel()
	}
	l.broker.Unsubscribe(l.topic, l.inbox)
	l.wg.Wait()
}

func (l *Listener) listen(ctx context.Context) {
	defer l.wg.Done()
	for {
		select {
		case change := <-l.inbox:
			if l.handler != nil {
				l.handler.HandleChange(change)
			}
		case <-ctx.Done():
			return
		}
	}
}
