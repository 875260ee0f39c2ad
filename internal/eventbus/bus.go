// Package eventbus delivers shell-to-content messages asynchronously. Publish
// never blocks and never waits for a subscriber; events that do not fit in the
// buffer are dropped.
package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"snippet-shell/internal/logger"
)

type Event struct {
	Channel   string
	Payload   string
	Timestamp time.Time
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once
	log         logger.Logger
}

func NewBus(bufferSize int, log logger.Logger) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = logger.Nop{}
	}

	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
	}

	bus.startWorker()
	return bus
}

// Publish queues payload for every subscriber of channel.
func (b *Bus) Publish(channel, payload string) {
	event := Event{Channel: channel, Payload: payload, Timestamp: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.ctx.Err() != nil {
		return
	}

	select {
	case b.buffer <- event:
	default:
		b.log.Warning("EventBus", "buffer full, event dropped", map[string]interface{}{
			"channel": channel,
		})
	}
}

func (b *Bus) Subscribe(channel string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[channel] = append(b.subscribers[channel], handler)
}

func (b *Bus) Unsubscribe(channel string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[channel]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[channel] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
}

// Shutdown stops the worker after it drains queued events.
func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.cancel()
		close(b.buffer)
		b.mu.Unlock()

		b.wg.Wait()
	})
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for event := range b.buffer {
			b.dispatchEvent(event)
		}
	}()
}

// dispatchEvent runs handlers in subscription order on the worker goroutine so
// every subscriber sees events in publish order.
func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.subscribers[event.Channel]))
	copy(handlers, b.subscribers[event.Channel])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.safeHandle(handler, event)
	}
}

func (b *Bus) safeHandle(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("EventBus", fmt.Errorf("handler panic: %v", r), map[string]interface{}{
				"handler": h.GetID(),
				"channel": event.Channel,
			})
		}
	}()
	h.Handle(event)
}

// HandlerFunc adapts a function to EventHandler under a fixed id.
type HandlerFunc struct {
	ID string
	Fn func(Event)
}

func (h HandlerFunc) Handle(event Event) { h.Fn(event) }
func (h HandlerFunc) GetID() string      { return h.ID }
