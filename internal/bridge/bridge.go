// Package bridge connects window content to shell-side operations through
// named request/response channels. A caller is suspended until its reply
// arrives; requests are served one at a time by the bridge loop.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"snippet-shell/internal/logger"
)

const (
	ChannelGetSnippets  = "get_snippets"
	ChannelSaveSnippets = "save_snippets"
)

// SuccessMarker is the reply to save requests.
const SuccessMarker = "1"

var (
	ErrUnknownChannel = errors.New("bridge: unknown channel")
	ErrClosed         = errors.New("bridge: closed")
)

// Reply is a handler result. Null replies carry no value.
type Reply struct {
	Value string
	Null  bool
}

// Value wraps v in a non-null reply.
func Value(v string) Reply { return Reply{Value: v} }

// Null is the absent reply.
func Null() Reply { return Reply{Null: true} }

// HandlerFunc serves one request on a channel.
type HandlerFunc func(ctx context.Context, payload string) Reply

type request struct {
	ctx     context.Context
	channel string
	payload string
	reply   chan result
}

type result struct {
	reply Reply
	err   error
}

type Bridge struct {
	handlers map[string]HandlerFunc
	requests chan request
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.RWMutex
	log      logger.Logger
}

func New(log logger.Logger) *Bridge {
	if log == nil {
		log = logger.Nop{}
	}

	return &Bridge{
		handlers: make(map[string]HandlerFunc),
		requests: make(chan request),
		done:     make(chan struct{}),
		log:      log,
	}
}

// Handle registers h for channel, replacing any previous handler.
func (b *Bridge) Handle(channel string, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[channel] = h
}

// Start launches the serving loop.
func (b *Bridge) Start() {
	b.wg.Add(1)
	go b.serve()
}

// Shutdown stops the serving loop. Pending and later invocations fail with
// ErrClosed.
func (b *Bridge) Shutdown() {
	b.stopOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}

func (b *Bridge) serve() {
	defer b.wg.Done()

	for {
		select {
		case req := <-b.requests:
			req.reply <- b.dispatch(req)
		case <-b.done:
			return
		}
	}
}

func (b *Bridge) dispatch(req request) result {
	b.mu.RLock()
	h, ok := b.handlers[req.channel]
	b.mu.RUnlock()

	if !ok {
		return result{err: fmt.Errorf("%w: %s", ErrUnknownChannel, req.channel)}
	}

	b.log.Debug("Bridge", "request", map[string]interface{}{
		"channel": req.channel,
	})
	return result{reply: h(req.ctx, req.payload)}
}

// Invoke sends payload on channel and waits for the reply.
func (b *Bridge) Invoke(ctx context.Context, channel, payload string) (Reply, error) {
	req := request{
		ctx:     ctx,
		channel: channel,
		payload: payload,
		reply:   make(chan result, 1),
	}

	select {
	case b.requests <- req:
	case <-b.done:
		return Reply{}, ErrClosed
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.reply, res.err
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
}

// GetSnippets invokes get_snippets. ok is false for a null reply.
func (b *Bridge) GetSnippets(ctx context.Context) (content string, ok bool, err error) {
	reply, err := b.Invoke(ctx, ChannelGetSnippets, "")
	if err != nil {
		return "", false, err
	}
	return reply.Value, !reply.Null, nil
}

// SaveSnippets invokes save_snippets.
func (b *Bridge) SaveSnippets(ctx context.Context, content string) error {
	reply, err := b.Invoke(ctx, ChannelSaveSnippets, content)
	if err != nil {
		return err
	}
	if reply.Null {
		return fmt.Errorf("save_snippets: null reply")
	}
	return nil
}
