package updater

import (
	"context"
	"sync"

	"snippet-shell/internal/logger"
)

// MessageChannel carries status strings to the window content.
const MessageChannel = "message"

// Checker runs a single update check, reporting each stage through emit.
type Checker interface {
	Check(ctx context.Context, emit func(Event))
}

// MessageSink delivers a payload on a named channel without waiting.
type MessageSink interface {
	Publish(channel, payload string)
}

type Notifier struct {
	checker Checker
	sink    MessageSink
	log     logger.Logger
	wg      sync.WaitGroup
}

// NewNotifier wires checker events to sink. A nil checker disables checks.
func NewNotifier(checker Checker, sink MessageSink, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop{}
	}
	return &Notifier{
		checker: checker,
		sink:    sink,
		log:     log,
	}
}

// CheckAndNotify starts a check cycle in the background.
func (n *Notifier) CheckAndNotify(ctx context.Context) {
	if n.checker == nil {
		n.log.Info("Updater", "update check skipped", map[string]interface{}{
			"reason": "updates disabled for this build",
		})
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.checker.Check(ctx, n.Notify)
	}()
}

// Notify logs the event's message and forwards it to the sink.
func (n *Notifier) Notify(event Event) {
	message := event.Message()

	fields := map[string]interface{}{"event": event.Kind.String()}
	if event.Kind == Error {
		n.log.Warning("Updater", message, fields)
	} else {
		n.log.Info("Updater", message, fields)
	}

	n.sink.Publish(MessageChannel, message)
}

// Shutdown waits for a running check to return.
func (n *Notifier) Shutdown() {
	n.wg.Wait()
}
