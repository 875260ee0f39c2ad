package app

import (
	"context"

	"snippet-shell/internal/bridge"
)

func (a *Application) registerHandlers() {
	a.bridge.Handle(bridge.ChannelGetSnippets, a.handleGetSnippets)
	a.bridge.Handle(bridge.ChannelSaveSnippets, a.handleSaveSnippets)
}

func (a *Application) handleGetSnippets(ctx context.Context, _ string) bridge.Reply {
	content, ok := a.store.Fetch(ctx)
	if !ok {
		return bridge.Null()
	}
	return bridge.Value(content)
}

// handleSaveSnippets always acknowledges; write failures are only logged.
func (a *Application) handleSaveSnippets(ctx context.Context, payload string) bridge.Reply {
	a.store.Save(ctx, payload)
	return bridge.Value(bridge.SuccessMarker)
}
