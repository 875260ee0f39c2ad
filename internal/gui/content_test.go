package gui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"snippet-shell/internal/eventbus"
)

type fakeClient struct {
	mu      sync.Mutex
	content string
	found   bool
	saved   []string
}

func (f *fakeClient) GetSnippets(context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content, f.found, nil
}

func (f *fakeClient) SaveSnippets(_ context.Context, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, content)
	return nil
}

func (f *fakeClient) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func eventually(t *testing.T, cond func() bool, what string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestContent(t *testing.T, client SnippetClient) *Content {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	w := a.NewWindow("Snippets")
	c := NewContent(w, client, nil)
	w.SetContent(c.Container())
	return c
}

func TestContent_ApplyLoaded(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		ok         bool
		err        error
		wantText   string
		wantStatus string
	}{
		{"document", `{"a":1}`, true, nil, `{"a":1}`, "Snippets loaded"},
		{"absent", "", false, nil, "", "No snippets yet"},
		{"bridge error", "", false, errors.New("bridge: closed"), "", "Could not load snippets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContent(t, &fakeClient{})

			c.applyLoaded(tt.text, tt.ok, tt.err)

			if c.editor.Text != tt.wantText {
				t.Errorf("editor = %q, want %q", c.editor.Text, tt.wantText)
			}
			if c.status.Text != tt.wantStatus {
				t.Errorf("status = %q, want %q", c.status.Text, tt.wantStatus)
			}
		})
	}
}

func TestContent_LoadFetchesThroughClient(t *testing.T) {
	c := newTestContent(t, &fakeClient{content: `{"a":1}`, found: true})

	c.Load(context.Background())

	eventually(t, func() bool { return c.status.Text == "Snippets loaded" }, "document load")
	if c.editor.Text != `{"a":1}` {
		t.Errorf("editor = %q, want %q", c.editor.Text, `{"a":1}`)
	}
}

func TestContent_SaveSendsEditorText(t *testing.T) {
	client := &fakeClient{}
	c := newTestContent(t, client)
	c.editor.SetText(`{"b":2}`)

	test.Tap(c.saveButton)

	eventually(t, func() bool { return client.savedCount() == 1 }, "save request")
	if client.saved[0] != `{"b":2}` {
		t.Errorf("saved = %q, want %q", client.saved[0], `{"b":2}`)
	}
}

func TestContent_HandleShowsMessage(t *testing.T) {
	c := newTestContent(t, &fakeClient{})

	c.Handle(eventbus.Event{Channel: "message", Payload: "Update available."})

	eventually(t, func() bool { return c.status.Text == "Update available." }, "status update")
}

func TestContent_SelectAllCopy(t *testing.T) {
	c := newTestContent(t, &fakeClient{})
	c.editor.SetText("snippet body")

	c.SelectAll()
	c.Copy()

	if got := c.window.Clipboard().Content(); got != "snippet body" {
		t.Errorf("clipboard = %q, want %q", got, "snippet body")
	}
}

func TestContent_UniqueIDs(t *testing.T) {
	first := newTestContent(t, &fakeClient{})
	second := newTestContent(t, &fakeClient{})

	if first.GetID() == second.GetID() {
		t.Errorf("ids collide: %q", first.GetID())
	}
}
