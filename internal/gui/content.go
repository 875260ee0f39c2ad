package gui

import (
	"context"
	"fmt"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"snippet-shell/internal/eventbus"
	"snippet-shell/internal/logger"
)

// SnippetClient is the window content's view of the bridge.
type SnippetClient interface {
	GetSnippets(ctx context.Context) (string, bool, error)
	SaveSnippets(ctx context.Context, content string) error
}

var contentSeq atomic.Int64

// Content is the main window's body: an editor over the snippet document, a
// save button and a status line fed by shell messages.
type Content struct {
	id     string
	window fyne.Window
	client SnippetClient
	logger logger.Logger

	editor     *widget.Entry
	status     *widget.Label
	saveButton *widget.Button
	container  *fyne.Container
}

func NewContent(window fyne.Window, client SnippetClient, log logger.Logger) *Content {
	if log == nil {
		log = logger.Nop{}
	}

	c := &Content{
		id:     fmt.Sprintf("content-%d", contentSeq.Add(1)),
		window: window,
		client: client,
		logger: log,
	}
	c.setupContent()
	return c
}

func (c *Content) setupContent() {
	c.editor = widget.NewMultiLineEntry()
	c.editor.SetPlaceHolder("Loading snippets...")
	c.editor.Wrapping = fyne.TextWrapOff

	c.status = widget.NewLabel("Ready")
	c.status.Truncation = fyne.TextTruncateEllipsis

	c.saveButton = widget.NewButton("Save", func() {
		c.Save(context.Background())
	})
	c.saveButton.Importance = widget.HighImportance

	statusBar := container.NewBorder(nil, nil, nil, c.saveButton, c.status)
	c.container = container.NewBorder(nil, statusBar, nil, nil, c.editor)
}

func (c *Content) Container() *fyne.Container {
	return c.container
}

// Load requests the document in the background and fills the editor.
func (c *Content) Load(ctx context.Context) {
	go func() {
		text, ok, err := c.client.GetSnippets(ctx)
		fyne.Do(func() {
			c.applyLoaded(text, ok, err)
		})
	}()
}

func (c *Content) applyLoaded(text string, ok bool, err error) {
	c.editor.SetPlaceHolder("")
	if err != nil {
		c.logger.Error("Content", fmt.Errorf("load snippets: %w", err), nil)
		c.status.SetText("Could not load snippets")
		return
	}
	if !ok {
		c.editor.SetText("")
		c.status.SetText("No snippets yet")
		return
	}
	c.editor.SetText(text)
	c.status.SetText("Snippets loaded")
}

// Save sends the editor text to the shell in the background.
func (c *Content) Save(ctx context.Context) {
	text := c.editor.Text
	go func() {
		err := c.client.SaveSnippets(ctx, text)
		fyne.Do(func() {
			if err != nil {
				c.logger.Error("Content", fmt.Errorf("save snippets: %w", err), nil)
				c.status.SetText("Save failed")
				return
			}
			c.status.SetText("Snippets saved")
		})
	}()
}

// Handle shows shell messages in the status line.
func (c *Content) Handle(event eventbus.Event) {
	fyne.Do(func() {
		c.status.SetText(event.Payload)
	})
}

func (c *Content) GetID() string {
	return c.id
}

func (c *Content) Undo()      { c.shortcut(&fyne.ShortcutUndo{}) }
func (c *Content) Redo()      { c.shortcut(&fyne.ShortcutRedo{}) }
func (c *Content) Cut()       { c.shortcut(&fyne.ShortcutCut{Clipboard: c.window.Clipboard()}) }
func (c *Content) Copy()      { c.shortcut(&fyne.ShortcutCopy{Clipboard: c.window.Clipboard()}) }
func (c *Content) Paste()     { c.shortcut(&fyne.ShortcutPaste{Clipboard: c.window.Clipboard()}) }
func (c *Content) SelectAll() { c.shortcut(&fyne.ShortcutSelectAll{}) }

// shortcut routes an edit action to the editor, the window's only text surface.
func (c *Content) shortcut(s fyne.Shortcut) {
	c.window.Canvas().Focus(c.editor)
	c.editor.TypedShortcut(s)
}
