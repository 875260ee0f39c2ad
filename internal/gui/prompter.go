package gui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

var errNoWindow = errors.New("no window to host the dialog")

// Prompter shows the document recovery dialogs on the current main window.
// Its methods block the calling goroutine, which must not be the UI goroutine.
type Prompter struct {
	window   func() fyne.Window
	openFile func(w fyne.Window, filter storage.FileFilter, callback func(fyne.URIReadCloser, error))
}

// NewPrompter returns a prompter whose dialogs attach to the window returned
// by current at prompt time.
func NewPrompter(current func() fyne.Window) *Prompter {
	return &Prompter{window: current, openFile: showFileOpen}
}

// documentFilter limits the chooser to JSON documents.
func documentFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter([]string{".json"})
}

func showFileOpen(w fyne.Window, filter storage.FileFilter, callback func(fyne.URIReadCloser, error)) {
	d := dialog.NewFileOpen(callback, w)
	d.SetFilter(filter)
	d.Show()
}

func (p *Prompter) ConfirmHasSnippets(ctx context.Context) (bool, error) {
	w := p.window()
	if w == nil {
		return false, errNoWindow
	}

	answer := make(chan bool, 1)
	fyne.Do(func() {
		d := dialog.NewConfirm(
			"Have you created any snippets?",
			"Have you created any snippets yet?\n\nIf so, they need to be migrated to the new storage location.",
			func(yes bool) { answer <- yes },
			w,
		)
		d.SetConfirmText("Yes")
		d.SetDismissText("No")
		d.Show()
	})

	select {
	case yes := <-answer:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (p *Prompter) ExplainLocate(ctx context.Context) error {
	w := p.window()
	if w == nil {
		return errNoWindow
	}

	closed := make(chan struct{})
	fyne.Do(func() {
		d := dialog.NewInformation(
			"Locate snippets.json",
			"You will be prompted to choose a file named snippets.json using the file chooser.\n\nLook in the folder where the previous version kept its data.",
			w,
		)
		d.SetOnClosed(func() { close(closed) })
		d.Show()
	})

	select {
	case <-closed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type choice struct {
	path string
	err  error
}

// chosenFile maps a file dialog result to a path; a nil reader is a cancel.
func chosenFile(reader fyne.URIReadCloser, err error) choice {
	if err != nil {
		return choice{err: err}
	}
	if reader == nil {
		return choice{}
	}
	defer reader.Close()
	return choice{path: reader.URI().Path()}
}

func (p *Prompter) ChooseFile(ctx context.Context) (string, error) {
	w := p.window()
	if w == nil {
		return "", errNoWindow
	}

	chosen := make(chan choice, 1)
	fyne.Do(func() {
		p.openFile(w, documentFilter(), func(reader fyne.URIReadCloser, err error) {
			chosen <- chosenFile(reader, err)
		})
	})

	select {
	case c := <-chosen:
		return c.path, c.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ShowAbout displays the application name, version and document location.
func ShowAbout(w fyne.Window, name, version, documentPath string) {
	dialog.ShowInformation("About "+name, name+" "+version+"\n\nSnippets are stored in\n"+documentPath, w)
}
