package app

import (
	"sync"

	"fyne.io/fyne/v2"

	"snippet-shell/internal/eventbus"
	"snippet-shell/internal/gui"
	"snippet-shell/internal/updater"
)

// TextEditor is the editing capability the Edit menu drives.
type TextEditor interface {
	Undo()
	Redo()
	Cut()
	Copy()
	Paste()
	SelectAll()
}

// windowContent is what the shell needs from a window's body.
type windowContent interface {
	TextEditor
	eventbus.EventHandler
}

// Lifecycle owns the main window handle. At most one handle is live; a
// window hidden instead of destroyed is parked for reuse.
type Lifecycle struct {
	mu      sync.Mutex
	window  fyne.Window
	content windowContent
	parked  fyne.Window
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Window returns the live main window or nil.
func (l *Lifecycle) Window() fyne.Window {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.window
}

// Editor returns the live window's editor or nil.
func (l *Lifecycle) Editor() TextEditor {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.content == nil {
		return nil
	}
	return l.content
}

func (l *Lifecycle) attach(w fyne.Window, content windowContent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.window, l.content = w, content
	if l.parked == w {
		l.parked = nil
	}
}

// detach clears the handle if w is the live window and returns its content.
func (l *Lifecycle) detach(w fyne.Window, park bool) (windowContent, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.window != w {
		return nil, false
	}
	content := l.content
	l.window, l.content = nil, nil
	if park {
		l.parked = w
	}
	return content, true
}

func (l *Lifecycle) takeParked() fyne.Window {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.parked
	l.parked = nil
	return w
}

// keepsRunning reports whether the process outlives its last window.
func (a *Application) keepsRunning() bool {
	return a.goos == "darwin"
}

// Ready creates the main window with its menu and starts the update check.
func (a *Application) Ready() {
	a.logger.Info("Application", "ready", nil)

	a.mainMenu = a.buildMainMenu()
	if a.lifecycle.Window() == nil {
		a.createWindow()
	}

	a.notifier.CheckAndNotify(a.ctx)
}

// Activate recreates the main window when none exists.
func (a *Application) Activate() {
	if a.lifecycle.Window() != nil {
		return
	}
	a.logger.Debug("Application", "activated without window", nil)
	a.createWindow()
}

// AllWindowsClosed quits unless the platform keeps applications alive
// without windows.
func (a *Application) AllWindowsClosed() {
	if a.keepsRunning() {
		a.logger.Debug("Application", "last window closed, staying resident", nil)
		return
	}
	a.Quit()
}

func (a *Application) createWindow() {
	w := a.lifecycle.takeParked()
	if w == nil {
		w = a.fyneApp.NewWindow(AppName)
	}
	w.Resize(fyne.NewSize(a.settings.Window.Width, a.settings.Window.Height))
	w.CenterOnScreen()

	content := gui.NewContent(w, a.bridge, a.logger)
	w.SetContent(content.Container())
	if a.mainMenu != nil {
		w.SetMainMenu(a.mainMenu)
	}

	if a.keepsRunning() {
		w.SetCloseIntercept(func() {
			a.hideWindow(w)
		})
	} else {
		w.SetOnClosed(func() {
			a.windowClosed(w, false)
		})
	}

	a.attachContent(w, content)
	w.Show()
	content.Load(a.ctx)

	a.logger.Info("Application", "main window created", map[string]interface{}{
		"width":  a.settings.Window.Width,
		"height": a.settings.Window.Height,
	})
}

func (a *Application) attachContent(w fyne.Window, content windowContent) {
	a.bus.Subscribe(updater.MessageChannel, content)
	a.lifecycle.attach(w, content)
}

// hideWindow stands in for closing on platforms that stay resident: the
// window is hidden and parked, and the shell treats it as closed.
func (a *Application) hideWindow(w fyne.Window) {
	w.Hide()
	a.windowClosed(w, true)
}

func (a *Application) windowClosed(w fyne.Window, park bool) {
	content, ok := a.lifecycle.detach(w, park)
	if !ok {
		return
	}
	a.bus.Unsubscribe(updater.MessageChannel, content)
	a.logger.Info("Application", "main window closed", nil)

	a.AllWindowsClosed()
}
