package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"fyne.io/fyne/v2"

	"snippet-shell/internal/bridge"
	"snippet-shell/internal/config"
	"snippet-shell/internal/eventbus"
	"snippet-shell/internal/gui"
	"snippet-shell/internal/logger"
	"snippet-shell/internal/shutdown"
	"snippet-shell/internal/snippets"
	"snippet-shell/internal/updater"
)

const (
	AppName = config.AppName
	AppID   = "com.snippetshell.desktop"

	messageBufferSize = 64
)

// Options configures an Application. Zero values select the production
// collaborators.
type Options struct {
	Version  string
	DataDir  string
	Settings *config.Settings
	Logger   logger.Logger
	// LogCloser releases the persistent log after every other component
	// has stopped.
	LogCloser io.Closer

	// Prompter replaces the dialog-based document recovery prompts.
	Prompter snippets.Prompter
	// Checker replaces the feed-based update checker.
	Checker updater.Checker
	// GOOS overrides the platform used for the quit-on-last-window rule.
	GOOS string
}

// Application is the desktop shell: it owns the main window, the menu, the
// bridge serving window content and the update notifier.
type Application struct {
	fyneApp  fyne.App
	version  string
	settings *config.Settings
	logger   logger.Logger

	store     *snippets.Store
	bridge    *bridge.Bridge
	bus       *eventbus.Bus
	notifier  *updater.Notifier
	shutdown  *shutdown.Manager
	lifecycle *Lifecycle
	mainMenu  *fyne.MainMenu

	ctx  context.Context
	goos string
	quit func()
}

func NewApplication(fyneApp fyne.App, opts Options) *Application {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	a := &Application{
		fyneApp:   fyneApp,
		version:   opts.Version,
		settings:  settings,
		logger:    log,
		bus:       eventbus.NewBus(messageBufferSize, log),
		bridge:    bridge.New(log),
		shutdown:  shutdown.NewManager(log),
		lifecycle: NewLifecycle(),
		goos:      goos,
		quit:      fyneApp.Quit,
	}
	a.ctx = a.shutdown.Context()

	prompter := opts.Prompter
	if prompter == nil {
		prompter = gui.NewPrompter(a.lifecycle.Window)
	}
	a.store = snippets.NewStore(config.SnippetsPath(opts.DataDir), settings.LegacyPath, prompter, log)

	checker := opts.Checker
	if checker == nil {
		checker = a.newFeedChecker(opts.DataDir)
	}
	a.notifier = updater.NewNotifier(checker, a.bus, log)

	a.registerHandlers()

	if opts.LogCloser != nil {
		a.shutdown.Register("log file", shutdown.Func(func() {
			if err := opts.LogCloser.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
			}
		}))
	}
	a.shutdown.Register("message bus", a.bus)
	a.shutdown.Register("bridge", a.bridge)
	a.shutdown.Register("update notifier", a.notifier)

	log.Info("Application", "initialized", map[string]interface{}{
		"version":  opts.Version,
		"data_dir": opts.DataDir,
		"platform": goos,
		"snippets": a.store.Path(),
		"feed_url": settings.UpdateFeedURL,
	})
	return a
}

func (a *Application) newFeedChecker(dataDir string) updater.Checker {
	checker, err := updater.NewFeedChecker(
		a.settings.UpdateFeedURL,
		a.version,
		config.UpdateCacheDir(dataDir),
		a.logger,
	)
	if err != nil {
		a.logger.Info("Application", "update checks disabled", map[string]interface{}{
			"reason": err.Error(),
		})
		return nil
	}
	return checker
}

// Run shows the main window and blocks in the UI event loop until the
// process quits.
func (a *Application) Run() error {
	a.bridge.Start()
	a.shutdown.Listen(func() {
		fyne.Do(a.Quit)
	})

	a.fyneApp.Lifecycle().SetOnEnteredForeground(a.Activate)
	if a.installTray() {
		a.logger.Debug("Application", "system tray menu installed", nil)
	}
	a.fyneApp.Lifecycle().SetOnStopped(func() {
		a.logger.Info("Application", "event loop stopped", nil)
	})

	a.Ready()
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

// Quit terminates the process.
func (a *Application) Quit() {
	a.logger.Info("Application", "quit requested", nil)
	a.quit()
}
