package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"snippet-shell/internal/gui"
)

func (a *Application) buildMainMenu() *fyne.MainMenu {
	about := fyne.NewMenuItem("About "+AppName, a.showAbout)

	quit := fyne.NewMenuItem("Quit", a.Quit)
	quit.IsQuit = true
	quit.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierShortcutDefault}

	appMenu := fyne.NewMenu("Application",
		about,
		fyne.NewMenuItemSeparator(),
		quit,
	)

	editMenu := fyne.NewMenu("Edit",
		a.editItem("Undo", fyne.KeyZ, fyne.KeyModifierShortcutDefault, TextEditor.Undo),
		a.editItem("Redo", fyne.KeyZ, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, TextEditor.Redo),
		fyne.NewMenuItemSeparator(),
		a.editItem("Cut", fyne.KeyX, fyne.KeyModifierShortcutDefault, TextEditor.Cut),
		a.editItem("Copy", fyne.KeyC, fyne.KeyModifierShortcutDefault, TextEditor.Copy),
		a.editItem("Paste", fyne.KeyV, fyne.KeyModifierShortcutDefault, TextEditor.Paste),
		a.editItem("Select All", fyne.KeyA, fyne.KeyModifierShortcutDefault, TextEditor.SelectAll),
	)

	return fyne.NewMainMenu(appMenu, editMenu)
}

// editItem builds a menu entry that forwards to the live window's editor.
func (a *Application) editItem(label string, key fyne.KeyName, mod fyne.KeyModifier, action func(TextEditor)) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, func() {
		if editor := a.lifecycle.Editor(); editor != nil {
			action(editor)
		}
	})
	item.Shortcut = &desktop.CustomShortcut{KeyName: key, Modifier: mod}
	return item
}

func (a *Application) showAbout() {
	w := a.lifecycle.Window()
	if w == nil {
		return
	}
	gui.ShowAbout(w, AppName, a.version, a.store.Path())
}

// trayMenu reopens the main window. It is the way back on platforms where
// closing only hides the window and no window is left to take focus.
func (a *Application) trayMenu() *fyne.Menu {
	return fyne.NewMenu(AppName,
		fyne.NewMenuItem("Show "+AppName, a.Activate),
	)
}

// installTray adds the tray menu where the process outlives its window and
// the driver supports a system tray.
func (a *Application) installTray() bool {
	if !a.keepsRunning() {
		return false
	}
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		return false
	}
	desk.SetSystemTrayMenu(a.trayMenu())
	return true
}
