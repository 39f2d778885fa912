package ui

import (
	"fmt"

	"overlay-chat/chat"
	"overlay-chat/creds"
	"overlay-chat/db"
	"overlay-chat/llm"
	"overlay-chat/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// App represents the overlay application: a single window holding the
// transcript, the credential setup screen and a floating control panel. The
// desktop shell hosting the window is expected to set transparency flags;
// the app only adjusts its own background opacity.
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	logger     *utils.Logger
	orch       *chat.Orchestrator

	chatView  *ChatView
	setupView *SetupView
	panel     fyne.CanvasObject
	body      *fyne.Container
}

// NewApp wires the orchestration core to the presentation shell.
func NewApp(config *utils.Config, configPath string, database *db.DB, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("overlay-chat")
	window := fyneApp.NewWindow("Overlay Chat")

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	orch := chat.NewOrchestrator(llm.DefaultRegistry(), creds.NewStore(database), logger)

	a := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		logger:     logger,
		orch:       orch,
	}

	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		a.config.UI.WindowWidth = int(size.Width)
		a.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(a.configPath, a.config); err != nil {
			a.logger.Error("Failed to save config: %v", err)
		}
	})

	a.applyTheme()
	a.buildUI()
	a.setupKeyboardShortcuts()

	// Orchestrator resolutions arrive on its goroutine; marshal every
	// re-render back onto the UI thread.
	orch.SetOnChange(func() {
		fyne.Do(func() {
			a.render()
		})
	})
	a.render()

	return a
}

// applyTheme rebuilds the theme from config (font size, opacity, variant).
func (a *App) applyTheme() {
	isDark := a.config.UI.Theme == "dark"
	a.fyneApp.Settings().SetTheme(newOverlayTheme(a.config.UI.FontSize, a.config.UI.Opacity, isDark))
}

// buildUI assembles the control panel and the chat/setup body.
func (a *App) buildUI() {
	a.chatView = NewChatView(a)
	a.setupView = NewSetupView(a)
	a.panel = a.buildControlPanel()

	a.body = container.NewStack(a.chatView.Build(), a.setupView.Build())

	content := container.NewBorder(a.panel, nil, nil, nil, a.body)
	a.window.SetContent(content)

	a.setPanelVisible(a.config.UI.ShowControlPanel)
}

// buildControlPanel creates the floating control strip: provider selector,
// opacity slider, setup and hide buttons.
func (a *App) buildControlPanel() fyne.CanvasObject {
	providers := a.orch.Providers()
	names := make([]string, 0, len(providers))
	byName := make(map[string]string, len(providers))
	for _, p := range providers {
		names = append(names, p.DisplayName)
		byName[p.DisplayName] = p.ID
	}

	providerSelect := widget.NewSelect(names, func(name string) {
		id, ok := byName[name]
		if !ok || id == a.orch.ActiveProvider() {
			return
		}
		if err := a.orch.SetActiveProvider(id); err != nil {
			a.logger.Error("Failed to switch provider: %v", err)
			a.showError(fmt.Sprintf("Failed to switch provider: %v", err))
		}
	})
	if cfg, err := a.orch.ActiveConfig(); err == nil {
		providerSelect.SetSelected(cfg.DisplayName)
	}

	opacitySlider := widget.NewSlider(0.2, 1.0)
	opacitySlider.Step = 0.05
	opacitySlider.SetValue(a.config.UI.Opacity)
	opacitySlider.OnChanged = func(value float64) {
		a.config.UI.Opacity = value
		a.applyTheme()
	}
	opacitySlider.OnChangeEnded = func(value float64) {
		a.config.UI.Opacity = value
		// Snapshot the config so the disk write off the UI thread does not
		// race further slider edits.
		snapshot := *a.config
		utils.SafeGo(a.logger, "save opacity", func() {
			if err := utils.SaveConfig(a.configPath, &snapshot); err != nil {
				a.logger.Error("Failed to save opacity: %v", err)
			}
		})
	}

	setupButton := widget.NewButton("Keys", func() {
		a.orch.ShowSetup(true)
	})
	setupButton.Importance = widget.LowImportance

	hideButton := widget.NewButton("Hide", func() {
		a.setPanelVisible(false)
	})
	hideButton.Importance = widget.LowImportance

	return container.NewBorder(nil, widget.NewSeparator(), nil,
		container.NewHBox(setupButton, hideButton),
		container.NewBorder(nil, nil, providerSelect, nil, opacitySlider),
	)
}

// setupKeyboardShortcuts sets up global keyboard shortcuts.
func (a *App) setupKeyboardShortcuts() {
	// Ctrl+H: toggle control panel
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyH,
		Modifier: desktop.ControlModifier,
	}, func(shortcut fyne.Shortcut) {
		a.setPanelVisible(!a.config.UI.ShowControlPanel)
	})

	// Ctrl+Comma: provider setup
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyComma,
		Modifier: desktop.ControlModifier,
	}, func(shortcut fyne.Shortcut) {
		a.orch.ShowSetup(true)
	})
}

// setPanelVisible shows or hides the floating control panel.
func (a *App) setPanelVisible(visible bool) {
	a.config.UI.ShowControlPanel = visible
	if visible {
		a.panel.Show()
	} else {
		a.panel.Hide()
	}
	a.body.Refresh()
}

// render switches between the setup screen and the transcript and refreshes
// whichever is visible. Called on the UI thread only.
func (a *App) render() {
	if a.orch.SetupVisible() {
		a.chatView.Hide()
		a.setupView.Refresh()
		a.setupView.Show()
		return
	}
	a.setupView.Hide()
	a.chatView.Show()
	a.chatView.Refresh()
}

// showError shows an error dialog.
func (a *App) showError(message string) {
	dialog.ShowError(fmt.Errorf("%s", message), a.window)
}

// Run shows the window and enters the event loop.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Cleanup flushes state before exit.
func (a *App) Cleanup() {
	a.logger.Info("Shutting down")
}
