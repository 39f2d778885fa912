package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SetupView collects a provider API key. It is shown whenever the active
// provider has no stored credential, or on demand from the control panel.
type SetupView struct {
	app *App

	root         fyne.CanvasObject
	title        *widget.Label
	hint         *widget.Label
	keyEntry     *widget.Entry
	saveButton   *widget.Button
	cancelButton *widget.Button
}

// NewSetupView creates the credential setup screen.
func NewSetupView(app *App) *SetupView {
	return &SetupView{app: app}
}

// Build assembles the view.
func (sv *SetupView) Build() fyne.CanvasObject {
	sv.title = widget.NewLabel("")
	sv.title.TextStyle = fyne.TextStyle{Bold: true}

	sv.hint = widget.NewLabel("")
	sv.hint.TextStyle = fyne.TextStyle{Italic: true}
	sv.hint.Wrapping = fyne.TextWrapWord

	sv.keyEntry = widget.NewPasswordEntry()
	sv.keyEntry.SetPlaceHolder("Paste your API key")
	sv.keyEntry.OnSubmitted = func(string) { sv.save() }

	sv.saveButton = widget.NewButton("Save key", sv.save)
	sv.saveButton.Importance = widget.HighImportance

	sv.cancelButton = widget.NewButton("Back", func() {
		sv.app.orch.ShowSetup(false)
	})
	sv.cancelButton.Importance = widget.LowImportance

	form := container.NewVBox(
		sv.title,
		sv.hint,
		sv.keyEntry,
		container.NewHBox(sv.saveButton, sv.cancelButton),
	)

	sv.root = container.NewCenter(container.NewVBox(form))
	return sv.root
}

// save persists the entered key. The key-prefix hint is advisory only;
// nothing is validated here beyond non-emptiness.
func (sv *SetupView) save() {
	secret := strings.TrimSpace(sv.keyEntry.Text)
	if secret == "" {
		return
	}
	if err := sv.app.orch.ProvideCredential(secret); err != nil {
		sv.app.logger.Error("Failed to store credential: %v", err)
		sv.app.showError(fmt.Sprintf("Failed to store credential: %v", err))
		return
	}
	sv.keyEntry.SetText("")
}

// Refresh updates the labels for the active provider. Called on the UI
// thread.
func (sv *SetupView) Refresh() {
	cfg, err := sv.app.orch.ActiveConfig()
	if err != nil {
		sv.app.logger.Error("Active provider unavailable: %v", err)
		return
	}

	sv.title.SetText(fmt.Sprintf("Set up %s", cfg.DisplayName))
	if cfg.KeyPrefixHint != "" {
		sv.hint.SetText(fmt.Sprintf("%s keys usually start with %q. The key is stored locally and only sent to %s.",
			cfg.DisplayName, cfg.KeyPrefixHint, cfg.DisplayName))
	} else {
		sv.hint.SetText(fmt.Sprintf("The key is stored locally and only sent to %s.", cfg.DisplayName))
	}

	// Leaving setup is only possible once a credential exists.
	if sv.app.orch.HasCredential() {
		sv.cancelButton.Show()
	} else {
		sv.cancelButton.Hide()
	}
}

// Show makes the view visible and focuses the key entry.
func (sv *SetupView) Show() {
	sv.root.Show()
	sv.app.window.Canvas().Focus(sv.keyEntry)
}

// Hide hides the view.
func (sv *SetupView) Hide() { sv.root.Hide() }
