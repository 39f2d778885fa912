package ui

import (
	"context"

	"overlay-chat/chat"
	"overlay-chat/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// chatEntry is a multiline entry where Enter submits and Shift+Enter inserts
// a newline.
type chatEntry struct {
	widget.Entry
	onSubmit func()
}

func newChatEntry() *chatEntry {
	e := &chatEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

func (e *chatEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyReturn || key.Name == fyne.KeyEnter {
		if !shiftHeld() && e.onSubmit != nil {
			e.onSubmit()
			return
		}
	}
	// Shift+Enter falls through and inserts the newline.
	e.Entry.TypedKey(key)
}

// shiftHeld queries the desktop driver for the current modifier state.
// Mobile drivers report no modifiers, so Enter always submits there.
// Overridable in tests, which have no real driver to press Shift on.
var shiftHeld = func() bool {
	drv, ok := fyne.CurrentApp().Driver().(desktop.Driver)
	if !ok {
		return false
	}
	return drv.CurrentKeyModifiers()&fyne.KeyModifierShift != 0
}

// ChatView renders the transcript and the input row. It is a pure consumer
// of orchestrator state: every observable change arrives through Refresh.
type ChatView struct {
	app *App

	root       fyne.CanvasObject
	transcript *fyne.Container
	scroll     *container.Scroll
	input      *chatEntry
	sendButton *widget.Button
	status     *widget.Label

	rendered int // transcript entries already built
}

// NewChatView creates the transcript view bound to the app's orchestrator.
func NewChatView(app *App) *ChatView {
	return &ChatView{app: app}
}

// Build assembles the view.
func (cv *ChatView) Build() fyne.CanvasObject {
	cv.transcript = container.NewVBox()
	cv.scroll = container.NewScroll(cv.transcript)

	cv.input = newChatEntry()
	cv.input.SetPlaceHolder("Ask something…")
	cv.input.onSubmit = cv.send
	cv.input.OnChanged = func(text string) {
		cv.app.orch.SetDraft(text)
	}

	cv.sendButton = widget.NewButton("Send", cv.send)
	cv.status = widget.NewLabel("")
	cv.status.TextStyle = fyne.TextStyle{Italic: true}
	cv.status.Hide()

	inputRow := container.NewBorder(nil, nil, nil, cv.sendButton, cv.input)
	bottom := container.NewVBox(cv.status, inputRow)

	cv.root = container.NewBorder(nil, bottom, nil, nil, cv.scroll)
	return cv.root
}

// send hands the draft to the orchestrator on a worker goroutine; Submit
// blocks until the request resolves and the orchestrator notifies back.
func (cv *ChatView) send() {
	text := cv.input.Text
	orch := cv.app.orch
	utils.SafeGoWithError(cv.app.logger, "submit", func() error {
		_, err := orch.Submit(context.Background(), text)
		return err
	}, func(err error) {
		fyne.Do(func() {
			cv.app.showError(err.Error())
		})
	})
}

// Refresh syncs the view with orchestrator state: appends newly arrived
// messages, reflects the in-flight flag, keeps the transcript scrolled to
// the bottom and the input focused. Idempotent; called on the UI thread.
func (cv *ChatView) Refresh() {
	messages := cv.app.orch.Messages()

	if cv.rendered > len(messages) {
		// Full reset; rebuild from scratch.
		cv.transcript.RemoveAll()
		cv.rendered = 0
	}
	for _, msg := range messages[cv.rendered:] {
		cv.transcript.Add(cv.buildMessageRow(msg))
	}
	changed := cv.rendered != len(messages)
	cv.rendered = len(messages)

	if cv.app.orch.InFlight() {
		cv.status.SetText("Waiting for reply…")
		cv.status.Show()
		cv.sendButton.Disable()
	} else {
		cv.status.Hide()
		cv.sendButton.Enable()
	}

	if cv.input.Text != cv.app.orch.Draft() {
		cv.input.SetText(cv.app.orch.Draft())
	}

	if changed {
		cv.transcript.Refresh()
		cv.scroll.ScrollToBottom()
	}
	if !cv.app.orch.InFlight() {
		cv.app.window.Canvas().Focus(cv.input)
	}
}

// buildMessageRow renders one transcript entry: a role header with a
// timestamp, then the wrapped content. Assistant replies render as markdown.
func (cv *ChatView) buildMessageRow(msg chat.Message) fyne.CanvasObject {
	role := "You"
	if msg.Role == chat.RoleAssistant {
		role = "Assistant"
	}

	header := widget.NewLabel(role)
	header.TextStyle = fyne.TextStyle{Bold: true}
	stamp := widget.NewLabel(msg.CreatedAt.Format("15:04"))
	stamp.TextStyle = fyne.TextStyle{Italic: true}

	var body fyne.CanvasObject
	if msg.Role == chat.RoleAssistant {
		rich := widget.NewRichTextFromMarkdown(msg.Content)
		rich.Wrapping = fyne.TextWrapWord
		body = rich
	} else {
		label := widget.NewLabel(msg.Content)
		label.Wrapping = fyne.TextWrapWord
		body = label
	}

	return container.NewVBox(
		container.NewHBox(header, stamp),
		body,
	)
}

// Show makes the view visible.
func (cv *ChatView) Show() { cv.root.Show() }

// Hide hides the view.
func (cv *ChatView) Hide() { cv.root.Hide() }
