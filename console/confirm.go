package console

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog is the confirmation gate in front of destructive actions.
// While open it is a blocking prompt: every key event is consumed, and
// only Enter (confirm) or Esc (cancel) terminate it. The guarded action
// is dispatched at most once; the dialog closes in the same update, so
// the UI can never show "action done, prompt still open". If the action
// later fails, the error surfaces through the collection's error channel,
// never inside the prompt.
type ConfirmDialog struct {
	open        bool
	subject     string
	actionLabel string
	action      tea.Cmd
}

// Open arms the gate for one destructive action. subject is displayed to
// the user, actionLabel names the action ("delete"), and action is the
// command dispatched on confirm.
func (d *ConfirmDialog) Open(subject, actionLabel string, action tea.Cmd) {
	d.open = true
	d.subject = subject
	d.actionLabel = actionLabel
	d.action = action
}

// Active reports whether the prompt is currently blocking input.
func (d *ConfirmDialog) Active() bool {
	return d.open
}

// Update handles a key event. The second return value reports whether the
// event was consumed; while the dialog is closed nothing is consumed and
// the confirm/cancel keys stay inert.
func (d *ConfirmDialog) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !d.open {
		return nil, false
	}

	switch msg.String() {
	case "enter", "y":
		action := d.action
		d.close()
		return action, true
	case "esc", "n":
		d.close()
		return nil, true
	default:
		// Blocking prompt: swallow everything else.
		return nil, true
	}
}

// close tears the dialog down. Clearing action guarantees a repeated
// confirm key cannot dispatch twice.
func (d *ConfirmDialog) close() {
	d.open = false
	d.subject = ""
	d.actionLabel = ""
	d.action = nil
}
