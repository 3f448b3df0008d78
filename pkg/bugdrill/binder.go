package bugdrill

import "log"

// Binder wires one session to an editor surface and a result panel. It is
// the only place where collaborator failures can occur, and the only
// treatment they get is a log line: an editor that refuses annotations must
// not block the panel from rendering.
type Binder struct {
	session *Session
	editor  EditorSurface
	panel   ResultPanel
}

// Bind connects the collaborators: the editor receives the snippet text and
// the initial advisory markers, keystrokes flow into Session.Edit, and the
// panel starts out showing the prompt.
func Bind(session *Session, editor EditorSurface, panel ResultPanel) *Binder {
	b := &Binder{session: session, editor: editor, panel: panel}

	editor.SetText(session.Current())
	if err := editor.SetAnnotations(session.InitialAnnotations()); err != nil {
		log.Printf("bugdrill: editor rejected annotations for session %s: %v", session.ID(), err)
	}
	editor.OnChange(session.Edit)
	panel.ShowPrompt(PromptMessage)

	return b
}

// Check runs a user check and pushes the committed result to the panel.
// When a check is already in flight the call is ignored, matching the
// at-most-one-outstanding-check contract.
func (b *Binder) Check() {
	done, err := b.session.Check()
	if err != nil {
		return
	}
	go func() {
		result := <-done
		b.panel.ShowResult(result)
	}()
}

// Reset restores the session and the collaborators to their presented state.
// When a check is in flight the session defers the reset until the result
// commits; the collaborators are synced only once it has actually applied,
// so the editor never ends up showing text the session no longer holds.
func (b *Binder) Reset() {
	applied := b.session.Reset()
	select {
	case <-applied:
		b.refresh()
	default:
		go func() {
			<-applied
			b.refresh()
		}()
	}
}

// refresh pushes the session's current text, the initial markers and the
// prompt back to the collaborators.
func (b *Binder) refresh() {
	b.editor.SetText(b.session.Current())
	if err := b.editor.SetAnnotations(b.session.InitialAnnotations()); err != nil {
		log.Printf("bugdrill: editor rejected annotations for session %s: %v", b.session.ID(), err)
	}
	b.panel.ShowPrompt(PromptMessage)
}
