package bugdrill

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeEditor records what the binder pushes at it.
type fakeEditor struct {
	mu          sync.Mutex
	text        string
	annotations []Annotation
	onChange    func(string)
	failAnnots  bool
}

func (e *fakeEditor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *fakeEditor) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

func (e *fakeEditor) OnChange(fn func(string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

func (e *fakeEditor) SetAnnotations(annotations []Annotation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failAnnots {
		return errors.New("editor refused annotations")
	}
	e.annotations = annotations
	return nil
}

func (e *fakeEditor) typeText(text string) {
	e.mu.Lock()
	fn := e.onChange
	e.text = text
	e.mu.Unlock()
	if fn != nil {
		fn(text)
	}
}

// fakePanel records prompts and results.
type fakePanel struct {
	mu      sync.Mutex
	prompts []string
	results []AnalysisResult
}

func (p *fakePanel) ShowResult(result AnalysisResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, result)
}

func (p *fakePanel) ShowPrompt(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, message)
}

func (p *fakePanel) promptCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

func (p *fakePanel) lastResult() (AnalysisResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return AnalysisResult{}, false
	}
	return p.results[len(p.results)-1], true
}

func TestBindWiresCollaborators(t *testing.T) {
	engine := NewEngine()
	session := NewSession(engine, buggyJS, WithCheckDelay(time.Millisecond))
	editor := &fakeEditor{}
	panel := &fakePanel{}

	Bind(session, editor, panel)

	if editor.Text() != buggyJS {
		t.Error("binder must seed the editor with the snippet")
	}
	if len(editor.annotations) != 1 {
		t.Fatalf("binder must apply initial annotations, got %d", len(editor.annotations))
	}
	if len(panel.prompts) != 1 || panel.prompts[0] != PromptMessage {
		t.Errorf("binder must show the prompt, got %v", panel.prompts)
	}

	// Keystrokes flow into the session.
	editor.typeText(fixedJS)
	if !session.Modified() {
		t.Error("editor change did not reach the session")
	}
}

func TestBinderCheckDeliversToPanel(t *testing.T) {
	engine := NewEngine()
	session := NewSession(engine, buggyJS, WithCheckDelay(time.Millisecond))
	editor := &fakeEditor{}
	panel := &fakePanel{}
	binder := Bind(session, editor, panel)

	binder.Check()

	deadline := time.After(time.Second)
	for {
		if result, ok := panel.lastResult(); ok {
			if !result.HasDefects {
				t.Error("expected the buggy snippet to fail")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("panel never received the check result")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBinderSurvivesAnnotationFailure(t *testing.T) {
	engine := NewEngine()
	session := NewSession(engine, buggyJS, WithCheckDelay(time.Millisecond))
	editor := &fakeEditor{failAnnots: true}
	panel := &fakePanel{}

	// A collaborator-side fault is logged, never propagated: the prompt
	// still reaches the panel.
	Bind(session, editor, panel)

	if len(panel.prompts) != 1 {
		t.Fatal("annotation failure must not block the panel")
	}
}

func TestBinderResetDuringCheckResyncsEditor(t *testing.T) {
	engine := NewEngine()
	session := NewSession(engine, buggyJS, WithCheckDelay(100*time.Millisecond))
	editor := &fakeEditor{}
	panel := &fakePanel{}
	binder := Bind(session, editor, panel)

	editor.typeText(fixedJS)
	binder.Check()
	binder.Reset()

	// The reset is deferred while the check runs, so the editor must keep
	// showing the edited text for now.
	if editor.Text() != fixedJS {
		t.Fatal("editor text changed before the deferred reset applied")
	}

	// Once the check commits and the deferred reset applies, the editor and
	// the session must agree on the original snippet again. The prompt is
	// the last thing the resync pushes, so wait for it.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if panel.promptCount() == 2 && editor.Text() == buggyJS {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if session.Current() != buggyJS {
		t.Fatal("deferred reset never restored the session snippet")
	}
	if editor.Text() != buggyJS {
		t.Fatal("editor still shows the edited text after the deferred reset applied")
	}
	if len(editor.annotations) != 1 {
		t.Errorf("initial markers not re-applied after the deferred reset, got %d", len(editor.annotations))
	}
	if session.State() != StateUnchecked {
		t.Errorf("state after deferred reset = %s, want %s", session.State(), StateUnchecked)
	}
}

func TestBinderReset(t *testing.T) {
	engine := NewEngine()
	session := NewSession(engine, buggyJS, WithCheckDelay(time.Millisecond))
	editor := &fakeEditor{}
	panel := &fakePanel{}
	binder := Bind(session, editor, panel)

	editor.typeText(fixedJS)
	binder.Reset()

	if editor.Text() != buggyJS {
		t.Error("reset must restore the editor text")
	}
	if session.Modified() {
		t.Error("reset must clear the modified flag")
	}
	if len(panel.prompts) != 2 {
		t.Errorf("reset must re-show the prompt, got %d prompts", len(panel.prompts))
	}
}
