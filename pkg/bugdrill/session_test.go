package bugdrill

import (
	"errors"
	"testing"
	"time"
)

const buggyJS = "function greet(name) {\n  if (name = \"admin\") {\n    console.log(\"hi\");\n  }\n}"
const fixedJS = "function greet(name) {\n  if (name === \"admin\") {\n    console.log(\"hi\");\n  }\n}"

func newTestSession(t *testing.T, snippet string) *Session {
	t.Helper()
	engine := NewEngine()
	return NewSession(engine, snippet, WithCheckDelay(time.Millisecond))
}

func TestSessionPresent(t *testing.T) {
	s := newTestSession(t, buggyJS)

	if s.Language() != LangJavaScript {
		t.Errorf("expected detected language javascript, got %q", s.Language())
	}
	if s.Modified() {
		t.Error("fresh session must not be modified")
	}
	if s.State() != StateUnchecked {
		t.Errorf("fresh session state = %q, want unchecked", s.State())
	}
	if _, ok := s.LastResult(); ok {
		t.Error("presentation must not populate the last result")
	}
	if s.ID() == "" {
		t.Error("session must carry an id")
	}

	// The presentation-time analysis feeds markers only.
	annotations := s.InitialAnnotations()
	if len(annotations) != 1 {
		t.Fatalf("expected 1 initial annotation, got %d", len(annotations))
	}
	if annotations[0].Line != 2 {
		t.Errorf("expected marker on line 2, got %d", annotations[0].Line)
	}
}

func TestSessionLanguageIsFixedAtPresentation(t *testing.T) {
	s := newTestSession(t, buggyJS)

	// An edit that introduces Python keywords must not change the ruleset.
	s.Edit("def f():\nreturn 1")
	if s.Language() != LangJavaScript {
		t.Errorf("language drifted to %q after edit", s.Language())
	}

	done, err := s.Check()
	if err != nil {
		t.Fatal(err)
	}
	result := <-done
	// Under the JavaScript ruleset the Python snippet is clean.
	if result.HasDefects {
		t.Errorf("expected the fixed javascript ruleset, got defects %v", result.Defects)
	}
}

func TestSessionEdit(t *testing.T) {
	s := newTestSession(t, buggyJS)

	s.Edit(fixedJS)
	if !s.Modified() {
		t.Error("edit must mark the session modified")
	}
	if s.Current() != fixedJS {
		t.Error("edit must replace the current snippet")
	}
	if s.Original() != buggyJS {
		t.Error("edit must not touch the original snippet")
	}

	// Editing back to the original recomputes modified.
	s.Edit(buggyJS)
	if s.Modified() {
		t.Error("modified must be false when text matches the original again")
	}

	// Edit never runs a check.
	if _, ok := s.LastResult(); ok {
		t.Error("edit must not populate the last result")
	}
}

func TestSessionCheckTransitions(t *testing.T) {
	s := newTestSession(t, buggyJS)

	done, err := s.Check()
	if err != nil {
		t.Fatal(err)
	}
	result := <-done

	if !result.HasDefects {
		t.Fatal("expected the buggy snippet to fail")
	}
	if s.State() != StateFailed {
		t.Errorf("state after failing check = %q, want failed", s.State())
	}
	last, ok := s.LastResult()
	if !ok {
		t.Fatal("check must populate the last result")
	}
	if len(last.Defects) != len(result.Defects) {
		t.Error("last result must match the committed result")
	}

	// Editing does not revert the state; only check and reset change it.
	s.Edit(fixedJS)
	if s.State() != StateFailed {
		t.Errorf("state after edit = %q, want failed", s.State())
	}

	done, err = s.Check()
	if err != nil {
		t.Fatal(err)
	}
	result = <-done
	if result.HasDefects {
		t.Fatalf("expected the fixed snippet to pass, got %v", result.Defects)
	}
	if s.State() != StateSucceeded {
		t.Errorf("state after passing check = %q, want succeeded", s.State())
	}
}

func TestSessionResetIdempotence(t *testing.T) {
	s := newTestSession(t, buggyJS)

	// An arbitrary history of edits and checks.
	s.Edit("scratch")
	s.Edit(fixedJS)
	done, err := s.Check()
	if err != nil {
		t.Fatal(err)
	}
	<-done

	for i := 0; i < 3; i++ {
		s.Reset()
		if s.Current() != buggyJS {
			t.Fatalf("reset %d: current snippet not restored", i)
		}
		if s.Modified() {
			t.Errorf("reset %d: modified must be false", i)
		}
		if s.State() != StateUnchecked {
			t.Errorf("reset %d: state = %q, want unchecked", i, s.State())
		}
		if _, ok := s.LastResult(); ok {
			t.Errorf("reset %d: last result must be back to pending", i)
		}
	}
}

func TestSessionCheckReentrancyGuard(t *testing.T) {
	engine := NewEngine()
	s := NewSession(engine, buggyJS, WithCheckDelay(100*time.Millisecond))

	done, err := s.Check()
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateChecking {
		t.Errorf("state during check = %q, want checking", s.State())
	}

	if _, err := s.Check(); !errors.Is(err, ErrCheckInFlight) {
		t.Fatalf("second check: expected ErrCheckInFlight, got %v", err)
	}

	<-done

	// Once the first check commits, a new check is allowed again.
	done, err = s.Check()
	if err != nil {
		t.Fatalf("check after commit: %v", err)
	}
	<-done
}

func TestSessionEditDuringCheckIsDeferred(t *testing.T) {
	engine := NewEngine()
	s := NewSession(engine, buggyJS, WithCheckDelay(50*time.Millisecond))

	done, err := s.Check()
	if err != nil {
		t.Fatal(err)
	}

	// This edit lands while the check is in flight.
	s.Edit(fixedJS)

	result := <-done
	// The committed result reflects the snapshot taken at Check time.
	if !result.HasDefects {
		t.Error("in-flight check must analyze the pre-edit snapshot")
	}

	// The deferred edit was applied right after the commit, not dropped.
	if s.Current() != fixedJS {
		t.Fatal("edit made during the check was lost")
	}
	if !s.Modified() {
		t.Error("deferred edit must recompute modified")
	}

	// The next check sees the deferred edit.
	done, err = s.Check()
	if err != nil {
		t.Fatal(err)
	}
	if result := <-done; result.HasDefects {
		t.Errorf("next check must analyze the deferred edit, got %v", result.Defects)
	}
}

func TestSessionResetDuringCheckIsDeferred(t *testing.T) {
	engine := NewEngine()
	s := NewSession(engine, buggyJS, WithCheckDelay(50*time.Millisecond))

	s.Edit(fixedJS)
	done, err := s.Check()
	if err != nil {
		t.Fatal(err)
	}

	applied := s.Reset()
	select {
	case <-applied:
		t.Fatal("reset must not apply while the check is in flight")
	default:
	}

	<-done
	select {
	case <-applied:
	case <-time.After(time.Second):
		t.Fatal("reset never signaled that it applied")
	}
	// The reset applied after the commit wins over the committed result.
	if s.Current() != buggyJS {
		t.Error("deferred reset must restore the original snippet")
	}
	if s.State() != StateUnchecked {
		t.Errorf("state after deferred reset = %q, want unchecked", s.State())
	}
	if _, ok := s.LastResult(); ok {
		t.Error("deferred reset must clear the last result")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	engine := NewEngine()
	a := NewSession(engine, buggyJS, WithCheckDelay(time.Millisecond))
	b := NewSession(engine, buggyJS, WithCheckDelay(time.Millisecond))

	if a.ID() == b.ID() {
		t.Fatal("sessions must have distinct ids")
	}

	a.Edit(fixedJS)
	if b.Modified() {
		t.Error("editing one session leaked into another")
	}
}
