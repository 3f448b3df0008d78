// Package bugdrill provides a rule-based debugging exercise engine: snippets
// of code with intentionally injected defects are analyzed line by line
// against a small per-language ruleset, and a session state machine tracks
// whether a learner's edits still trip the rules.
//
// # Overview
//
// The engine is deliberately shallow. It never executes code and never builds
// an AST; every rule is a text predicate over a single line (plus one line of
// lookahead). False negatives are expected and findings are advisory, which
// is why every projected marker carries warning severity.
//
// # Quick Start
//
//	engine := bugdrill.NewEngine()
//
//	snippet := "function add(a, b) {\n  if (a = b) {\n    return a;\n  }\n}"
//	session := bugdrill.NewSession(engine, snippet)
//
//	done, err := session.Check()
//	if err != nil {
//		// a check was already in flight
//	}
//	result := <-done
//	fmt.Println(result.SummaryMessage)
//
// # Architecture
//
// The package consists of a handful of small components:
//
//   - Detect: first-match-wins language detection over keyword cues
//   - Engine: per-language rulesets evaluated line by line
//   - Session: one learner's attempt, with an asynchronous Check that models
//     a compile/run cycle via a fixed artificial delay
//   - ProjectMarkers: translates defects into editor annotations
//   - Binder: glues a session to an EditorSurface and a ResultPanel
//
// Subpackages supply the hosting pieces: exercises (the catalog), dashboard
// (the web practice surface), diff (unified patches of learner edits),
// config (YAML configuration) and metrics (usage counters).
package bugdrill
