package bugdrill

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/practicelabs/bugdrill/pkg/bugdrill/metrics"
)

// Defect is a single rule-triggered, line-addressed advisory finding.
// Line is one-based. A defect is advisory, not a proof of breakage.
type Defect struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// AnalysisResult is the outcome of one Analyze call. Exactly one of the
// success/failure message families is populated depending on HasDefects.
type AnalysisResult struct {
	HasDefects     bool     `json:"has_defects"`
	Defects        []Defect `json:"defects"`
	SummaryMessage string   `json:"summary_message,omitempty"`
	SuccessMessage string   `json:"success_message,omitempty"`
}

// LineContext is what a rule sees for one line of a snippet.
type LineContext struct {
	// Text is the raw line text.
	Text string
	// Index is the zero-based line index, Number the one-based line number.
	Index  int
	Number int
	// Next holds the following line for rules that need lookahead.
	// HasNext reports whether such a line exists.
	Next    string
	HasNext bool
}

// Rule is a line-scoped predicate. When it fires it returns the defect to
// report; the defect carries its own line number because a handful of rules
// report on a line other than the one that triggered them.
type Rule struct {
	Name  string
	Check func(ln LineContext) (Defect, bool)
}

// Ruleset is the ordered collection of line rules for one language.
// Rules are evaluated independently and are not mutually exclusive: a single
// line may trigger several rules and appear once per triggering rule.
type Ruleset struct {
	Language Language
	Rules    []Rule
}

// Limits bounds how much input a single analysis will look at. Oversized
// snippets are clamped, never rejected: the engine has no failure path.
type Limits struct {
	MaxSnippetLines int
	MaxLineBytes    int
}

// DefaultLimits returns reasonable defaults for exercise-sized snippets.
func DefaultLimits() Limits {
	return Limits{
		MaxSnippetLines: 2000,
		MaxLineBytes:    4096,
	}
}

// Engine holds one ruleset per supported language and evaluates snippets
// line by line. It is safe for concurrent use; Analyze itself is pure and
// deterministic, with no network or state access.
type Engine struct {
	rulesets map[Language]Ruleset
	limits   Limits
	stats    *metrics.Collector
	mutex    sync.RWMutex
}

// NewEngine creates an engine with the builtin rulesets registered:
// JavaScript and Python carry real rules, Java, C++ and Go are registered
// with empty rulesets so they succeed cleanly, and every other language
// falls back to the same always-succeeds behavior.
func NewEngine() *Engine {
	e := &Engine{
		rulesets: make(map[Language]Ruleset),
		limits:   DefaultLimits(),
		stats:    metrics.NewCollector(),
	}

	e.RegisterRuleset(javascriptRuleset())
	e.RegisterRuleset(pythonRuleset())
	e.RegisterRuleset(Ruleset{Language: LangJava})
	e.RegisterRuleset(Ruleset{Language: LangCpp})
	e.RegisterRuleset(Ruleset{Language: LangGo})

	return e
}

// RegisterRuleset installs or replaces the ruleset for a language.
func (e *Engine) RegisterRuleset(rs Ruleset) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.rulesets[rs.Language] = rs
}

// SetLimits replaces the engine's input limits.
func (e *Engine) SetLimits(limits Limits) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.limits = limits
}

// Stats returns the engine's counter collector.
func (e *Engine) Stats() *metrics.Collector {
	return e.stats
}

// Analyze evaluates the ruleset for lang over the snippet and returns the
// defects found together with a human-readable summary or success message.
// Empty snippets, blank snippets and unsupported languages all produce a
// clean no-defect result; Analyze never fails.
//
// Defects come back in discovery order: line-ascending, and within a line in
// ruleset order. Duplicate lines are preserved, one entry per triggering rule.
func (e *Engine) Analyze(snippet string, lang Language) AnalysisResult {
	e.mutex.RLock()
	ruleset, supported := e.rulesets[lang]
	limits := e.limits
	e.mutex.RUnlock()

	var defects []Defect
	if supported && len(ruleset.Rules) > 0 {
		defects = evalRuleset(ruleset, splitLines(snippet, limits))
	}

	e.stats.RecordAnalysis(len(defects))

	if len(defects) == 0 {
		return AnalysisResult{
			HasDefects:     false,
			Defects:        []Defect{},
			SuccessMessage: successMessage(lang),
		}
	}
	return AnalysisResult{
		HasDefects:     true,
		Defects:        defects,
		SummaryMessage: summaryMessage(len(defects)),
	}
}

func evalRuleset(rs Ruleset, lines []string) []Defect {
	var defects []Defect
	for i, text := range lines {
		ln := LineContext{
			Text:   text,
			Index:  i,
			Number: i + 1,
		}
		if i+1 < len(lines) {
			ln.Next = lines[i+1]
			ln.HasNext = true
		}
		for _, rule := range rs.Rules {
			if d, ok := rule.Check(ln); ok {
				defects = append(defects, d)
			}
		}
	}
	return defects
}

// splitLines breaks a snippet into lines and applies the engine limits.
func splitLines(snippet string, limits Limits) []string {
	if snippet == "" {
		return nil
	}
	lines := strings.Split(snippet, "\n")
	if limits.MaxSnippetLines > 0 && len(lines) > limits.MaxSnippetLines {
		lines = lines[:limits.MaxSnippetLines]
	}
	if limits.MaxLineBytes > 0 {
		for i, l := range lines {
			if len(l) > limits.MaxLineBytes {
				// Back off to a rune boundary so the clamp never leaves a
				// partial UTF-8 sequence at the end of the line.
				cut := limits.MaxLineBytes
				for cut > 0 && !utf8.RuneStart(l[cut]) {
					cut--
				}
				lines[i] = l[:cut]
			}
		}
	}
	return lines
}

func summaryMessage(count int) string {
	if count == 1 {
		return "Found 1 issue. Review the highlighted line and try again."
	}
	return fmt.Sprintf("Found %d issues. Review the highlighted lines and try again.", count)
}

func successMessage(lang Language) string {
	switch lang {
	case LangPython:
		return "Great job! This Python snippet looks clean."
	case LangJavaScript:
		return "Great job! This JavaScript snippet looks clean."
	case LangJava:
		return "Great job! This Java snippet looks clean."
	case LangCpp:
		return "Great job! This C++ snippet looks clean."
	case LangGo:
		return "Great job! This Go snippet looks clean."
	default:
		return "Great job! No issues found."
	}
}
