// Package diff renders the learner's edits as a classic unified patch
// (---/+++ headers, @@ hunks) using github.com/pmezard/go-difflib. The
// dashboard and the CLI show the patch alongside check results.
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines in unified hunks.
const DefaultContext = 3

// Unified produces a unified patch of original vs. edited snippet text.
// Identical inputs produce an empty patch.
func Unified(original, edited string) string {
	if original == edited {
		return ""
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(original),
		B:        splitLinesKeepNL(edited),
		FromFile: "original",
		ToFile:   "edited",
		Context:  DefaultContext,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		// difflib only fails on writer errors, which cannot happen with the
		// string writer. Return an empty patch rather than propagating.
		return ""
	}
	return s
}

// splitLinesKeepNL splits into lines keeping the trailing newline on each
// element, which produces cleaner unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
