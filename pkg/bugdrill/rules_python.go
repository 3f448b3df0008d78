package bugdrill

import "strings"

// pythonRuleset flags the defect patterns injected into Python exercises.
// Shallow text matches only, same as the JavaScript ruleset.
func pythonRuleset() Ruleset {
	return Ruleset{
		Language: LangPython,
		Rules: []Rule{
			{
				// A `def ` line whose following line is not indented by four
				// spaces. The defect is reported two lines past the def line
				// (ln.Number+2), one past the unindented line itself. That
				// offset is a long-standing quirk of the reporting scheme and
				// callers depend on it; do not "fix" it here without also
				// updating every exercise that references these line numbers.
				Name: "missing-indent-after-def",
				Check: func(ln LineContext) (Defect, bool) {
					if strings.Contains(ln.Text, "def ") &&
						ln.HasNext &&
						!strings.HasPrefix(ln.Next, "    ") {
						return Defect{
							Line:    ln.Number + 2,
							Message: "Expected an indented block after 'def'. Indent the function body by four spaces.",
						}, true
					}
					return Defect{}, false
				},
			},
			{
				Name: "missing-colon",
				Check: func(ln LineContext) (Defect, bool) {
					hasKeyword := strings.Contains(ln.Text, "if ") ||
						strings.Contains(ln.Text, "for ") ||
						strings.Contains(ln.Text, "while ")
					if hasKeyword && !strings.Contains(ln.Text, ":") {
						return Defect{
							Line:    ln.Number,
							Message: "Missing ':' at the end of the statement.",
						}, true
					}
					return Defect{}, false
				},
			},
			{
				// Python 2 style `print "x"`.
				Name: "print-statement-syntax",
				Check: func(ln LineContext) (Defect, bool) {
					if strings.Contains(ln.Text, "print ") &&
						!strings.Contains(ln.Text, "print(") {
						return Defect{
							Line:    ln.Number,
							Message: "print is a function: use print(...) with parentheses.",
						}, true
					}
					return Defect{}, false
				},
			},
		},
	}
}
