package bugdrill

import "strings"

// javascriptRuleset flags the defect patterns injected into JavaScript
// exercises. These are shallow text matches by design: no parsing, no
// semantic understanding, false negatives expected.
func javascriptRuleset() Ruleset {
	return Ruleset{
		Language: LangJavaScript,
		Rules: []Rule{
			{
				// `if (x = 5)` style: an if line with a bare `=` that is
				// neither `==` nor `!=`.
				Name: "assignment-in-condition",
				Check: func(ln LineContext) (Defect, bool) {
					if strings.Contains(ln.Text, "if") &&
						strings.Contains(ln.Text, "=") &&
						!strings.Contains(ln.Text, "==") &&
						!strings.Contains(ln.Text, "!=") {
						return Defect{
							Line:    ln.Number,
							Message: "Possible assignment in condition: replace '=' with '===' to compare values.",
						}, true
					}
					return Defect{}, false
				},
			},
			{
				Name: "undefined-reference",
				Check: func(ln LineContext) (Defect, bool) {
					if strings.Contains(ln.Text, "console.log") &&
						strings.Contains(ln.Text, "undefinedVar") {
						return Defect{
							Line:    ln.Number,
							Message: "'undefinedVar' is never defined. Declare the variable before logging it.",
						}, true
					}
					return Defect{}, false
				},
			},
			{
				Name: "unclosed-function-header",
				Check: func(ln LineContext) (Defect, bool) {
					if strings.Contains(ln.Text, "function") &&
						strings.Contains(ln.Text, "(") &&
						!strings.Contains(ln.Text, ")") {
						return Defect{
							Line:    ln.Number,
							Message: "Missing closing parenthesis in function declaration.",
						}, true
					}
					return Defect{}, false
				},
			},
		},
	}
}
