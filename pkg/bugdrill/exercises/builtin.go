package exercises

import "github.com/practicelabs/bugdrill/pkg/bugdrill"

// Builtin returns the exercises that ship with the engine. Each snippet
// carries at least one injected defect that the language's ruleset flags at
// presentation time.
func Builtin() []Exercise {
	return []Exercise{
		{
			ID:          "js-assignment-condition",
			Title:       "A stubborn if statement",
			Language:    bugdrill.LangJavaScript,
			Description: "This function should only greet when the name matches, but it greets everyone. Find out why.",
			Snippet: "function greet(name) {\n" +
				"  if (name = \"admin\") {\n" +
				"    console.log(\"Welcome back!\");\n" +
				"  }\n" +
				"}",
			Hints: []string{
				"Look closely at the condition on line 2.",
				"A single '=' assigns; it does not compare.",
			},
		},
		{
			ID:          "js-undefined-variable",
			Title:       "Logging a ghost",
			Language:    bugdrill.LangJavaScript,
			Description: "The log line crashes at runtime. Something in it was never declared.",
			Snippet: "function report(count) {\n" +
				"  console.log(\"processed:\", count);\n" +
				"  console.log(\"remaining:\", undefinedVar);\n" +
				"}",
			Hints: []string{
				"Which identifiers on line 3 have a declaration?",
			},
		},
		{
			ID:          "js-unclosed-header",
			Title:       "A function that never opens",
			Language:    bugdrill.LangJavaScript,
			Description: "This file does not even parse. The problem is in the very first line.",
			Snippet: "function sum(a, b {\n" +
				"  return a + b;\n" +
				"}",
			Hints: []string{
				"Count the parentheses in the function header.",
			},
		},
		{
			ID:          "py-missing-colon",
			Title:       "The loop that would not start",
			Language:    bugdrill.LangPython,
			Description: "Python refuses to run this loop. The fix is a single character.",
			Snippet: "for i in range(5)\n" +
				"    print(i)",
			Hints: []string{
				"Compound statements in Python end their header with a colon.",
			},
		},
		{
			ID:          "py-missing-indent",
			Title:       "A flat function",
			Language:    bugdrill.LangPython,
			Description: "The function body is there, but Python cannot see it as a body.",
			Snippet: "def double(x):\n" +
				"return x * 2",
			Hints: []string{
				"Function bodies must be indented.",
			},
		},
		{
			ID:          "py-print-statement",
			Title:       "A print from another era",
			Language:    bugdrill.LangPython,
			Description: "This script was written for Python 2. One line needs modernizing.",
			Snippet: "import sys\n" +
				"\n" +
				"total = 40 + 2\n" +
				"print total",
			Hints: []string{
				"print is a function in Python 3.",
			},
		},
	}
}
