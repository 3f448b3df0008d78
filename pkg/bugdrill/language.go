package bugdrill

import "strings"

// Language identifies which ruleset applies to a snippet.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangCpp        Language = "cpp"
	LangGo         Language = "go"
	LangUnknown    Language = "unknown"
)

// detectionCues is an ordered list of (language, cues) pairs. The first
// language with any cue present in the snippet wins. Order matters: several
// cues are ambiguous across languages (a snippet containing both "func " and
// "print(" detects as Python because Python is checked first), so this is a
// priority list, not a lookup table.
var detectionCues = []struct {
	lang Language
	cues []string
}{
	{LangPython, []string{"def ", "print(", "import ", "from "}},
	{LangJavaScript, []string{"function ", "const ", "let ", "console.log"}},
	{LangJava, []string{"public class", "System.out", "public static void main"}},
	{LangCpp, []string{"#include", "std::", "cout"}},
	{LangGo, []string{"func ", "package main", "fmt.Print"}},
}

// Detect infers the language of a snippet from keyword cues over the whole
// text. It is pure and deterministic. When nothing matches it defaults to
// JavaScript rather than unknown, so a plain snippet still gets a real
// ruleset.
//
// Detection is intended to run once, against the snippet as originally
// presented. A session's language is fixed at presentation time and does not
// drift when an edit happens to introduce keywords of another language.
func Detect(snippet string) Language {
	for _, entry := range detectionCues {
		for _, cue := range entry.cues {
			if strings.Contains(snippet, cue) {
				return entry.lang
			}
		}
	}
	return LangJavaScript
}

// SupportedLanguages returns the languages with a registered detection entry,
// in priority order.
func SupportedLanguages() []Language {
	langs := make([]Language, 0, len(detectionCues))
	for _, entry := range detectionCues {
		langs = append(langs, entry.lang)
	}
	return langs
}
