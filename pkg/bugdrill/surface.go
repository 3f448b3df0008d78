package bugdrill

// EditorSurface is the contract the engine expects from an editor
// collaborator. The engine never inspects editor internals beyond these
// affordances; any editor widget that can expose them can host an exercise.
type EditorSurface interface {
	// Text returns the editor's full current text.
	Text() string
	// SetText replaces the editor's full text.
	SetText(text string)
	// OnChange registers a callback invoked with the new full text on every
	// change.
	OnChange(fn func(text string))
	// SetAnnotations applies line-addressed advisory markers. It may fail;
	// the caller logs the failure and carries on.
	SetAnnotations(annotations []Annotation) error
}

// ResultPanel renders check outcomes. The engine dictates content, not
// presentation: the panel shows the summary or success message and the
// per-defect messages verbatim.
type ResultPanel interface {
	ShowResult(result AnalysisResult)
	ShowPrompt(message string)
}
