package bugdrill

// SeverityWarning is the severity carried by every projected annotation.
// Defects are advisory, so nothing the projector emits is an error-level
// marker.
const SeverityWarning = "warning"

// Annotation is a line-addressed advisory overlay for the editor surface.
type Annotation struct {
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ProjectMarkers translates defects into editor annotations, one annotation
// per defect. Duplicate-line defects are not merged. Pure transform.
func ProjectMarkers(defects []Defect) []Annotation {
	annotations := make([]Annotation, 0, len(defects))
	for _, d := range defects {
		annotations = append(annotations, Annotation{
			Line:     d.Line,
			Severity: SeverityWarning,
			Message:  d.Message,
		})
	}
	return annotations
}
