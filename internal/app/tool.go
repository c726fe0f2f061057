package app

import "radview/internal/annotation"

// Tool identifies the active interaction behavior. Exactly one tool is
// active per viewport; the tool decides how pointer input is interpreted.
type Tool int

const (
	ToolPan Tool = iota
	ToolZoom
	ToolWindowLevel
	ToolSelect
	ToolFreehand
	ToolArrow
	ToolEllipse
	ToolRectangle
	ToolText
	ToolMarker
	ToolDistance
	ToolAngle
	ToolArea
	ToolCobbAngle
)

func (t Tool) String() string {
	switch t {
	case ToolPan:
		return "Pan"
	case ToolZoom:
		return "Zoom"
	case ToolWindowLevel:
		return "Window/Level"
	case ToolSelect:
		return "Select"
	case ToolFreehand:
		return "Freehand"
	case ToolArrow:
		return "Arrow"
	case ToolEllipse:
		return "Ellipse"
	case ToolRectangle:
		return "Rectangle"
	case ToolText:
		return "Text"
	case ToolMarker:
		return "Marker"
	case ToolDistance:
		return "Distance"
	case ToolAngle:
		return "Angle"
	case ToolArea:
		return "Area"
	case ToolCobbAngle:
		return "Cobb Angle"
	default:
		return "Unknown"
	}
}

// AnnotationKind returns the annotation kind the tool creates, if any.
func (t Tool) AnnotationKind() (annotation.Kind, bool) {
	switch t {
	case ToolFreehand:
		return annotation.Freehand, true
	case ToolArrow:
		return annotation.Arrow, true
	case ToolEllipse:
		return annotation.Ellipse, true
	case ToolRectangle:
		return annotation.Rectangle, true
	case ToolText:
		return annotation.Text, true
	case ToolMarker:
		return annotation.Marker, true
	}
	return "", false
}

// MeasureKind returns the measurement kind the tool creates, if any.
func (t Tool) MeasureKind() (annotation.MeasureKind, bool) {
	switch t {
	case ToolDistance:
		return annotation.Distance, true
	case ToolAngle:
		return annotation.Angle, true
	case ToolArea:
		return annotation.Area, true
	case ToolCobbAngle:
		return annotation.CobbAngle, true
	}
	return "", false
}

// Draws reports whether the tool creates entities (as opposed to mutating
// the view or selection).
func (t Tool) Draws() bool {
	if _, ok := t.AnnotationKind(); ok {
		return true
	}
	_, ok := t.MeasureKind()
	return ok
}

// MultiClick reports whether the tool collects its points from discrete
// clicks instead of a single drag gesture.
func (t Tool) MultiClick() bool {
	if k, ok := t.MeasureKind(); ok {
		return k.MultiClick()
	}
	return false
}
