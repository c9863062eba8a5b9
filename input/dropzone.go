package input

import "contract-extractor/selection"

type DragKind int

const (
	DragEnter DragKind = iota
	DragOver
	DragLeave
	Drop
)

func (k DragKind) String() string {
	switch k {
	case DragEnter:
		return "dragenter"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// DragEvent is a drag-and-drop event on the drop surface. Failed is set on a
// drop whose payload could not be resolved into files.
type DragEvent struct {
	Kind   DragKind
	Files  []selection.File
	Failed bool
}

// DropZone is the drag-and-drop input adapter.
type DropZone struct {
	holder      *selection.Holder
	highlighted bool
}

func NewDropZone(holder *selection.Holder) *DropZone {
	return &DropZone{holder: holder}
}

// Handle applies ev to the drop surface. Every drag event on the surface is
// consumed, so the caller must not pass it on to any other handler.
func (z *DropZone) Handle(ev DragEvent) bool {
	switch ev.Kind {
	case DragEnter, DragOver:
		z.highlighted = true
	case DragLeave:
		z.highlighted = false
	case Drop:
		z.highlighted = false
		switch {
		case ev.Failed:
			z.holder.Clear()
		case len(ev.Files) > 0:
			z.holder.Set(ev.Files[0])
		}
	}
	return true
}

// Highlighted reports whether the drag-over affordance is on.
func (z *DropZone) Highlighted() bool {
	return z.highlighted
}
