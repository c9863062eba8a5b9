package selection

// Placeholder is the filename label shown while nothing is selected.
const Placeholder = "drag and drop your document here"

// Label receives the filename display text.
type Label interface {
	SetFilename(text string)
}

// Holder owns the single selected-file slot. It is the only writer of the
// slot; input adapters and the submission controller hold a reference to it.
type Holder struct {
	file      File
	label     Label
	observers []func(File)
}

func NewHolder(label Label) *Holder {
	h := &Holder{label: label}
	h.publish()
	return h
}

// Set replaces the selection wholesale. A nil file clears it.
func (h *Holder) Set(f File) {
	h.file = f
	h.publish()
}

func (h *Holder) Clear() {
	h.Set(nil)
}

func (h *Holder) Current() File {
	return h.file
}

func (h *Holder) Present() bool {
	return h.file != nil
}

// Observe registers fn to run after every Set, and once immediately.
func (h *Holder) Observe(fn func(File)) {
	h.observers = append(h.observers, fn)
	fn(h.file)
}

func (h *Holder) publish() {
	if h.label != nil {
		h.label.SetFilename(DisplayText(h.file))
	}
	for _, fn := range h.observers {
		fn(h.file)
	}
}

// DisplayText is the filename label for f.
func DisplayText(f File) string {
	if f == nil {
		return Placeholder
	}
	return f.Name()
}
