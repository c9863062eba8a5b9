package input

import (
	"contract-extractor/selection"
)

// Browse is the file-dialog input adapter.
type Browse struct {
	holder *selection.Holder
	open   bool
}

func NewBrowse(holder *selection.Holder) *Browse {
	return &Browse{holder: holder}
}

// Open marks the file dialog as showing.
func (b *Browse) Open() {
	b.open = true
}

func (b *Browse) IsOpen() bool {
	return b.open
}

// Cancel closes the dialog without touching the selection.
func (b *Browse) Cancel() {
	b.open = false
}

// Choose completes the dialog. Only the first chosen file is selected; an
// empty choice leaves the selection as it was.
func (b *Browse) Choose(files []selection.File) {
	b.open = false
	if len(files) == 0 {
		return
	}
	b.holder.Set(files[0])
}

// ChoosePaths resolves paths and completes the dialog with them. Paths that
// are not regular files are skipped.
func (b *Browse) ChoosePaths(paths []string) error {
	files, err := ResolvePaths(paths)
	b.Choose(files)
	return err
}
