package input

import (
	"errors"

	"contract-extractor/selection"
	"contract-extractor/utils"
)

// ResolvePaths turns paths into local file handles, keeping their order.
// Unresolvable paths are skipped and reported in the joined error.
func ResolvePaths(paths []string) ([]selection.File, error) {
	var files []selection.File
	var errs []error
	for _, p := range paths {
		f, err := selection.NewLocalFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, f)
	}
	return files, errors.Join(errs...)
}

// DropFromPaste converts text pasted into the terminal, which is what a
// terminal emits when files are dropped on it, into a drop event. Text with
// no paths is an empty drop; paths of which none resolve make a failed drop.
func DropFromPaste(text string) (DragEvent, error) {
	paths := utils.ParseDroppedPaths(text)
	if len(paths) == 0 {
		return DragEvent{Kind: Drop}, nil
	}

	files, err := ResolvePaths(paths)
	if len(files) == 0 {
		return DragEvent{Kind: Drop, Failed: true}, err
	}
	return DragEvent{Kind: Drop, Files: files}, err
}
