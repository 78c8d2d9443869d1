package page

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/shared"
)

// PickerFailedMessage is shown when the chosen folder cannot be read.
const PickerFailedMessage = "The selected folder could not be read."

// PickFolder lists every regular file under dir, recursively, in lexical order.
//
// Entries carry their base name, matching what a folder picker reports.
func PickFolder(dir string) (models.Selection, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrInvalidArgument, dir)
	}

	var sel models.Selection
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		sel = append(sel, models.NewDiskFile(d.Name(), path, fi.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}
	return sel, nil
}
