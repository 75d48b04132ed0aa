package gdialog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
)

type Result struct {
	Path string
	Name string
	Data []byte
}

// OpenFile asks for a file and reads it.
func OpenFile(title string, filters ...string) (Result, error) {
	b := dialog.File().Title(title)
	if len(filters) > 0 {
		b = b.Filter(strings.Join(filters, ", "), filters...)
	}
	path, err := b.Load()
	if err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Path: path,
		Name: filepath.Base(path),
		Data: data,
	}, nil
}

// Cancelled is true when the user closed the dialog without a choice.
func Cancelled(err error) bool {
	return err == dialog.ErrCancelled
}
