package gclipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll returns the clipboard text with surrounding space removed.
func ReadAll() (string, error) {
	s, err := clipboard.ReadAll()
	return strings.TrimSpace(s), err
}

func WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
