package models

import (
	"errors"
	"unicode/utf8"
)

// MaxFileSize is the upload ceiling enforced before any network call.
const MaxFileSize = 500 * 1024 * 1024

// Record describes one transfer as the server reports it: upload,
// owned-codes and validate-set responses all produce Records. Filename and
// expiry are re-fetched from the server, never cached locally.
type Record struct {
	Code     Code
	Filename string
	Expire   string
}

// SelectedFile is the single pending upload candidate. It exists between
// selection and either a successful upload or replacement; it is never
// persisted.
type SelectedFile struct {
	Name string
	Size int64
	Path string
}

var ErrFileTooLarge = errors.New("file exceeds the maximum size")

// Validate checks the size ceiling. It must hold at the moment the file
// is accepted into a session.
func (f *SelectedFile) Validate() error {
	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// DisplayName returns the name truncated for presentation. The uploaded
// content and the name sent to the server are never affected.
func (f *SelectedFile) DisplayName() string {
	return TruncateName(f.Name, 60)
}

// TruncateName shortens s to at most max runes, replacing the tail with
// "..." when it does not fit.
func TruncateName(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
