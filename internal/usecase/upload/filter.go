package upload

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fhuszti/cms-uploads-go/internal/model"
)

// MaxFilenameLength matches the original_filename column, in characters.
const MaxFilenameLength = 255

// FileTypeError is returned by the pre-save gate. Its message is safe to show
// to the uploader.
type FileTypeError struct {
	Category  model.Category
	Extension string
	Allowed   []string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("%s. Allowed extensions: %s", ErrInvalidFileType, strings.Join(e.Allowed, ", "))
}

func (e *FileTypeError) Unwrap() error {
	return ErrInvalidFileType
}

// CheckFilename is the cheap pre-save gate: it looks at the claimed extension
// only. It is trivially spoofed by renaming and must be followed by
// ValidateContent once the bytes are stored.
func CheckFilename(category model.Category, filename string) error {
	if n := utf8.RuneCountInString(filename); n > MaxFilenameLength {
		return fmt.Errorf("%w: %d characters, at most %d allowed", ErrFilenameTooLong, n, MaxFilenameLength)
	}
	ext := FileExtension(filename)
	if ext == "" || !IsAllowedExtension(category, ext) {
		return &FileTypeError{
			Category:  category,
			Extension: ext,
			Allowed:   AllowedExtensions(category),
		}
	}
	return nil
}
