package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFieldName validates a field name supplied by a user, for example
// on the command line or in an API request.
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "field name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "field name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "field name contains invalid control characters")
		}
	}

	return nil
}

// uploadExtensions are the spreadsheet formats accepted for upload.
var uploadExtensions = []string{".xlsx", ".xlsm", ".csv", ".json"}

// ValidateUploadFilename validates the filename of an uploaded layout.
// It must be a plain basename with a supported extension.
func ValidateUploadFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if strings.Contains(filename, "\x00") {
		return New(ErrCodeInvalidInput, "filename contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range uploadExtensions {
		if ext == e {
			return nil
		}
	}
	return New(ErrCodeUnsupportedFormat, "unsupported file type %q (want one of %s)",
		ext, strings.Join(uploadExtensions, ", "))
}
