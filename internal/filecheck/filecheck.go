// Package filecheck validates uploaded document bytes before anything is
// written to a store. The verified content type comes from the extension
// allow-list after the sniffed type is checked against it; the client's
// declared type is never trusted.
package filecheck

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"
)

const (
	// DefaultMaxSizeBytes is the upload size ceiling when none is configured.
	DefaultMaxSizeBytes = 10 << 20 // 10 MiB

	maxExtensionLength = 10
	sniffLength        = 512
)

// Validation rejections. Callers match with errors.Is to pick a response.
var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrBadFilename     = errors.New("invalid filename")
	ErrTypeNotAllowed  = errors.New("file type is not allowed")
	ErrContentMismatch = errors.New("file content does not match its extension")
)

// allowedFileTypes maps permitted extensions to their verified content type.
var allowedFileTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

var allowedMIMETypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-.]`)

// Result is the outcome of a successful validation.
type Result struct {
	SafeFilename string
	Extension    string
	ContentType  string
}

// Validator checks document uploads against size and type rules.
type Validator struct {
	maxSizeBytes int64
}

// New creates a Validator with the given size ceiling; zero or negative
// selects the default.
func New(maxSizeBytes int64) *Validator {
	if maxSizeBytes <= 0 {
		maxSizeBytes = DefaultMaxSizeBytes
	}
	return &Validator{maxSizeBytes: maxSizeBytes}
}

// Validate checks size, filename safety, extension, and sniffed content type.
// No store is touched by this package; a rejection has no side effects.
func (v *Validator) Validate(filename string, content []byte) (Result, error) {
	var zero Result

	if int64(len(content)) > v.maxSizeBytes {
		return zero, fmt.Errorf("%w of %d bytes", ErrFileTooLarge, v.maxSizeBytes)
	}

	safeFilename, err := SanitizeFilename(filename)
	if err != nil {
		return zero, err
	}

	extension, err := extractExtension(safeFilename)
	if err != nil {
		return zero, err
	}

	contentType, ok := allowedFileTypes[extension]
	if !ok {
		return zero, fmt.Errorf("%w: %q (supported: %s)", ErrTypeNotAllowed, extension, strings.Join(allowedExtensions(), ", "))
	}

	sniffed := sniffContentType(content)
	if _, ok := allowedMIMETypes[sniffed]; !ok {
		return zero, fmt.Errorf("%w: detected %q", ErrContentMismatch, sniffed)
	}

	return Result{SafeFilename: safeFilename, Extension: extension, ContentType: contentType}, nil
}

// MaxSizeBytes returns the configured size ceiling.
func (v *Validator) MaxSizeBytes() int64 {
	return v.maxSizeBytes
}

// SanitizeFilename strips path components and replaces unsafe characters.
func SanitizeFilename(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("%w: filename is required", ErrBadFilename)
	}

	// Drop any path components, including Windows-style separators.
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%w: %q", ErrBadFilename, filename)
	}

	safe := unsafeFilenameChars.ReplaceAllString(base, "_")
	if strings.Trim(safe, "_.") == "" {
		return "", fmt.Errorf("%w: no valid characters in %q", ErrBadFilename, filename)
	}
	return safe, nil
}

func extractExtension(filename string) (string, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", fmt.Errorf("%w: filename must include an extension", ErrBadFilename)
	}
	extension := strings.ToLower(filename[idx+1:])
	if len(extension) > maxExtensionLength {
		return "", fmt.Errorf("%w: extension too long", ErrBadFilename)
	}
	return extension, nil
}

func sniffContentType(content []byte) string {
	peek := content
	if len(peek) > sniffLength {
		peek = peek[:sniffLength]
	}
	sniffed := http.DetectContentType(peek)
	if mediaType, _, found := strings.Cut(sniffed, ";"); found {
		sniffed = mediaType
	}
	return strings.TrimSpace(sniffed)
}

func allowedExtensions() []string {
	return []string{"jpeg", "jpg", "pdf", "png"}
}
