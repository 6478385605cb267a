package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	ErrFileTooLarge  = errors.New("file exceeds maximum size")
	ErrExtNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile     = errors.New("file is empty")
)

// AllowedExtensions are the only image extensions accepted for upload.
var AllowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedExtension reports whether the filename carries an accepted image
// extension.
func AllowedExtension(filename string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ValidateUpload checks the extension, reads the file fully and enforces the
// size limit. Returns the buffered content so it can be stored and
// thumbnailed without re-reading the request body.
func ValidateUpload(reader io.Reader, filename string, maxSize int64) ([]byte, error) {
	if !AllowedExtension(filename) {
		return nil, ErrExtNotAllowed
	}

	// Read at most maxSize+1 so oversized files are detected without
	// buffering an unbounded body.
	limited := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// ContentTypeForExt returns the MIME type for an image extension.
func ContentTypeForExt(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName strips any path components and unsafe characters from a
// client-provided filename.
func SafeName(filename string) string {
	name := filepath.Base(filename)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// GenerateKey builds a unique storage key for an upload: a timestamp prefix
// plus the sanitized original name.
func GenerateKey(filename string) string {
	return time.Now().Format("20060102_150405_") + SafeName(filename)
}

// ThumbKey derives the thumbnail key from an original storage key.
func ThumbKey(key string) string {
	ext := filepath.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb" + ext
}
