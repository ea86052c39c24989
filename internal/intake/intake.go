package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Language identifies the source language of a submitted file.
type Language string

const (
	LangPython     Language = "Python"
	LangJavaScript Language = "JavaScript"
	LangReactJSX   Language = "React/JSX"
	LangUnknown    Language = "Unknown"
)

// AllowedExtensions is the intake allow-list, in the order error messages
// report it.
var AllowedExtensions = []string{".py", ".js", ".jsx"}

// ErrNotFound is returned when a server-side path does not exist.
var ErrNotFound = os.ErrNotExist

// UnsupportedTypeError reports a file extension outside the allow-list.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported file type: %s. Supported types: %s",
		e.Extension, strings.Join(AllowedExtensions, ", "))
}

// SourceFile is a validated, decoded submission ready for analysis.
type SourceFile struct {
	Name     string
	Language Language
	Content  string
}

// DetectLanguage maps a filename's extension to a language hint.
func DetectLanguage(filename string) Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".py":
		return LangPython
	case ".js":
		return LangJavaScript
	case ".jsx":
		return LangReactJSX
	default:
		return LangUnknown
	}
}

// ValidateExtension checks the filename against the allow-list.
func ValidateExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return &UnsupportedTypeError{Extension: ext}
}

// FromBytes validates the claimed filename and decodes the payload as text.
func FromBytes(filename string, payload []byte) (SourceFile, error) {
	if err := ValidateExtension(filename); err != nil {
		return SourceFile{}, err
	}
	content := decodeText(payload)
	return SourceFile{
		Name:     filepath.Base(filename),
		Language: DetectLanguage(filename),
		Content:  content,
	}, nil
}

// FromPath validates and reads a server-side file.
func FromPath(path string) (SourceFile, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return SourceFile{}, fmt.Errorf("file not found: %s: %w", path, ErrNotFound)
		}
		return SourceFile{}, err
	}
	if err := ValidateExtension(path); err != nil {
		return SourceFile{}, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{
		Name:     filepath.Base(path),
		Language: DetectLanguage(path),
		Content:  decodeText(payload),
	}, nil
}

// decodeText interprets the payload as UTF-8, replacing invalid sequences so
// downstream prompt building never sees broken encoding.
func decodeText(payload []byte) string {
	if utf8.Valid(payload) {
		return string(payload)
	}
	return strings.ToValidUTF8(string(payload), string(utf8.RuneError))
}
