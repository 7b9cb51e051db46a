package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is a loaded source before chunking.
type Document struct {
	Content string
	Source  string // file path or URL
	Type    string // "pdf", "url", "text"
	Name    string // base name or page title
}

type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFile reads a single .pdf or .txt file into a Document.
func LoadFile(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		content, err := ExtractPDFText(path)
		if err != nil {
			return nil, &LoadError{Source: path, Err: err}
		}
		return &Document{
			Content: content,
			Source:  path,
			Type:    "pdf",
			Name:    filepath.Base(path),
		}, nil
	case ".txt", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Source: path, Err: err}
		}
		return &Document{
			Content: string(raw),
			Source:  path,
			Type:    "text",
			Name:    filepath.Base(path),
		}, nil
	default:
		return nil, &LoadError{Source: path, Err: fmt.Errorf("unsupported extension %q", ext)}
	}
}

// LoadDirectory walks dir for supported files. A file that fails to load is
// skipped and reported in the returned error slice; the rest still load.
func LoadDirectory(dir string) ([]*Document, []error) {
	var docs []*Document
	var errs []error

	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = append(errs, &LoadError{Source: path, Err: err})
			return nil
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".pdf" && ext != ".txt" && ext != ".md" {
			return nil
		}

		doc, loadErr := LoadFile(path)
		if loadErr != nil {
			errs = append(errs, loadErr)
			return nil
		}
		if strings.TrimSpace(doc.Content) == "" {
			errs = append(errs, &LoadError{Source: path, Err: fmt.Errorf("no extractable text")})
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	return docs, errs
}
