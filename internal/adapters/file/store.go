package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Extensions lists the document file extensions, in lookup order. Save
// always writes the first one.
var Extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.DocumentStore and ports.Watchable over a directory
// of YAML and JSON files.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".morph/documents".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".morph", "documents")
	}
	return &Store{BasePath: basePath}
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", domain.ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return nil
}

// nameOf returns the document name of a file, or "" when the file is not a
// document.
func nameOf(file string) string {
	ext := filepath.Ext(file)
	if !slices.Contains(Extensions, ext) || strings.HasPrefix(file, "tmp-") {
		return ""
	}
	return strings.TrimSuffix(file, ext)
}

// Save writes the document atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, name+Extensions[0])

	// 1. Create Temp File
	// we use the same directory to ensure we are on the same filesystem (required for atomic rename)
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()    // Ensure closed
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Atomic Rename
	// On Windows, os.Rename fails if dest exists. We must remove it first.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to document: %w", err)
	}

	// Older spellings of the document are superseded.
	for _, ext := range Extensions[1:] {
		_ = os.Remove(filepath.Join(s.BasePath, name+ext))
	}
	return nil
}

// Load reads the first file named after the document.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	for _, ext := range Extensions {
		data, err := os.ReadFile(filepath.Join(s.BasePath, name+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read document file: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, name)
}

// Delete removes every file of the document.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	for _, ext := range Extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete document file: %w", err)
		}
	}
	return nil
}

// List returns all document names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := nameOf(entry.Name()); name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Watch reports the name of each document written, created, renamed or
// removed in the base directory.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure document directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(s.BasePath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", s.BasePath, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := nameOf(filepath.Base(event.Name))
				if name == "" {
					continue
				}
				select {
				case out <- name:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}
