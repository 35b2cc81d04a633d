// Package sink provides output destinations for generated modules.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the slash-separated relative path.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes below a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, writing an existing file fails.
	Overwrite bool
}

// NewFilesystemSink returns a sink writing below root, replacing existing files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// WriteFile writes content to path within the root directory, creating
// parent directories. The write is atomic: content goes to a temp file that
// is then renamed (or linked, when not overwriting) into place.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(dir, ".typedesc-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()

	// Leftover temp files keep the .typedesc-*.tmp pattern.
	cleanup := func() { _ = os.Remove(tempPath) }

	if writeErr != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", writeErr)
	}
	if closeErr != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", closeErr)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tempPath, fullPath); err != nil {
			cleanup()
			return fmt.Errorf("failed to rename temp file: %w", err)
		}
		return nil
	}
	// os.Link fails if the target exists, without a stat+rename race.
	if err := os.Link(tempPath, fullPath); err != nil {
		cleanup()
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file already exists: %q", path)
		}
		return fmt.Errorf("failed to create file: %w", err)
	}
	_ = os.Remove(tempPath)
	return nil
}

// resolve returns the filesystem path of a sink path, rejecting paths that
// leave the root.
func (s *FilesystemSink) resolve(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return "", fmt.Errorf("path escapes root directory: %q", path)
	}
	return fullPath, nil
}

// MemorySink stores generated files in memory.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		files: make(map[string][]byte),
	}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = bytes.Clone(content)
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		result[path] = bytes.Clone(content)
	}
	return result
}

// Get returns the content of a single file, or nil if not found.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bytes.Clone(s.files[path])
}

// CheckSink compares generated content with the files below Root without
// writing anything. Stale lists the paths whose content differs or that do
// not exist yet.
type CheckSink struct {
	Root string

	mu    sync.Mutex
	stale []string
}

// WriteFile records path as stale unless the file on disk equals content.
func (s *CheckSink) WriteFile(ctx context.Context, path string, content []byte) error {
	fullPath, err := (&FilesystemSink{Root: s.Root}).resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	existing, err := os.ReadFile(fullPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	if err == nil && bytes.Equal(existing, content) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = append(s.stale, path)
	return nil
}

// Stale returns the sorted paths that would change.
func (s *CheckSink) Stale() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.stale...)
	sort.Strings(out)
	return out
}

// ValidatePath checks that path is relative, slash-separated, clean and
// does not traverse upwards.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters, even on Unix.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.ToSlash(path)))
	if cleaned != filepath.ToSlash(path) {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
