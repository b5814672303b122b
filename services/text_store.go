package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"
)

const textExt = ".txt"

// ErrNotFound is returned when a named prompt or style does not exist.
var ErrNotFound = errors.New("no such entry")

// TextStore is a flat directory of name-keyed plain text files, used for
// prompts and styles. Names never contain path separators; collisions on
// save are resolved with copy names instead of overwriting.
type TextStore struct {
	Dir string
}

// NewTextStore ensures the backing directory exists.
func NewTextStore(dir string) (*TextStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create text store directory '%s': %w", dir, err)
	}
	return &TextStore{Dir: dir}, nil
}

// List returns all entry names in natural sort order, so "prompt 2" comes
// before "prompt 10".
func (s *TextStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read text store directory '%s': %w", s.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), textExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), textExt))
	}
	natsort.Sort(names)
	return names, nil
}

// Get returns the contents of one entry.
func (s *TextStore) Get(name string) (string, error) {
	path, err := s.entryPath(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read entry '%s': %w", name, err)
	}
	return string(data), nil
}

// Save writes content under name. If the name is taken the entry is stored
// under the next free copy name instead; the name actually used is
// returned.
func (s *TextStore) Save(name, content string) (string, error) {
	path, err := s.entryPath(name)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		name = s.nextCopyName(name)
		path = filepath.Join(s.Dir, name+textExt)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write entry '%s': %w", name, err)
	}
	return name, nil
}

// Overwrite replaces the contents of an existing entry.
func (s *TextStore) Overwrite(name, content string) error {
	path, err := s.entryPath(name)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return ErrNotFound
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write entry '%s': %w", name, err)
	}
	return nil
}

// Delete removes an entry.
func (s *TextStore) Delete(name string) error {
	path, err := s.entryPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete entry '%s': %w", name, err)
	}
	return nil
}

func (s *TextStore) entryPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid entry name %q", name)
	}
	return filepath.Join(s.Dir, name+textExt), nil
}

// nextCopyName finds the first free "name copy", "name copy 2", ... slot.
func (s *TextStore) nextCopyName(name string) string {
	candidate := name + " copy"
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.Dir, candidate+textExt)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s copy %d", name, n)
	}
}
