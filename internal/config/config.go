// Package config persists per-tool settings as a TOML file and can watch it
// for edits, applying changes to the tool manager live.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"coursecanvas/internal/tools"
)

// File is the on-disk settings layout: one [tools.<name>] table per tool.
type File struct {
	Tools map[string]tools.Settings `toml:"tools"`
}

// Default returns the built-in settings for every tool.
func Default() *File {
	f := &File{Tools: make(map[string]tools.Settings)}
	for _, name := range tools.AllTools {
		f.Tools[string(name)] = tools.DefaultSettings(name)
	}
	return f
}

// Load reads the settings file. A missing file is not an error: the
// defaults are returned so first run works without setup.
func Load(path string) (*File, error) {
	f := Default()
	_, err := toml.DecodeFile(path, f)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Save writes the current settings of every tool the manager knows.
func Save(path string, m *tools.Manager) error {
	f := &File{Tools: make(map[string]tools.Settings)}
	for _, name := range tools.AllTools {
		if s, ok := m.Settings(name); ok {
			f.Tools[string(name)] = s
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Apply replaces the manager's settings with the file's, tool by tool.
// Unknown tool names in the file are skipped with a warning.
func Apply(f *File, m *tools.Manager, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	for name, s := range f.Tools {
		if !m.ReplaceSettings(tools.Name(name), s) {
			log.Warn("settings for unknown tool ignored", "tool", name)
		}
	}
}
