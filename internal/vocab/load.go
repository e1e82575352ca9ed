package vocab

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultData []byte

// Default returns the built-in vocabulary dataset.
func Default() ([]Topic, error) {
	return ParseYAML("builtin", defaultData)
}

// Load reads topics from path. An empty path yields the built-in dataset.
// A directory is scanned for .yaml, .yml, .json and .xlsx files; files that
// fail to load are skipped with a warning.
func Load(path string) ([]Topic, error) {
	if path == "" {
		return Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat vocabulary path: %w", err)
	}
	if !info.IsDir() {
		return LoadFile(path)
	}
	return loadDir(path)
}

// LoadFile reads one vocabulary file, choosing the decoder by extension.
func LoadFile(path string) ([]Topic, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadExcel(path)
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read vocabulary file: %w", err)
		}
		return ParseYAML(path, data)
	default:
		return nil, &ValidationError{Source: path, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(path))}
	}
}

// ParseYAML decodes a vocabulary document. JSON input is accepted since it
// is valid YAML.
func ParseYAML(source string, data []byte) ([]Topic, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if err := checkSchema(raw); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if err := Validate(source, doc.Topics); err != nil {
		return nil, err
	}
	return doc.Topics, nil
}

func loadDir(dir string) ([]Topic, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json", ".xlsx":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var topics []Topic
	loaded := 0
	for _, file := range files {
		ts, err := LoadFile(file)
		if err != nil {
			slog.Warn("failed to load vocabulary file", "file", file, "error", err)
			continue
		}
		topics = append(topics, ts...)
		loaded++
	}

	slog.Info("vocabulary loaded", "dir", dir, "files", loaded, "topics", len(topics))

	if err := Validate(dir, topics); err != nil {
		return nil, err
	}
	return topics, nil
}
