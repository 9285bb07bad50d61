package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a profile file from disk and validates it. YAML (.yaml, .yml)
// and TOML (.toml) are supported; the format is chosen by extension. Fields
// absent from the file keep the built-in defaults.
func Load(path string) (*Profile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("profile path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	p, err := parse(data, filepath.Ext(path))
	if err != nil {
		return nil, wrapParseError(path, err)
	}
	p.Source = path

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadDir loads every profile file in a directory, sorted by file name.
// Non-profile extensions are skipped; an invalid profile aborts the load.
func LoadDir(dir string) ([]*Profile, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Profile{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*Profile{}, nil
		}
		return nil, fmt.Errorf("read profile directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".toml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	profiles := make([]*Profile, 0, len(names))
	for _, name := range names {
		p, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func parse(data []byte, ext string) (*Profile, error) {
	p := Default()
	switch ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, err
		}
	case ".yaml", ".yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			// An empty file is a valid all-defaults profile.
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", ext)
	}
	return &p, nil
}

func wrapParseError(path string, err error) error {
	var list *ErrorList
	if errors.As(err, &list) {
		return err
	}

	perr := ProfileError{
		Code:    ErrCodeParse,
		Message: err.Error(),
		Path:    path,
	}

	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		line, _ := tomlErr.Position()
		if line > 0 {
			perr.Message = fmt.Sprintf("%s (line %d)", tomlErr.Error(), line)
		}
	}

	out := &ErrorList{}
	out.Add(perr)
	return out
}
