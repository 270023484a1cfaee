// File: scenario/script.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/momentics/ownkit/api"
)

// Kind selects the element type a script operates on.
type Kind string

const (
	KindInt   Kind = "int"
	KindChar  Kind = "char"
	KindFloat Kind = "float"
)

// Primitive selects the ownership primitive a script exercises.
type Primitive string

const (
	PrimitiveShared Primitive = "shared"
	PrimitiveUnique Primitive = "unique"
	PrimitiveArray  Primitive = "array"
)

// Literal is a scalar written in a script. TOML numbers and strings are both
// accepted and kept in their textual form until the kind is known.
type Literal string

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Literal) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*l = Literal(x)
	case int64, float64, bool:
		*l = Literal(fmt.Sprint(x))
	default:
		return fmt.Errorf("literal: unsupported TOML value %T", v)
	}
	return nil
}

// Script is one scripted scenario.
type Script struct {
	Name      string    `yaml:"name" toml:"name"`
	Kind      Kind      `yaml:"kind" toml:"kind"`
	Primitive Primitive `yaml:"primitive" toml:"primitive"`
	// Size is the element count of arrays built by the script.
	Size  int    `yaml:"size" toml:"size"`
	Steps []Step `yaml:"steps" toml:"steps"`
}

// Step applies Op to Slot.
type Step struct {
	Op     string    `yaml:"op" toml:"op"`
	Slot   string    `yaml:"slot" toml:"slot"`
	From   string    `yaml:"from,omitempty" toml:"from"`
	Value  *Literal  `yaml:"value,omitempty" toml:"value"`
	Values []Literal `yaml:"values,omitempty" toml:"values"`
	Index  int       `yaml:"index,omitempty" toml:"index"`
	Expect *Expect   `yaml:"expect,omitempty" toml:"expect"`
}

// Expect lists checks run against Slot after a step. Unset fields are skipped.
type Expect struct {
	Empty    *bool     `yaml:"empty,omitempty" toml:"empty"`
	Count    *int      `yaml:"count,omitempty" toml:"count"`
	Value    *Literal  `yaml:"value,omitempty" toml:"value"`
	Released *Literal  `yaml:"released,omitempty" toml:"released"`
	Values   []Literal `yaml:"values,omitempty" toml:"values"`
	Front    *Literal  `yaml:"front,omitempty" toml:"front"`
	Back     *Literal  `yaml:"back,omitempty" toml:"back"`
	Size     *int      `yaml:"size,omitempty" toml:"size"`
}

// Format names a script encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf derives the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("script %s: %w: unknown extension", path, api.ErrNotSupported)
	}
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("yaml decode: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("toml decode: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %q: %w", format, api.ErrNotSupported)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the script header and that every step names a slot.
func (s *Script) Validate() error {
	switch s.Kind {
	case KindInt, KindChar, KindFloat:
	default:
		return fmt.Errorf("kind %q: %w", s.Kind, api.ErrInvalidArgument)
	}
	switch s.Primitive {
	case PrimitiveShared, PrimitiveUnique:
	case PrimitiveArray:
		if s.Size < 0 {
			return fmt.Errorf("array size %d: %w", s.Size, api.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("primitive %q: %w", s.Primitive, api.ErrInvalidArgument)
	}
	for i, st := range s.Steps {
		if st.Op == "" {
			return fmt.Errorf("step %d: %w: op is required", i, api.ErrInvalidArgument)
		}
		if st.Slot == "" && st.Op != OpDrain {
			return fmt.Errorf("step %d (%s): %w: slot is required", i, st.Op, api.ErrInvalidArgument)
		}
	}
	return nil
}
