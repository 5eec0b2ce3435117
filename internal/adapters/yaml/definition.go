// Package yaml reads and writes engine definition files with gopkg.in/yaml.v3.
//
//	name: hvac
//	strategy: centroid
//	inputs:
//	  - name: temp
//	    start: 0
//	    end: 100
//	    terms:
//	      - {name: hot, shape: up, params: [60, 90]}
//	outputs:
//	  - name: fan
//	    start: 0
//	    end: 10
//	    terms:
//	      - {name: fast, shape: up, params: [5, 10]}
//	rules:
//	  - if temp is very hot then fan is fast
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/fuzzy/internal/ports"
	"gopkg.in/yaml.v3"
)

// LoadDefinition reads a definition file. A definition without a name takes
// the file's base name.
func LoadDefinition(path string) (*ports.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definition: %w", err)
	}
	defer f.Close()

	def, err := DecodeDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// DecodeDefinition parses one YAML document. Unknown keys are rejected so a
// misspelled field fails loudly instead of silently defaulting.
func DecodeDefinition(r io.Reader) (*ports.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def ports.Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty definition")
		}
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	return &def, nil
}

// EncodeDefinition writes def as YAML.
func EncodeDefinition(w io.Writer, def *ports.Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	return enc.Close()
}
