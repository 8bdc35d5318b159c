// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileType is the encoding of a schema file.
type FileType int

const (
	Unknown FileType = iota
	TOML
	YAML
)

func (ft FileType) String() string {
	switch ft {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return "unknown"
}

// DetectFile returns the encoding of the schema file at path, first by
// extension and then by content.
func DetectFile(path string) (FileType, error) {
	if ft, ok := detectByName(path); ok {
		return ft, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return Unknown, fmt.Errorf("failed to read file: %w", err)
	}
	return DetectContent(bs)
}

func detectByName(path string) (FileType, bool) {
	if path == "" {
		return Unknown, false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, true
	// JSON documents are valid YAML.
	case ".yml", ".yaml", ".json":
		return YAML, true
	}
	return Unknown, false
}

// DetectContent sniffs the encoding of a schema document. A document that
// decodes as a non-empty TOML table is TOML; one that decodes as a
// non-empty YAML mapping is YAML.
func DetectContent(bs []byte) (FileType, error) {
	var tomlForm map[string]any
	if _, err := toml.Decode(string(bs), &tomlForm); err == nil && len(tomlForm) > 0 {
		return TOML, nil
	}
	var yamlForm map[string]any
	if err := yaml.Unmarshal(bs, &yamlForm); err == nil && len(yamlForm) > 0 {
		return YAML, nil
	}
	return Unknown, fmt.Errorf("unable to detect schema file type")
}
