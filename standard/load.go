// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package standard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a YAML-declared Standard override from path. Nothing
// in the system requires one; the embedded Default is used unless a caller
// explicitly opts into an on-disk override.
func LoadFromFile(path string) (Standard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Standard{}, fmt.Errorf("could not read standard file %q: %w", path, err)
	}

	var s Standard
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Standard{}, fmt.Errorf("could not parse standard file %q: %w", path, err)
	}
	if s.Name == "" {
		return Standard{}, fmt.Errorf("standard file %q: name is required", path)
	}
	return s, nil
}
