// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package signature

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Signature descriptions are stored as TOML, one [[resource]] table per
// binding:
//
//	name = "forward"
//
//	[[resource]]
//	name = "Constants"
//	kind = "cb"
//	stages = "VS|PS"
//	dynamic = true
//
//	[[resource]]
//	name = "Albedo"
//	kind = "srv"
//	stages = "PS"
//
// Kind tags and stage sets use the textual forms of
// d3d11.ResourceRange and d3d11.ShaderStages.

// Parse decodes a TOML signature description.
func Parse(data []byte) (*Desc, error) {
	var d Desc
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("signature: parse: %w", err)
	}
	return &d, nil
}

// Load decodes a TOML signature description from r.
func Load(r io.Reader) (*Desc, error) {
	var d Desc
	if err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("signature: decode: %w", err)
	}
	return &d, nil
}

// LoadFile decodes a TOML signature description from a file.
func LoadFile(path string) (*Desc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("signature: load %s: %w", path, err)
	}
	var d Desc
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("signature: load %s: %w", path, err)
	}
	return &d, nil
}

// Marshal encodes the description as TOML.
func (d *Desc) Marshal() ([]byte, error) {
	data, err := toml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("signature: marshal: %w", err)
	}
	return data, nil
}

// Encode writes the description as TOML to w.
func (d *Desc) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("signature: encode: %w", err)
	}
	return nil
}
