// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Reader decodes JSON or YAML from an io.Reader. Unknown fields are rejected.
type Reader struct {
	format Format
	input  io.Reader
}

// NewReader creates a Reader. Table format cannot be read back.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}
	return &Reader{format: format, input: input}, nil
}

// Deserialize decodes the input into v. Empty input leaves v untouched.
func (r *Reader) Deserialize(v any) error {
	switch r.format {
	case FormatJSON:
		dec := json.NewDecoder(r.input)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r.input)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
	return nil
}

// FromFile decodes the file at path on fs into a new T, picking the format
// from the extension.
func FromFile[T any](fs afero.Fs, path string) (*T, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	format := FormatFromPath(path)
	if format == FormatTable {
		format = FormatYAML
	}
	r, err := NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &v, nil
}
