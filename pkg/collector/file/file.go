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

package file

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// DefaultMaxSize is the largest file a Parser reads unless WithMaxSize is used.
const DefaultMaxSize = 64 << 10

// Option configures a Parser.
type Option func(*Parser)

// Parser splits configuration files into entries and key-value pairs.
type Parser struct {
	fs              afero.Fs
	delimiter       string
	maxSize         int64
	skipComments    bool
	kvDelimiter     string
	vTrimChars      string
	skipEmptyValues bool
}

// WithDelimiter sets the entry delimiter. Default is newline.
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum file size in bytes.
func WithMaxSize(size int64) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with '#' are dropped. Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used by GetMap. Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVTrimChars sets characters trimmed from both ends of values.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops keys whose value is empty, including keys
// without a delimiter.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a parser reading from fs.
func NewParser(fs afero.Fs, opts ...Option) *Parser {
	p := &Parser{
		fs:           fs,
		delimiter:    "\n",
		maxSize:      DefaultMaxSize,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap parses the file at path into key-value pairs. Later keys win.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, _ := strings.Cut(line, p.kvDelimiter)
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if key == "" || (p.skipEmptyValues && value == "") {
			slog.Debug("skipping entry without value", slog.String("path", path), slog.String("key", key))
			continue
		}
		result[key] = value
	}
	return result, nil
}

// GetLines reads the file at path and returns its non-empty entries.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	f, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, p.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if int64(len(b)) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), p.delimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}
	return result, nil
}
