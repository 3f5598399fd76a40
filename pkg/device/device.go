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

package device

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

var prefixPattern = regexp.MustCompile(`^[a-z]{3}$`)

// Device is a block device discovered under the device namespace.
type Device struct {
	// ID is the device name, e.g. "sdc1".
	ID string `json:"id" yaml:"id"`
	// Path is the raw device path, e.g. "/dev/sdc1".
	Path string `json:"path" yaml:"path"`
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFs sets the filesystem the device namespace is read from.
func WithFs(fs afero.Fs) Option {
	return func(s *Scanner) {
		s.fs = fs
	}
}

// WithDir sets the device namespace directory. Default is /dev.
func WithDir(dir string) Option {
	return func(s *Scanner) {
		s.dir = dir
	}
}

// WithPrefix sets the three-letter base token of candidate names. Default is "sdc".
func WithPrefix(prefix string) Option {
	return func(s *Scanner) {
		s.prefix = prefix
	}
}

// Scanner enumerates candidate devices.
type Scanner struct {
	fs      afero.Fs
	dir     string
	prefix  string
	pattern *regexp.Regexp
}

// NewScanner creates a scanner. It fails when the prefix is not a
// three-letter lowercase token.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		fs:     afero.NewOsFs(),
		dir:    defaults.DeviceDir,
		prefix: defaults.DevicePrefix,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !prefixPattern.MatchString(s.prefix) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"device prefix must be three lowercase letters",
			map[string]any{"prefix": s.prefix})
	}
	s.pattern = regexp.MustCompile(`^` + s.prefix + `\d+$`)

	return s, nil
}

// Matches reports whether name is a candidate device name.
func (s *Scanner) Matches(name string) bool {
	return s.pattern.MatchString(name)
}

// Scan lists the device namespace and returns matching devices sorted by ID.
// An unreadable namespace is fatal for the run.
func (s *Scanner) Scan(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
			"failed to read device namespace", err,
			map[string]any{"dir": s.dir})
	}

	devices := make([]Device, 0)
	for _, e := range entries {
		if !s.Matches(e.Name()) {
			continue
		}
		devices = append(devices, Device{
			ID:   e.Name(),
			Path: filepath.Join(s.dir, e.Name()),
		})
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].ID < devices[j].ID
	})

	slog.Info("discovered devices",
		slog.String("dir", s.dir),
		slog.String("pattern", s.pattern.String()),
		slog.Int("count", len(devices)))

	return devices, nil
}

// IDs returns the device identifiers in order.
func IDs(devices []Device) []string {
	ids := make([]string, 0, len(devices))
	for _, d := range devices {
		ids = append(ids, d.ID)
	}
	return ids
}

// String implements fmt.Stringer.
func (d Device) String() string {
	return fmt.Sprintf("%s (%s)", d.ID, d.Path)
}
