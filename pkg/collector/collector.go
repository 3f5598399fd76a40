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

package collector

import (
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// Collector copies and archives artifacts into a staging directory.
type Collector struct {
	fs  afero.Fs
	dir string
}

// New creates a Collector staging into dir on fs.
func New(fs afero.Fs, dir string) *Collector {
	return &Collector{fs: fs, dir: dir}
}

// Dir returns the staging directory.
func (c *Collector) Dir() string {
	return c.dir
}

// Path returns the staging path of a file relative to the staging directory.
func (c *Collector) Path(rel string) string {
	return filepath.Join(c.dir, filepath.FromSlash(rel))
}

// ArchiveLog streams src through gzip into the archive staging path.
func (c *Collector) ArchiveLog(src string) Artifact {
	a := Artifact{
		Name:     string(CategoryMessagesGzip),
		Category: CategoryMessagesGzip,
		Source:   src,
		Encoding: EncodingGzip,
	}
	return c.stage(a, c.Path(FileMessagesArchive), func(dst io.Writer, in io.Reader) error {
		zw := gzip.NewWriter(dst)
		zw.Name = filepath.Base(src)
		if _, err := io.Copy(zw, in); err != nil {
			return err
		}
		return zw.Close()
	})
}

// CopyLog copies src uncompressed into the raw log staging path.
func (c *Collector) CopyLog(src string) Artifact {
	a := Artifact{
		Name:     string(CategoryMessagesRaw),
		Category: CategoryMessagesRaw,
		Source:   src,
		Encoding: EncodingRaw,
	}
	return c.stage(a, c.Path(FileMessagesRaw), copyStream)
}

// AgentLog copies the platform agent log, creating its staging directory.
func (c *Collector) AgentLog(src string) Artifact {
	a := Artifact{
		Name:     string(CategoryAgentLog),
		Category: CategoryAgentLog,
		Source:   src,
		Encoding: EncodingRaw,
	}
	return c.stage(a, c.Path(FileAgentLog), copyStream)
}

func copyStream(dst io.Writer, in io.Reader) error {
	_, err := io.Copy(dst, in)
	return err
}

// stage opens a.Source, writes it through fn to dst and fills in the outcome.
func (c *Collector) stage(a Artifact, dst string, fn func(io.Writer, io.Reader) error) Artifact {
	if a.Source == "" {
		return skip(a, reasonNotFound)
	}

	in, err := c.fs.Open(a.Source)
	if err != nil {
		return c.failed(a, dst, fmt.Errorf("failed to open source: %w", err))
	}
	defer in.Close()

	if err := c.writeFile(dst, func(w io.Writer) error { return fn(w, in) }); err != nil {
		return c.failed(a, dst, err)
	}

	a.Staged = dst
	a.Status = StatusCollected
	slog.Info("staged artifact",
		slog.String("category", string(a.Category)),
		slog.String("source", a.Source),
		slog.String("staged", dst))
	return a
}

// writeFile creates dst and its parent and writes it with fn.
func (c *Collector) writeFile(dst string, fn func(io.Writer) error) error {
	if err := c.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	out, err := c.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}

	if err := fn(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write staging file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close staging file: %w", err)
	}
	return nil
}

func skip(a Artifact, reason string) Artifact {
	slog.Info("skipping artifact",
		slog.String("category", string(a.Category)),
		slog.String("reason", reason))
	a.Status = StatusSkipped
	a.Reason = reason
	return a
}

func (c *Collector) failed(a Artifact, dst string, err error) Artifact {
	slog.Warn("failed to stage artifact",
		slog.String("category", string(a.Category)),
		slog.String("source", a.Source),
		apperrors.Attr(err))
	if dst != "" {
		_ = c.fs.Remove(dst)
	}
	a.Status = StatusFailed
	a.Reason = err.Error()
	return a
}
