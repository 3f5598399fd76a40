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
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/NVIDIA/node-investigator/pkg/kernel"
)

// kernelTimeLayout formats creation times in the inventory (UTC).
const kernelTimeLayout = "2006-01-02 15:04:05"

// KernelInventory lists kernel images in bootDir, newest first, and writes
// them as "<name> : <timestamp>" lines. The inventory file is written even
// when bootDir is empty or holds no kernel images.
func (c *Collector) KernelInventory(bootDir string) (Artifact, []KernelEntry) {
	a := Artifact{
		Name:     string(CategoryKernels),
		Category: CategoryKernels,
		Source:   bootDir,
		Encoding: EncodingRaw,
	}

	var entries []KernelEntry
	if bootDir != "" {
		var err error
		entries, err = c.listKernels(bootDir)
		if err != nil {
			slog.Warn("failed to list kernel images, writing empty inventory",
				slog.String("dir", bootDir),
				slog.String("error", err.Error()))
			entries = nil
		}
	}

	dst := c.Path(FileKernels)
	if err := c.writeFile(dst, func(w io.Writer) error {
		return WriteKernelInventory(w, entries)
	}); err != nil {
		return c.failed(a, dst, err), entries
	}

	a.Staged = dst
	a.Status = StatusCollected
	if bootDir == "" {
		a.Reason = "boot directory not found, inventory is empty"
	}
	slog.Info("wrote kernel inventory",
		slog.String("staged", dst),
		slog.Int("kernels", len(entries)))
	return a, entries
}

func (c *Collector) listKernels(dir string) ([]KernelEntry, error) {
	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	entries := make([]KernelEntry, 0)
	for _, fi := range infos {
		if !strings.HasPrefix(fi.Name(), kernel.ImagePrefix) {
			continue
		}
		entry := KernelEntry{
			Name:    fi.Name(),
			Created: creationTime(fi).UTC(),
		}
		if r, err := kernel.ParseImageName(fi.Name()); err == nil {
			entry.Release = r.String()
		}
		entries = append(entries, entry)
	}

	// ReadDir returns names ascending; stable sort keeps that as the tie-break.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp() > entries[j].Timestamp()
	})
	return entries, nil
}

// Timestamp returns the inventory representation of the creation time.
func (k KernelEntry) Timestamp() string {
	return k.Created.UTC().Format(kernelTimeLayout)
}

// WriteKernelInventory writes one "<name> : <timestamp>" line per entry.
func WriteKernelInventory(w io.Writer, entries []KernelEntry) error {
	for _, k := range entries {
		if _, err := fmt.Fprintf(w, "%s : %s\n", k.Name, k.Timestamp()); err != nil {
			return err
		}
	}
	return nil
}
