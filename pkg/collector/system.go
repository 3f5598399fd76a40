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
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/NVIDIA/node-investigator/pkg/collector/file"
)

// fileBootEnv is the GRUB environment block inside the bootloader directory.
const fileBootEnv = "grubenv"

// SystemInfo identifies the operating system found on the rescued disk.
type SystemInfo struct {
	// OSRelease holds os-release fields such as NAME, VERSION_ID and PRETTY_NAME.
	OSRelease map[string]string `json:"osRelease,omitempty" yaml:"osRelease,omitempty"`
	// BootEnv holds the GRUB environment, notably saved_entry.
	BootEnv map[string]string `json:"bootEnv,omitempty" yaml:"bootEnv,omitempty"`
}

// System reads os-release from releasePath and the GRUB environment from
// bootloaderDir. Either path may be empty; unreadable files are logged and left out.
func (c *Collector) System(releasePath, bootloaderDir string) SystemInfo {
	var info SystemInfo

	if releasePath != "" {
		p := file.NewParser(c.fs,
			file.WithVTrimChars(`"'`),
			file.WithSkipEmptyValues(true),
		)
		m, err := p.GetMap(releasePath)
		if err != nil {
			slog.Warn("failed to read os release",
				slog.String("path", releasePath),
				slog.String("error", err.Error()))
		} else {
			info.OSRelease = m
		}
	}

	if bootloaderDir != "" {
		path := filepath.Join(bootloaderDir, fileBootEnv)
		if ok, _ := afero.Exists(c.fs, path); ok {
			m, err := file.NewParser(c.fs).GetMap(path)
			if err != nil {
				slog.Warn("failed to read boot environment",
					slog.String("path", path),
					slog.String("error", err.Error()))
			} else {
				info.BootEnv = m
			}
		}
	}

	return info
}
