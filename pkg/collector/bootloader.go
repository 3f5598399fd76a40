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
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

// bootloaderPattern selects bootloader configuration files (grub.cfg, grubenv, ...).
var bootloaderPattern = regexp.MustCompile(`^grub.*`)

// BootloaderConfigs copies every matching file from dir into the bootloader
// staging directory. It returns one artifact per file, or a single skipped
// artifact when there is nothing to copy.
func (c *Collector) BootloaderConfigs(dir string) []Artifact {
	base := Artifact{
		Name:     string(CategoryBootloader),
		Category: CategoryBootloader,
		Source:   dir,
		Encoding: EncodingRaw,
	}
	if dir == "" {
		return []Artifact{skip(base, reasonNotFound)}
	}

	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return []Artifact{c.failed(base, "", fmt.Errorf("failed to read %s: %w", dir, err))}
	}

	res := make([]Artifact, 0)
	for _, fi := range infos {
		if fi.IsDir() || !bootloaderPattern.MatchString(fi.Name()) {
			continue
		}
		a := Artifact{
			Name:     fi.Name(),
			Category: CategoryBootloader,
			Source:   filepath.Join(dir, fi.Name()),
			Encoding: EncodingRaw,
		}
		res = append(res, c.stage(a, c.Path(filepath.Join(DirBootloader, fi.Name())), copyStream))
	}

	if len(res) == 0 {
		return []Artifact{skip(base, "no bootloader configuration files in "+dir)}
	}
	return res
}
