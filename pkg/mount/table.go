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

package mount

import (
	"context"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// PartitionsFunc returns the current mount table.
type PartitionsFunc func(ctx context.Context) ([]disk.PartitionStat, error)

// Table answers mount point queries from the OS mount table.
type Table struct {
	partitions PartitionsFunc
}

// NewTable creates a Table. A nil fn reads all partitions through gopsutil.
func NewTable(fn PartitionsFunc) *Table {
	if fn == nil {
		fn = func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, true)
		}
	}
	return &Table{partitions: fn}
}

// IsMountPoint reports whether path appears as a mount point in the table.
func (t *Table) IsMountPoint(ctx context.Context, path string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.MountTableTimeout)
	defer cancel()

	parts, err := t.partitions(ctx)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to read mount table", err)
	}

	want := filepath.Clean(path)
	for _, p := range parts {
		if filepath.Clean(p.Mountpoint) == want {
			return true, nil
		}
	}
	return false, nil
}
