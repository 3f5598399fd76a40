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
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

func staticTable(parts ...disk.PartitionStat) *Table {
	return NewTable(func(context.Context) ([]disk.PartitionStat, error) {
		return parts, nil
	})
}

func TestTable_IsMountPoint(t *testing.T) {
	table := staticTable(
		disk.PartitionStat{Device: "/dev/sda1", Mountpoint: "/"},
		disk.PartitionStat{Device: "/dev/sdc1", Mountpoint: "/mnt/sdc1"},
	)

	tests := []struct {
		path string
		want bool
	}{
		{"/mnt/sdc1", true},
		{"/mnt/sdc1/", true},
		{"/mnt/sdc2", false},
		{"/mnt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := table.IsMountPoint(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_ReadError(t *testing.T) {
	table := NewTable(func(context.Context) ([]disk.PartitionStat, error) {
		return nil, errors.New("permission denied")
	})

	_, err := table.IsMountPoint(context.Background(), "/mnt/sdc1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "mnt-sdc1.mount", UnitName("/mnt/sdc1"))
}
