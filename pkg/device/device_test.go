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
	"regexp"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

func newDevFs(t require.TestingT, names ...string) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dev", 0o755))
	for _, n := range names {
		require.NoError(t, afero.WriteFile(fs, "/dev/"+n, nil, 0o600))
	}
	return fs
}

func TestScanner_Scan(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []string
	}{
		{
			name:    "filters and sorts",
			entries: []string{"sdc2", "sda", "sdc1", "sdc", "null", "sdc10", "sdb1"},
			want:    []string{"sdc1", "sdc10", "sdc2"},
		},
		{
			name:    "no matches",
			entries: []string{"sda", "sda1", "tty0"},
			want:    []string{},
		},
		{
			name:    "rejects trailing garbage",
			entries: []string{"sdc1p", "xsdc1", "sdc3"},
			want:    []string{"sdc3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScanner(WithFs(newDevFs(t, tt.entries...)))
			require.NoError(t, err)

			devices, err := s.Scan(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, IDs(devices))
			for _, d := range devices {
				assert.Equal(t, "/dev/"+d.ID, d.Path)
			}
		})
	}
}

func TestScanner_CustomPrefix(t *testing.T) {
	s, err := NewScanner(WithFs(newDevFs(t, "sdc1", "sdd1", "sdd2")), WithPrefix("sdd"))
	require.NoError(t, err)

	devices, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"sdd1", "sdd2"}, IDs(devices))
}

func TestNewScanner_InvalidPrefix(t *testing.T) {
	for _, p := range []string{"", "sd", "sdcc", "SDC", "sd1"} {
		_, err := NewScanner(WithPrefix(p))
		require.Error(t, err, "prefix %q", p)
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
	}
}

func TestScanner_UnreadableNamespace(t *testing.T) {
	s, err := NewScanner(WithFs(afero.NewMemMapFs()), WithDir("/missing"))
	require.NoError(t, err)

	_, err = s.Scan(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))
}

func TestScanner_ContextCanceled(t *testing.T) {
	s, err := NewScanner(WithFs(newDevFs(t, "sdc1")))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanner_Properties(t *testing.T) {
	valid := regexp.MustCompile(`^sdc\d+$`)

	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOf(rapid.StringMatching(`(sd[a-d]|nvm|tty)[0-9]{0,3}`)).Draw(rt, "names")

		s, err := NewScanner(WithFs(newDevFs(rt, names...)))
		if err != nil {
			rt.Fatalf("NewScanner: %v", err)
		}

		first, err := s.Scan(context.Background())
		if err != nil {
			rt.Fatalf("Scan: %v", err)
		}
		second, err := s.Scan(context.Background())
		if err != nil {
			rt.Fatalf("Scan: %v", err)
		}

		ids := IDs(first)
		if !sort.StringsAreSorted(ids) {
			rt.Fatalf("not sorted: %v", ids)
		}
		for _, id := range ids {
			if !valid.MatchString(id) {
				rt.Fatalf("unexpected device %q", id)
			}
		}
		if len(first) != len(second) {
			rt.Fatalf("scan not idempotent: %v vs %v", ids, IDs(second))
		}
		for i := range first {
			if first[i] != second[i] {
				rt.Fatalf("scan not idempotent at %d: %v vs %v", i, first[i], second[i])
			}
		}
	})
}
