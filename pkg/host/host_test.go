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

package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RESCUE-VM", "rescue-vm"},
		{"rescue_vm.contoso.local", "rescue_vm"},
		{" vm1 ", "vm1"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortName(tt.in))
		})
	}
}

func TestStatic(t *testing.T) {
	name, err := Static("vm1").Hostname(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vm1", name)

	_, err = Static("").Hostname(context.Background())
	assert.Error(t, err)
}

func TestSystem_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	name, err := System{}.Hostname(context.Background())
	if err != nil {
		t.Skipf("host info not available: %v", err)
	}
	assert.NotEmpty(t, name)
}
