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
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-investigator/pkg/device"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// fakeMounter tracks mount calls and reports mounted paths back.
type fakeMounter struct {
	mu      sync.Mutex
	mounted map[string]bool
	calls   []string
	failOn  map[string]error
	block   chan struct{}
}

func newFakeMounter() *fakeMounter {
	return &fakeMounter{
		mounted: make(map[string]bool),
		failOn:  make(map[string]error),
	}
}

func (f *fakeMounter) IsMountPoint(_ context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted[path], nil
}

func (f *fakeMounter) Mount(_ context.Context, source, target string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, source)
	if err := f.failOn[source]; err != nil {
		return err
	}
	f.mounted[target] = true
	return nil
}

func (f *fakeMounter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var testDevices = []device.Device{
	{ID: "sdc1", Path: "/dev/sdc1"},
	{ID: "sdc2", Path: "/dev/sdc2"},
}

func TestManager_EnsureAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	fm := newFakeMounter()
	m := NewManager(fm, WithFs(fs))

	mps := m.EnsureAll(context.Background(), testDevices)
	require.Len(t, mps, 2)

	for i, mp := range mps {
		assert.Equal(t, testDevices[i], mp.Device)
		assert.Equal(t, "/mnt/"+testDevices[i].ID, mp.Path)
		assert.True(t, mp.Mounted)
		assert.Equal(t, ActionMounted, mp.Action)
		assert.NoError(t, mp.Err())

		exists, err := afero.DirExists(fs, mp.Path)
		require.NoError(t, err)
		assert.True(t, exists, "mount point directory should be created")
	}
	assert.Equal(t, []string{"/dev/sdc1", "/dev/sdc2"}, fm.calls)
}

func TestManager_Idempotent(t *testing.T) {
	fm := newFakeMounter()
	m := NewManager(fm, WithFs(afero.NewMemMapFs()))

	m.EnsureAll(context.Background(), testDevices)
	second := m.EnsureAll(context.Background(), testDevices)

	assert.Equal(t, 2, fm.callCount(), "second pass must not mount again")
	for _, mp := range second {
		assert.True(t, mp.Mounted)
		assert.Equal(t, ActionAlreadyMounted, mp.Action)
	}
}

func TestManager_AlreadyMountedSkipsMount(t *testing.T) {
	fm := newFakeMounter()
	fm.mounted["/mnt/sdc1"] = true
	m := NewManager(fm, WithFs(afero.NewMemMapFs()))

	mp := m.Ensure(context.Background(), testDevices[0])

	assert.Equal(t, 0, fm.callCount())
	assert.Equal(t, ActionAlreadyMounted, mp.Action)
}

func TestManager_MountFailureIsNotFatal(t *testing.T) {
	fm := newFakeMounter()
	fm.failOn["/dev/sdc1"] = errors.New("wrong fs type")
	m := NewManager(fm, WithFs(afero.NewMemMapFs()))

	mps := m.EnsureAll(context.Background(), testDevices)
	require.Len(t, mps, 2)

	assert.False(t, mps[0].Mounted)
	assert.Equal(t, ActionFailed, mps[0].Action)
	assert.Contains(t, mps[0].Error, "wrong fs type")
	assert.Error(t, mps[0].Err())

	assert.True(t, mps[1].Mounted, "later devices are still processed")
}

func TestManager_MkdirDenied(t *testing.T) {
	fm := newFakeMounter()
	m := NewManager(fm, WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))

	mp := m.Ensure(context.Background(), testDevices[0])

	assert.Equal(t, ActionFailed, mp.Action)
	assert.Equal(t, apperrors.ErrCodeIO, apperrors.CodeOf(mp.Err()))
	assert.Equal(t, 0, fm.callCount(), "mount must not be attempted without a mount point")
}

func TestManager_ConcurrentEnsureMountsOnce(t *testing.T) {
	fm := newFakeMounter()
	fm.block = make(chan struct{})
	m := NewManager(fm, WithFs(afero.NewMemMapFs()))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mp := m.Ensure(context.Background(), testDevices[0])
			assert.True(t, mp.Mounted)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(fm.block)
	wg.Wait()

	assert.Equal(t, 1, fm.callCount())
}

func TestManager_CustomRoot(t *testing.T) {
	m := NewManager(newFakeMounter(), WithRoot("/srv/rescue"))
	assert.Equal(t, "/srv/rescue/sdc2", m.PathFor(testDevices[1]))
}
