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

package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/node-investigator/pkg/collector"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
	"github.com/NVIDIA/node-investigator/pkg/host"
)

type upload struct {
	container, name, path string
}

type fakeStore struct {
	mu         sync.Mutex
	containers map[string][]string
	created    []string
	uploads    []upload
	listErr    error
	uploadErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{containers: make(map[string][]string)}
}

func (f *fakeStore) ListContainers(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.containers))
	for n := range f.containers {
		names = append(names, n)
	}
	return names, nil
}

func (f *fakeStore) CreateContainer(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
	f.containers[name] = nil
	return nil
}

func (f *fakeStore) ListObjects(_ context.Context, container string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.containers[container]...), nil
}

func (f *fakeStore) Upload(_ context.Context, container, name, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, upload{container, name, path})
	f.containers[container] = append(f.containers[container], name)
	return nil
}

var day = time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)

func testArtifacts() []collector.Artifact {
	return []collector.Artifact{
		{Name: "messages-gzip", Category: collector.CategoryMessagesGzip, Staged: "/tmp/i/messages_archive.txt.gz", Status: collector.StatusCollected},
		{Name: "messages-raw", Category: collector.CategoryMessagesRaw, Staged: "/tmp/i/messages.txt", Status: collector.StatusCollected},
		{Name: "kernels", Category: collector.CategoryKernels, Staged: "/tmp/i/kernels.txt", Status: collector.StatusCollected},
		{Name: "grub.cfg", Category: collector.CategoryBootloader, Staged: "/tmp/i/grub/grub.cfg", Status: collector.StatusCollected},
		{Name: "grubenv", Category: collector.CategoryBootloader, Staged: "/tmp/i/grub/grubenv", Status: collector.StatusCollected},
		{Name: "agent-log", Category: collector.CategoryAgentLog, Status: collector.StatusSkipped},
		{Name: "error-hits", Category: collector.CategoryErrorHits, Staged: "/tmp/i/error_hits.txt", Status: collector.StatusCollected},
	}
}

func newPublisher(store Store) *Publisher {
	return New(store, host.Static("Rescue_VM.internal"), WithClock(testingclock.NewFakePassiveClock(day)))
}

func TestContainerName(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"Rescue_VM", "rescue-vm-files"},
		{"rescue-vm.contoso.local", "rescue-vm-files"},
		{"VM01", "vm01-files"},
		{"_odd_", "odd-files"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainerName(tt.host))
			assert.Equal(t, ContainerName(tt.host), ContainerName(tt.host), "deterministic")
		})
	}
}

func TestContainerName_StableAcrossDays(t *testing.T) {
	store := newFakeStore()
	for _, d := range []time.Time{day, day.Add(time.Hour), day.AddDate(0, 0, 7)} {
		p := New(store, host.Static("vm1"), WithClock(testingclock.NewFakePassiveClock(d)))
		name, err := p.Container(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "vm1-files", name)
	}
}

func TestManifest(t *testing.T) {
	objs := newPublisher(newFakeStore()).Manifest(testArtifacts())

	names := make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{
		"messages-gzip-20240101",
		"messages-raw-20240101",
		"kernels-20240101",
		"grub-grub.cfg",
		"grub-grubenv",
		"error-hits-20240101",
	}, names)
}

func TestContainer_RejectsSeparatorOnlyHostnames(t *testing.T) {
	for _, name := range []string{"_", "-", ".", "_-_.local"} {
		t.Run(name, func(t *testing.T) {
			_, err := New(newFakeStore(), host.Static(name)).Container(context.Background())
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))
		})
	}
}

func TestManifest_DisambiguatesCollidingNames(t *testing.T) {
	arts := []collector.Artifact{
		{Name: "grub.cfg", Category: collector.CategoryBootloader, Source: "/mnt/sdc1/boot/grub2/grub.cfg", Staged: "/tmp/i/grub/grub.cfg", Status: collector.StatusCollected},
		{Name: "grub.cfg~", Category: collector.CategoryBootloader, Source: "/mnt/sdc1/boot/grub2/grub.cfg~", Staged: "/tmp/i/grub/grub.cfg~", Status: collector.StatusCollected},
		{Name: "GRUB.cfg", Category: collector.CategoryBootloader, Source: "/mnt/sdc1/boot/grub2/GRUB.cfg", Staged: "/tmp/i/grub/GRUB.cfg", Status: collector.StatusCollected},
	}

	objs := newPublisher(newFakeStore()).Manifest(arts)
	require.Len(t, objs, 3)
	assert.Equal(t, "grub-grub.cfg", objs[0].Name)
	assert.Equal(t, "grub-grub.cfg-2", objs[1].Name)
	assert.Equal(t, "grub-grub.cfg-3", objs[2].Name)
	assert.Equal(t, "/tmp/i/grub/grub.cfg~", objs[1].Path)
}

func TestPublish_CollidingNamesAreAllUploaded(t *testing.T) {
	store := newFakeStore()
	arts := []collector.Artifact{
		{Name: "grub.cfg", Category: collector.CategoryBootloader, Staged: "/tmp/i/grub/grub.cfg", Status: collector.StatusCollected},
		{Name: "grub.cfg~", Category: collector.CategoryBootloader, Staged: "/tmp/i/grub/grub.cfg~", Status: collector.StatusCollected},
	}

	res, err := newPublisher(store).Publish(context.Background(), arts)
	require.NoError(t, err)
	assert.Equal(t, []string{"grub-grub.cfg", "grub-grub.cfg-2"}, res.Uploaded)
	assert.Empty(t, res.Existing)
	require.Len(t, store.uploads, 2)
	assert.Equal(t, "/tmp/i/grub/grub.cfg~", store.uploads[1].path)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "grub.cfg", SanitizeName("grub.cfg"))
	assert.Equal(t, "grub-custom.cfg", SanitizeName("GRUB Custom.cfg"))
	assert.Equal(t, "grubenv", SanitizeName(".grubenv~"))
}

func TestPublish_CreatesContainerAndUploads(t *testing.T) {
	store := newFakeStore()
	res, err := newPublisher(store).Publish(context.Background(), testArtifacts())
	require.NoError(t, err)

	assert.Equal(t, "rescue-vm-files", res.Container)
	assert.True(t, res.Created)
	assert.Equal(t, []string{"rescue-vm-files"}, store.created)
	assert.Len(t, res.Uploaded, 6)
	assert.Empty(t, res.Existing)
	assert.Equal(t, upload{"rescue-vm-files", "messages-gzip-20240101", "/tmp/i/messages_archive.txt.gz"}, store.uploads[0])
}

func TestPublish_SkipsExistingObjects(t *testing.T) {
	store := newFakeStore()
	store.containers["rescue-vm-files"] = []string{"messages-gzip-20240101"}

	res, err := newPublisher(store).Publish(context.Background(), testArtifacts())
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Empty(t, store.created)
	assert.Equal(t, []string{"messages-gzip-20240101"}, res.Existing)
	for _, u := range store.uploads {
		assert.NotEqual(t, "messages-gzip-20240101", u.name, "existing object must not be uploaded again")
	}
	assert.Len(t, store.uploads, 5)
}

func TestPublish_SecondRunSameDayUploadsNothing(t *testing.T) {
	store := newFakeStore()
	p := newPublisher(store)

	_, err := p.Publish(context.Background(), testArtifacts())
	require.NoError(t, err)
	first := len(store.uploads)

	res, err := p.Publish(context.Background(), testArtifacts())
	require.NoError(t, err)
	assert.Len(t, store.uploads, first)
	assert.Empty(t, res.Uploaded)
	assert.Len(t, res.Existing, 6)
}

func TestPublish_StoreErrorsAreFatal(t *testing.T) {
	store := newFakeStore()
	store.listErr = apperrors.New(apperrors.ErrCodeUnauthorized, "bad key")

	_, err := newPublisher(store).Publish(context.Background(), testArtifacts())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))

	store = newFakeStore()
	store.uploadErr = errors.New("connection reset")
	res, err := newPublisher(store).Publish(context.Background(), testArtifacts())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
	assert.Empty(t, res.Uploaded)
}

func TestPublish_IdentityFailure(t *testing.T) {
	_, err := New(newFakeStore(), host.Static("")).Publish(context.Background(), nil)
	assert.Error(t, err)
}
