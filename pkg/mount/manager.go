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
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	"github.com/NVIDIA/node-investigator/pkg/device"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// Mounter is the external mount service.
type Mounter interface {
	// IsMountPoint reports whether path is currently a mount point.
	IsMountPoint(ctx context.Context, path string) (bool, error)
	// Mount mounts the raw device at source onto target.
	Mount(ctx context.Context, source, target string) error
}

// Action describes what the manager did for a device.
type Action string

const (
	ActionMounted        Action = "mounted"
	ActionAlreadyMounted Action = "already-mounted"
	ActionFailed         Action = "failed"
)

// MountPoint is the mount location of a single device.
type MountPoint struct {
	Device  device.Device `json:"device" yaml:"device"`
	Path    string        `json:"path" yaml:"path"`
	Mounted bool          `json:"mounted" yaml:"mounted"`
	Action  Action        `json:"action" yaml:"action"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the error of a failed mount attempt, if any.
func (mp MountPoint) Err() error {
	return mp.err
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem used to create mount point directories.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithRoot sets the mount root. Default is /mnt.
func WithRoot(root string) Option {
	return func(m *Manager) {
		m.root = root
	}
}

// Manager mounts devices idempotently.
type Manager struct {
	fs      afero.Fs
	root    string
	mounter Mounter
	group   singleflight.Group
}

// NewManager creates a manager that uses mounter for mount operations.
func NewManager(mounter Mounter, opts ...Option) *Manager {
	m := &Manager{
		fs:      afero.NewOsFs(),
		root:    defaults.MountRoot,
		mounter: mounter,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PathFor returns the deterministic mount point of d.
func (m *Manager) PathFor(d device.Device) string {
	return filepath.Join(m.root, d.ID)
}

// EnsureAll ensures every device is mounted, in order.
func (m *Manager) EnsureAll(ctx context.Context, devices []device.Device) []MountPoint {
	res := make([]MountPoint, 0, len(devices))
	for _, d := range devices {
		res = append(res, m.Ensure(ctx, d))
	}
	return res
}

// Ensure mounts d at its mount point unless it is already mounted.
func (m *Manager) Ensure(ctx context.Context, d device.Device) MountPoint {
	v, _, _ := m.group.Do(d.ID, func() (any, error) {
		return m.ensure(ctx, d), nil
	})
	return v.(MountPoint)
}

func (m *Manager) ensure(ctx context.Context, d device.Device) MountPoint {
	mp := MountPoint{
		Device: d,
		Path:   m.PathFor(d),
	}

	exists, err := afero.DirExists(m.fs, mp.Path)
	if err != nil {
		return m.fail(mp, apperrors.Wrap(apperrors.ErrCodeIO, "failed to stat mount point", err))
	}
	if !exists {
		if err := m.fs.MkdirAll(mp.Path, 0o755); err != nil {
			return m.fail(mp, apperrors.WrapWithContext(apperrors.ErrCodeIO,
				"failed to create mount point", err,
				map[string]any{"device": d.ID, "path": mp.Path}))
		}
	}

	mounted, err := m.mounter.IsMountPoint(ctx, mp.Path)
	if err != nil {
		return m.fail(mp, err)
	}
	if mounted {
		slog.Info("device is already mounted",
			slog.String("device", d.ID),
			slog.String("path", mp.Path))
		mp.Mounted = true
		mp.Action = ActionAlreadyMounted
		return mp
	}

	slog.Info("mounting device",
		slog.String("device", d.ID),
		slog.String("source", d.Path),
		slog.String("path", mp.Path))

	if err := m.mounter.Mount(ctx, d.Path, mp.Path); err != nil {
		return m.fail(mp, err)
	}

	mp.Mounted = true
	mp.Action = ActionMounted
	return mp
}

func (m *Manager) fail(mp MountPoint, err error) MountPoint {
	slog.Warn("device will not yield artifacts",
		slog.String("device", mp.Device.ID),
		slog.String("path", mp.Path),
		apperrors.Attr(err))
	mp.Mounted = false
	mp.Action = ActionFailed
	mp.Error = err.Error()
	mp.err = err
	return mp
}
