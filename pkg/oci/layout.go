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

package oci

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	ocilayout "oras.land/oras-go/v2/content/oci"

	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// Layout stores each container as an OCI image layout directory under root.
// It is used for offline runs where the results are carried off the host.
type Layout struct {
	root string
}

// NewLayout creates a Layout rooted at root, creating the directory if needed.
func NewLayout(root string) (*Layout, error) {
	if root == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "layout root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, "failed to create layout root", err)
	}
	return &Layout{root: root}, nil
}

// Root returns the layout root directory.
func (l *Layout) Root() string {
	return l.root
}

// ListContainers returns the names of directories under root holding an OCI layout.
func (l *Layout) ListContainers(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, "failed to read layout root", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.root, e.Name(), ociv1.ImageLayoutFile)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CreateContainer initializes the layout directory and pushes the container marker.
func (l *Layout) CreateContainer(ctx context.Context, name string) error {
	store, err := l.open(name)
	if err != nil {
		return err
	}
	if err := pushMarker(ctx, store); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, "failed to create container", err)
	}
	return nil
}

// ListObjects returns the tags in the container layout. A missing container has no objects.
func (l *Layout) ListObjects(ctx context.Context, container string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(l.root, container, ociv1.ImageLayoutFile)); os.IsNotExist(err) {
		return []string{}, nil
	}
	store, err := l.open(container)
	if err != nil {
		return nil, err
	}
	names, err := listObjects(ctx, store)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, "failed to list objects", err)
	}
	sort.Strings(names)
	return names, nil
}

// Upload pushes the file at path into the container layout as object name.
func (l *Layout) Upload(ctx context.Context, container, name, path string) error {
	store, err := l.open(container)
	if err != nil {
		return err
	}
	if _, err := pushFile(ctx, store, name, path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, "failed to upload object", err)
	}
	return nil
}

func (l *Layout) open(name string) (*ocilayout.Store, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "invalid container name",
			map[string]any{"container": name})
	}
	store, err := ocilayout.New(filepath.Join(l.root, name))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, "failed to open layout", err)
	}
	return store, nil
}
