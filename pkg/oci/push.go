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
	"fmt"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/memory"
)

const (
	// ArtifactType is the artifact type of uploaded objects.
	ArtifactType = "application/vnd.nvidia.investigator.object"
	// ContainerArtifactType is the artifact type of the container marker.
	ContainerArtifactType = "application/vnd.nvidia.investigator.container"
	// MediaTypeObject is the layer media type of uploaded files.
	MediaTypeObject = "application/octet-stream"
	// ContainerTag tags the container marker manifest.
	ContainerTag = "container"
)

// pushFile packs path as a single-layer artifact and copies it to dst under tag.
func pushFile(ctx context.Context, dst oras.Target, tag, path string) (ociv1.Descriptor, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}

	// Create a file store rooted next to the file we want to push
	fs, err := file.New(filepath.Dir(absPath))
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	layerDesc, err := fs.Add(ctx, filepath.Base(absPath), MediaTypeObject, absPath)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to add %s to store: %w", path, err)
	}

	packOpts := oras.PackManifestOptions{
		Layers: []ociv1.Descriptor{layerDesc},
		ManifestAnnotations: map[string]string{
			ociv1.AnnotationTitle: tag,
		},
	}
	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to pack manifest: %w", err)
	}

	// Tag the local manifest so we can copy by tag
	if err := fs.Tag(ctx, manifestDesc, tag); err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to tag manifest in local store: %w", err)
	}

	desc, err := oras.Copy(ctx, fs, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to push %s: %w", tag, err)
	}
	return desc, nil
}

// pushMarker pushes the empty container marker manifest to dst.
func pushMarker(ctx context.Context, dst oras.Target) error {
	src := memory.New()
	desc, err := oras.PackManifest(ctx, src, oras.PackManifestVersion1_1, ContainerArtifactType, oras.PackManifestOptions{})
	if err != nil {
		return fmt.Errorf("failed to pack container marker: %w", err)
	}
	if err := src.Tag(ctx, desc, ContainerTag); err != nil {
		return fmt.Errorf("failed to tag container marker: %w", err)
	}
	if _, err := oras.Copy(ctx, src, ContainerTag, dst, ContainerTag, oras.DefaultCopyOptions); err != nil {
		return fmt.Errorf("failed to push container marker: %w", err)
	}
	return nil
}

// tagLister is implemented by remote repositories and OCI layout stores.
type tagLister interface {
	Tags(ctx context.Context, last string, fn func(tags []string) error) error
}

// listObjects returns all tags except the container marker.
func listObjects(ctx context.Context, l tagLister) ([]string, error) {
	names := make([]string, 0)
	err := l.Tags(ctx, "", func(tags []string) error {
		for _, t := range tags {
			if t != ContainerTag {
				names = append(names, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
