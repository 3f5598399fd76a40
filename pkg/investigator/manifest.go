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

package investigator

import (
	"github.com/NVIDIA/node-investigator/pkg/collector"
	"github.com/NVIDIA/node-investigator/pkg/header"
	"github.com/NVIDIA/node-investigator/pkg/locator"
	"github.com/NVIDIA/node-investigator/pkg/mount"
	"github.com/NVIDIA/node-investigator/pkg/publisher"
)

// Metadata keys added to the manifest header.
const (
	MetadataRunID = "run-id"
	MetadataHost  = "host"
)

// Manifest records what a run found, staged and published.
type Manifest struct {
	header.Header `json:",inline" yaml:",inline"`

	Devices   []string                `json:"devices" yaml:"devices"`
	Mounts    []mount.MountPoint      `json:"mounts" yaml:"mounts"`
	Locations locator.Locations       `json:"locations" yaml:"locations"`
	System    collector.SystemInfo    `json:"system" yaml:"system"`
	Kernels   []collector.KernelEntry `json:"kernels,omitempty" yaml:"kernels,omitempty"`
	Artifacts []collector.Artifact    `json:"artifacts" yaml:"artifacts"`
	// Skipped lists categories that produced nothing on this run.
	Skipped []collector.Category `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Hits    int                  `json:"hits" yaml:"hits"`
	// Publish is filled in after publishing and only appears in the local copy.
	Publish *publisher.Result `json:"publish,omitempty" yaml:"publish,omitempty"`
}

// NewManifest creates an empty manifest with initialized collections.
func NewManifest() *Manifest {
	return &Manifest{
		Header:    *header.New(),
		Devices:   make([]string, 0),
		Mounts:    make([]mount.MountPoint, 0),
		Locations: make(locator.Locations),
		Artifacts: make([]collector.Artifact, 0),
	}
}

// skippedCategories returns, in first-seen order, the categories for which
// no artifact was collected.
func skippedCategories(artifacts []collector.Artifact) []collector.Category {
	collected := make(map[collector.Category]bool)
	order := make([]collector.Category, 0)
	for _, a := range artifacts {
		if _, seen := collected[a.Category]; !seen {
			order = append(order, a.Category)
			collected[a.Category] = false
		}
		if a.Collected() {
			collected[a.Category] = true
		}
	}

	res := make([]collector.Category, 0)
	for _, c := range order {
		if !collected[c] {
			res = append(res, c)
		}
	}
	return res
}
