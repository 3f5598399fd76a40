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

package collector

import (
	"time"
)

// Category groups artifacts of the same kind.
type Category string

const (
	CategoryMessagesGzip Category = "messages-gzip"
	CategoryMessagesRaw  Category = "messages-raw"
	CategoryKernels      Category = "kernels"
	CategoryBootloader   Category = "grub"
	CategoryAgentLog     Category = "agent-log"
	CategoryErrorHits    Category = "error-hits"
	CategoryManifest     Category = "manifest"
)

// FileSet reports whether a category stages one artifact per source file
// rather than a single artifact.
func (c Category) FileSet() bool {
	return c == CategoryBootloader
}

// Encoding is the content encoding of a staged artifact.
type Encoding string

const (
	EncodingRaw  Encoding = "raw"
	EncodingGzip Encoding = "gzip"
)

// Status is the outcome of staging an artifact.
type Status string

const (
	StatusCollected Status = "collected"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Artifact is a named payload staged locally before upload.
type Artifact struct {
	// Name is the logical name. For file-set categories it is the source file name.
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Source   string   `json:"source,omitempty" yaml:"source,omitempty"`
	Staged   string   `json:"staged,omitempty" yaml:"staged,omitempty"`
	Encoding Encoding `json:"encoding" yaml:"encoding"`
	Status   Status   `json:"status" yaml:"status"`
	Reason   string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Collected reports whether the artifact has staged output.
func (a Artifact) Collected() bool {
	return a.Status == StatusCollected
}

// KernelEntry is a kernel image found in the boot directory.
type KernelEntry struct {
	Name    string    `json:"name" yaml:"name"`
	Release string    `json:"release,omitempty" yaml:"release,omitempty"`
	Created time.Time `json:"created" yaml:"created"`
}

// Staging file names relative to the staging directory.
const (
	FileMessagesArchive = "messages_archive.txt.gz"
	FileMessagesRaw     = "messages.txt"
	FileKernels         = "kernels.txt"
	DirBootloader       = "grub"
	FileAgentLog        = "agent/waagent.log"
	FileErrorHits       = "error_hits.txt"
	FileManifest        = "manifest.yaml"
)

const reasonNotFound = "source not found on any mount"
