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
	"regexp"
	"strings"
	"time"

	"github.com/NVIDIA/node-investigator/pkg/collector"
	"github.com/NVIDIA/node-investigator/pkg/defaults"
	"github.com/NVIDIA/node-investigator/pkg/host"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// ContainerName derives the remote container name from a host name.
func ContainerName(hostname string) string {
	return containerBase(hostname) + defaults.ContainerSuffix
}

// containerBase is the host part of the container name. It is empty for
// host names made only of separators.
func containerBase(hostname string) string {
	name := host.ShortName(hostname)
	name = strings.ReplaceAll(name, "_", "-")
	return strings.Trim(name, "-")
}

// SanitizeName maps a file name onto the characters allowed in object names.
func SanitizeName(name string) string {
	s := unsafeChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, ".-")
}

// DateStamp formats t as the UTC date used in dated object names.
func DateStamp(t time.Time) string {
	return t.UTC().Format(defaults.DateStampLayout)
}

// ObjectName returns the remote name of a staged artifact.
func ObjectName(a collector.Artifact, now time.Time) string {
	if a.Category.FileSet() {
		return string(a.Category) + "-" + SanitizeName(a.Name)
	}
	return a.Name + "-" + DateStamp(now)
}
