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

package defaults

// Host locations.
const (
	// DeviceDir is the device namespace enumerated for candidate disks.
	DeviceDir = "/dev"

	// DevicePrefix is the base token of candidate device names (sdc1, sdc2, ...).
	DevicePrefix = "sdc"

	// MountRoot is the directory under which each device gets its mount point.
	MountRoot = "/mnt"

	// StagingDirName is the directory created under the temp root for staged artifacts.
	StagingDirName = "investigator"
)

// Remote naming.
const (
	// ContainerSuffix is appended to the normalized host name to form the container name.
	ContainerSuffix = "-files"

	// DateStampLayout is the UTC date stamp appended to dated object names.
	DateStampLayout = "20060102"
)

// Locality selectors and the registry endpoint suffixes they map to.
const (
	LocalityGlobal = "global"
	LocalityUSGov  = "usgov"
)

// EndpointSuffixes maps a locality selector to its registry endpoint suffix.
var EndpointSuffixes = map[string]string{
	LocalityGlobal: "azurecr.io",
	LocalityUSGov:  "azurecr.us",
}

// EndpointSuffix returns the endpoint suffix for locality, or "" when the
// selector is not recognized.
func EndpointSuffix(locality string) string {
	return EndpointSuffixes[locality]
}
