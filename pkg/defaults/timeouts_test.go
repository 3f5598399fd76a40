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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Mount timeouts
		{"MountTimeout", MountTimeout, 5 * time.Second, 2 * time.Minute},
		{"MountTableTimeout", MountTableTimeout, 1 * time.Second, 30 * time.Second},

		// Remote store timeouts
		{"StoreListTimeout", StoreListTimeout, 5 * time.Second, 2 * time.Minute},
		{"StoreCreateTimeout", StoreCreateTimeout, 5 * time.Second, 2 * time.Minute},
		{"StoreUploadTimeout", StoreUploadTimeout, 1 * time.Minute, 30 * time.Minute},

		// HTTP client timeouts
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPTLSHandshakeTimeout", HTTPTLSHandshakeTimeout, 1 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestStoreTimeoutRelationships(t *testing.T) {
	// Uploads move whole archives and should outlast listing calls
	if StoreUploadTimeout <= StoreListTimeout {
		t.Errorf("StoreUploadTimeout (%v) should exceed StoreListTimeout (%v)",
			StoreUploadTimeout, StoreListTimeout)
	}
}

func TestCollectTimeoutCoversUpload(t *testing.T) {
	if CLICollectTimeout < StoreUploadTimeout {
		t.Errorf("CLICollectTimeout (%v) should not be shorter than StoreUploadTimeout (%v)",
			CLICollectTimeout, StoreUploadTimeout)
	}
}

func TestEndpointSuffix(t *testing.T) {
	tests := []struct {
		locality string
		want     string
	}{
		{LocalityGlobal, "azurecr.io"},
		{LocalityUSGov, "azurecr.us"},
		{"china", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.locality, func(t *testing.T) {
			if got := EndpointSuffix(tt.locality); got != tt.want {
				t.Errorf("EndpointSuffix(%q) = %q, want %q", tt.locality, got, tt.want)
			}
		})
	}
}
