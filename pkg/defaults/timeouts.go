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

import "time"

// Mount timeouts for the external mount service.
const (
	// MountTimeout bounds a single mount invocation.
	MountTimeout = 30 * time.Second

	// MountTableTimeout bounds reading the mount table.
	MountTableTimeout = 5 * time.Second
)

// Remote store timeouts.
const (
	// StoreListTimeout is the timeout for listing containers or objects.
	StoreListTimeout = 30 * time.Second

	// StoreCreateTimeout is the timeout for creating a container.
	StoreCreateTimeout = 30 * time.Second

	// StoreUploadTimeout is the timeout for uploading a single object.
	// Larger than list timeouts since log archives can be sizeable.
	StoreUploadTimeout = 10 * time.Minute
)

// HTTP client timeouts for outbound registry requests.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 30 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLICollectTimeout is the default timeout for a whole collect run.
	CLICollectTimeout = 30 * time.Minute
)
