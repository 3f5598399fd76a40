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

// Package host provides the identity of the machine the investigator runs on.
package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Identity provides the host's network name.
type Identity interface {
	Hostname(ctx context.Context) (string, error)
}

// System reads the hostname from the OS.
type System struct{}

// Hostname implements Identity.
func (System) Hostname(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read host info: %w", err)
	}
	if info.Hostname == "" {
		return "", fmt.Errorf("host reported an empty hostname")
	}
	return info.Hostname, nil
}

// Static is an Identity with a fixed name.
type Static string

// Hostname implements Identity.
func (s Static) Hostname(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("hostname is empty")
	}
	return string(s), nil
}

// ShortName lower-cases name and strips any domain part.
func ShortName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}
