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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// ValidateRegistryReference checks that registry and repository form a valid
// image reference.
func ValidateRegistryReference(registry, repository string) error {
	if registry == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "registry host is required")
	}
	if repository == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "repository is required")
	}

	ref := fmt.Sprintf("%s/%s", stripProtocol(registry), repository)
	named, err := reference.ParseNormalizedNamed(ref)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid reference %q", ref), err)
	}
	if reference.Domain(named) != stripProtocol(registry) {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "registry host is not a valid domain",
			map[string]any{"registry": registry})
	}
	return nil
}

// stripProtocol removes http:// or https:// prefix from a registry URL.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return registry
}
