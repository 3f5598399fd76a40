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

package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ImagePrefix is the file name prefix of kernel images in /boot.
const ImagePrefix = "vmlinuz-"

// Error types for release parsing failures
var (
	ErrEmptyRelease      = errors.New("release string is empty")
	ErrNotImage          = errors.New("name is not a kernel image")
	ErrTooManyComponents = errors.New("release has more than 3 numeric components")
	ErrNonNumeric        = errors.New("release component is not numeric")
)

// Release is a kernel release with Major, Minor and Patch components.
type Release struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`

	// Precision is the number of numeric components present (1, 2 or 3).
	Precision int `json:"-" yaml:"-"`

	// Extras holds everything after the numeric part, e.g. "-1051-azure".
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// String returns the release including Extras.
func (r Release) String() string {
	var base string
	switch r.Precision {
	case 1:
		base = strconv.Itoa(r.Major)
	case 2:
		base = fmt.Sprintf("%d.%d", r.Major, r.Minor)
	default:
		base = fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
	}
	return base + r.Extras
}

// ParseRelease parses strings like "5.15.0-1051-azure", "4.18.0-425.3.1.el8.x86_64"
// or "6.1". The numeric part ends at the first '-' or '+' that follows a digit.
func ParseRelease(s string) (Release, error) {
	if s == "" {
		return Release{}, ErrEmptyRelease
	}

	var r Release
	main := s
	for i := 1; i < len(s); i++ {
		if (s[i] == '-' || s[i] == '+') && s[i-1] >= '0' && s[i-1] <= '9' {
			main = s[:i]
			r.Extras = s[i:]
			break
		}
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Release{}, ErrTooManyComponents
	}
	for i, part := range parts {
		if part == "" {
			return Release{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || part[0] == '+' || part[0] == '-' {
			return Release{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			r.Major = n
		case 1:
			r.Minor = n
		case 2:
			r.Patch = n
		}
	}
	r.Precision = len(parts)
	return r, nil
}

// ParseImageName parses the release out of a kernel image file name.
func ParseImageName(name string) (Release, error) {
	rest, ok := strings.CutPrefix(name, ImagePrefix)
	if !ok {
		return Release{}, fmt.Errorf("%w: %q", ErrNotImage, name)
	}
	return ParseRelease(rest)
}

// Compare returns -1, 0 or 1 as r is older than, equal to, or newer than other.
// Extras are compared lexically when the numeric parts are equal.
func (r Release) Compare(other Release) int {
	for _, d := range [...]int{r.Major - other.Major, r.Minor - other.Minor, r.Patch - other.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return strings.Compare(r.Extras, other.Extras)
}
