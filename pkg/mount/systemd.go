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

package mount

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/coreos/go-systemd/v22/unit"
	godbus "github.com/godbus/dbus/v5"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// SystemdMounter mounts devices by starting a transient mount unit, the same
// way systemd-mount does.
type SystemdMounter struct {
	*Table
}

// NewSystemdMounter creates a SystemdMounter. A nil table selects the OS mount table.
func NewSystemdMounter(table *Table) *SystemdMounter {
	if table == nil {
		table = NewTable(nil)
	}
	return &SystemdMounter{Table: table}
}

// UnitName returns the mount unit name systemd expects for target.
func UnitName(target string) string {
	return unit.UnitNamePathEscape(target) + ".mount"
}

// Mount starts <target>.mount with What=source and waits for the job to finish.
func (s *SystemdMounter) Mount(ctx context.Context, source, target string) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.MountTimeout)
	defer cancel()

	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}
	defer conn.Close()

	props := []dbus.Property{
		dbus.PropDescription(fmt.Sprintf("investigator mount of %s", source)),
		{Name: "What", Value: godbus.MakeVariant(source)},
		{Name: "Where", Value: godbus.MakeVariant(target)},
	}

	done := make(chan string, 1)
	name := UnitName(target)
	if _, err := conn.StartTransientUnitContext(ctx, name, "replace", props, done); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInternal, "failed to start mount unit", err,
			map[string]any{"unit": name})
	}

	select {
	case result := <-done:
		if result != "done" {
			return apperrors.NewWithContext(apperrors.ErrCodeInternal, "mount unit did not start",
				map[string]any{"unit": name, "result": result})
		}
		return nil
	case <-ctx.Done():
		return apperrors.Wrap(apperrors.ErrCodeTimeout, "timed out waiting for mount unit", ctx.Err())
	}
}
