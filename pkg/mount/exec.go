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
	"strings"

	"k8s.io/utils/exec"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// ExecMounter mounts devices with the mount(8) binary, letting it detect the
// filesystem type.
type ExecMounter struct {
	*Table
	exec exec.Interface
}

// NewExecMounter creates an ExecMounter. Nil arguments select the OS mount
// table and the real process runner.
func NewExecMounter(table *Table, runner exec.Interface) *ExecMounter {
	if table == nil {
		table = NewTable(nil)
	}
	if runner == nil {
		runner = exec.New()
	}
	return &ExecMounter{Table: table, exec: runner}
}

// Mount runs `mount <source> <target>`.
func (e *ExecMounter) Mount(ctx context.Context, source, target string) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.MountTimeout)
	defer cancel()

	out, err := e.exec.CommandContext(ctx, "mount", source, target).CombinedOutput()
	if err != nil {
		code := apperrors.ErrCodeInternal
		if ctx.Err() != nil {
			code = apperrors.ErrCodeTimeout
		}
		return apperrors.WrapWithContext(code, "mount failed", err, map[string]any{
			"source": source,
			"target": target,
			"output": strings.TrimSpace(string(out)),
		})
	}
	return nil
}
