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
	"fmt"
	"io"

	"github.com/NVIDIA/node-investigator/pkg/logscan"
)

const missingLogLabel = "<primary log not found>"

// ErrorReport stages the fatal-signature report for logPath. The report is
// written even when the log was not found, in which case it has no hits.
// A scan failure marks the artifact failed.
func (c *Collector) ErrorReport(logPath string, hits []logscan.Hit, scanErr error) Artifact {
	a := Artifact{
		Name:     string(CategoryErrorHits),
		Category: CategoryErrorHits,
		Source:   logPath,
		Encoding: EncodingRaw,
	}

	dst := c.Path(FileErrorHits)
	if scanErr != nil {
		return c.failed(a, dst, fmt.Errorf("failed to scan log: %w", scanErr))
	}

	label := logPath
	if label == "" {
		label = missingLogLabel
		a.Reason = "primary log not found, report is empty"
	}

	if err := c.writeFile(dst, func(w io.Writer) error {
		return logscan.WriteReport(w, label, hits)
	}); err != nil {
		return c.failed(a, dst, err)
	}

	a.Staged = dst
	a.Status = StatusCollected
	return a
}
