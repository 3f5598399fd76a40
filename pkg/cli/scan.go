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

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-investigator/pkg/header"
	"github.com/NVIDIA/node-investigator/pkg/logscan"
	"github.com/NVIDIA/node-investigator/pkg/serializer"
)

// reportFormat prints the plain error-hit report, as staged by collect.
const reportFormat = "report"

// HitReport is the structured output of the scan command.
type HitReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Path string        `json:"path" yaml:"path"`
	Hits []logscan.Hit `json:"hits" yaml:"hits"`
}

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan a local log file for fatal-error signatures",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   reportFormat,
				Usage:   "output format (report, json, yaml, table)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("FILE argument is required")
			}
			return scanFile(ctx, cmd, afero.NewOsFs(), path)
		},
	}
}

func scanFile(ctx context.Context, cmd *cli.Command, fs afero.Fs, path string) error {
	format := cmd.String("format")
	if format != reportFormat && serializer.Format(format).IsUnknown() {
		return fmt.Errorf("unknown output format: %q", format)
	}

	hits, err := logscan.NewScanner(fs).Scan(path)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	if format == reportFormat {
		return logscan.WriteReport(w, path, hits)
	}

	out := HitReport{Path: path, Hits: hits}
	out.Init(header.KindHitReport, clock.RealClock{}, version)
	return serializer.NewWriter(serializer.Format(format), w).Serialize(ctx, out)
}
