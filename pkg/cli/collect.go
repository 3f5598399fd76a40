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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-investigator/pkg/config"
	"github.com/NVIDIA/node-investigator/pkg/defaults"
	"github.com/NVIDIA/node-investigator/pkg/investigator"
	"github.com/NVIDIA/node-investigator/pkg/serializer"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Mount attached disks, stage diagnostics and publish them",
		Description: `Collect diagnostics from the secondary disks attached to this host:
  - system log, archived (gzip) and raw
  - kernel image inventory from the boot directory
  - bootloader configuration files
  - platform agent log
  - fatal-error signature report for the system log

Every candidate device is mounted under the mount root first. Artifacts are
staged locally and uploaded to a container named after this host; objects
that already exist in the container are not uploaded again.

The account and locality select the registry <account>.azurecr.io (global)
or <account>.azurecr.us (usgov). Use --store-dir to write into local OCI
layouts instead.

# Examples

  investigator collect --account diagstore --access-key "$KEY" --locality global --verbose

  INVESTIGATOR_ACCESS_KEY=... investigator collect --account diagstore --locality usgov

  investigator collect --store-dir /var/tmp/investigator-store`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "account",
				Usage:   "Remote store account name",
				Sources: cli.EnvVars("INVESTIGATOR_ACCOUNT"),
			},
			&cli.StringFlag{
				Name:    "access-key",
				Usage:   "Remote store access key",
				Sources: cli.EnvVars("INVESTIGATOR_ACCESS_KEY"),
			},
			&cli.StringFlag{
				Name:    "locality",
				Value:   defaults.LocalityGlobal,
				Usage:   fmt.Sprintf("Remote store locality (supported values: %s)", strings.Join(config.Localities(), ", ")),
				Sources: cli.EnvVars("INVESTIGATOR_LOCALITY"),
			},
			&cli.StringFlag{
				Name:  "registry-host",
				Usage: "Registry host overriding the one derived from account and locality",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the registry",
			},
			&cli.StringFlag{
				Name:  "store-dir",
				Usage: "Publish into OCI layouts under this directory instead of a registry",
			},
			deviceDirFlag,
			devicePrefixFlag,
			&cli.StringFlag{
				Name:  "mount-root",
				Value: defaults.MountRoot,
				Usage: "Directory under which devices are mounted",
			},
			&cli.StringFlag{
				Name:  "staging-dir",
				Usage: "Local staging directory (default: <tmp>/investigator)",
			},
			&cli.StringFlag{
				Name:  "mounter",
				Value: config.MounterExec,
				Usage: fmt.Sprintf("Mount implementation (%s, %s)", config.MounterExec, config.MounterSystemd),
			},
			&cli.Float64Flag{
				Name:  "upload-rate",
				Usage: "Maximum remote calls per second (0: unlimited)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write run metrics in Prometheus text format to this file",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CLICollectTimeout,
				Usage: "Timeout for the whole run",
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			slog.Debug("resolved configuration", slog.Any("config", cfg.Redacted()))

			inv, err := investigator.FromConfig(cfg, version)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			manifest, runErr := inv.Run(ctx)
			if manifest != nil {
				if err := serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(context.WithoutCancel(ctx), manifest); err != nil {
					slog.Warn("failed to print run manifest", slog.String("error", err.Error()))
				}
			}
			return runErr
		},
	}
}
