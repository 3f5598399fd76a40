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
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-investigator/pkg/config"
	"github.com/NVIDIA/node-investigator/pkg/defaults"
	"github.com/NVIDIA/node-investigator/pkg/serializer"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a YAML or JSON config file",
		Sources: cli.EnvVars("INVESTIGATOR_CONFIG"),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	deviceDirFlag = &cli.StringFlag{
		Name:  "device-dir",
		Value: defaults.DeviceDir,
		Usage: "Device namespace directory to enumerate",
	}

	devicePrefixFlag = &cli.StringFlag{
		Name:  "device-prefix",
		Value: defaults.DevicePrefix,
		Usage: "Three-letter base token of candidate device names",
	}
)

// parseOutputFormat returns the --format value, rejecting unknown formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadConfig builds the run configuration: defaults, then --config, then
// any flag or environment variable that was explicitly set.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(afero.NewOsFs(), cmd.String("config"))
	if err != nil {
		return nil, err
	}

	strs := map[string]*string{
		"account":       &cfg.Account,
		"access-key":    &cfg.AccessKey,
		"locality":      &cfg.Locality,
		"registry-host": &cfg.RegistryHost,
		"store-dir":     &cfg.StoreDir,
		"device-dir":    &cfg.DeviceDir,
		"device-prefix": &cfg.DevicePrefix,
		"mount-root":    &cfg.MountRoot,
		"staging-dir":   &cfg.StagingDir,
		"mounter":       &cfg.Mounter,
		"metrics-file":  &cfg.MetricsFile,
	}
	for flag, dst := range strs {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}

	bools := map[string]*bool{
		"plain-http":   &cfg.PlainHTTP,
		"insecure-tls": &cfg.InsecureTLS,
	}
	for flag, dst := range bools {
		if cmd.IsSet(flag) {
			*dst = cmd.Bool(flag)
		}
	}

	if cmd.IsSet("upload-rate") {
		cfg.UploadRate = cmd.Float64("upload-rate")
	}
	return cfg, nil
}
