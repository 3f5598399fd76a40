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

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-investigator/pkg/device"
	"github.com/NVIDIA/node-investigator/pkg/header"
	"github.com/NVIDIA/node-investigator/pkg/serializer"
)

// DeviceList is the output of the devices command.
type DeviceList struct {
	header.Header `json:",inline" yaml:",inline"`

	Devices []device.Device `json:"devices" yaml:"devices"`
}

func devicesCmd() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List candidate devices without mounting anything",
		Flags: []cli.Flag{
			deviceDirFlag,
			devicePrefixFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			return listDevices(ctx, cmd, afero.NewOsFs(), outFormat)
		},
	}
}

func listDevices(ctx context.Context, cmd *cli.Command, fs afero.Fs, format serializer.Format) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	scanner, err := device.NewScanner(
		device.WithFs(fs),
		device.WithDir(cfg.DeviceDir),
		device.WithPrefix(cfg.DevicePrefix),
	)
	if err != nil {
		return err
	}
	devices, err := scanner.Scan(ctx)
	if err != nil {
		return err
	}

	out := DeviceList{Devices: devices}
	out.Init(header.KindDeviceList, clock.RealClock{}, version)
	return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, out)
}
