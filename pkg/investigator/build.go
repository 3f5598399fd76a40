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

package investigator

import (
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"
	"k8s.io/utils/exec"

	"github.com/NVIDIA/node-investigator/pkg/collector"
	"github.com/NVIDIA/node-investigator/pkg/config"
	"github.com/NVIDIA/node-investigator/pkg/device"
	"github.com/NVIDIA/node-investigator/pkg/host"
	"github.com/NVIDIA/node-investigator/pkg/locator"
	"github.com/NVIDIA/node-investigator/pkg/logscan"
	"github.com/NVIDIA/node-investigator/pkg/mount"
	"github.com/NVIDIA/node-investigator/pkg/oci"
	"github.com/NVIDIA/node-investigator/pkg/publisher"
)

// FromConfig wires the production components for cfg. cfg must have been validated.
func FromConfig(cfg *config.Config, version string) (*Investigator, error) {
	fs := afero.NewOsFs()
	clk := clock.RealClock{}

	scanner, err := device.NewScanner(
		device.WithFs(fs),
		device.WithDir(cfg.DeviceDir),
		device.WithPrefix(cfg.DevicePrefix),
	)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}

	pubOpts := []publisher.Option{publisher.WithClock(clk)}
	if cfg.UploadRate > 0 {
		pubOpts = append(pubOpts, publisher.WithLimiter(rate.NewLimiter(rate.Limit(cfg.UploadRate), 1)))
	}
	identity := host.System{}

	return &Investigator{
		Version:     version,
		Fs:          fs,
		Scanner:     scanner,
		Mounts:      mount.NewManager(NewMounter(cfg), mount.WithFs(fs), mount.WithRoot(cfg.MountRoot)),
		Locator:     locator.New(fs),
		Collector:   collector.New(fs, filepath.Clean(cfg.StagingDir)),
		LogScanner:  logscan.NewScanner(fs),
		Publisher:   publisher.New(store, identity, pubOpts...),
		Identity:    identity,
		Clock:       clk,
		Metrics:     NewMetrics(),
		MetricsFile: cfg.MetricsFile,
	}, nil
}

// NewMounter returns the mount service selected by cfg.Mounter.
func NewMounter(cfg *config.Config) mount.Mounter {
	table := mount.NewTable(nil)
	if cfg.Mounter == config.MounterSystemd {
		return mount.NewSystemdMounter(table)
	}
	return mount.NewExecMounter(table, exec.New())
}

// NewStore returns the local layout store when cfg is offline and the
// registry store otherwise.
func NewStore(cfg *config.Config) (publisher.Store, error) {
	if cfg.Offline() {
		l, err := oci.NewLayout(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	r, err := oci.NewRegistry(oci.RegistryOptions{
		Account:     cfg.Account,
		AccessKey:   cfg.AccessKey,
		Locality:    cfg.Locality,
		Host:        cfg.RegistryHost,
		PlainHTTP:   cfg.PlainHTTP,
		InsecureTLS: cfg.InsecureTLS,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
