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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	"github.com/NVIDIA/node-investigator/pkg/device"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
	"github.com/NVIDIA/node-investigator/pkg/serializer"
)

// Mounter implementations.
const (
	MounterExec    = "exec"
	MounterSystemd = "systemd"
)

// Config is the complete run configuration.
type Config struct {
	// Account is the remote store account; with Locality it forms the registry host.
	Account string `json:"account,omitempty" yaml:"account,omitempty"`
	// AccessKey authenticates Account. Never serialized back out.
	AccessKey string `json:"accessKey,omitempty" yaml:"accessKey,omitempty"`
	// Locality selects the store endpoint (global, usgov).
	Locality string `json:"locality,omitempty" yaml:"locality,omitempty"`
	// RegistryHost overrides the derived registry host.
	RegistryHost string `json:"registryHost,omitempty" yaml:"registryHost,omitempty"`
	// PlainHTTP talks to the registry without TLS.
	PlainHTTP bool `json:"plainHTTP,omitempty" yaml:"plainHTTP,omitempty"`
	// InsecureTLS skips registry certificate verification.
	InsecureTLS bool `json:"insecureTLS,omitempty" yaml:"insecureTLS,omitempty"`
	// StoreDir publishes into local OCI layouts instead of a registry.
	StoreDir string `json:"storeDir,omitempty" yaml:"storeDir,omitempty"`

	DeviceDir    string `json:"deviceDir,omitempty" yaml:"deviceDir,omitempty"`
	DevicePrefix string `json:"devicePrefix,omitempty" yaml:"devicePrefix,omitempty"`
	MountRoot    string `json:"mountRoot,omitempty" yaml:"mountRoot,omitempty"`
	StagingDir   string `json:"stagingDir,omitempty" yaml:"stagingDir,omitempty"`
	// Mounter is exec or systemd.
	Mounter string `json:"mounter,omitempty" yaml:"mounter,omitempty"`
	// UploadRate caps remote calls per second; zero disables pacing.
	UploadRate float64 `json:"uploadRate,omitempty" yaml:"uploadRate,omitempty"`
	// MetricsFile receives run metrics in Prometheus text format.
	MetricsFile string `json:"metricsFile,omitempty" yaml:"metricsFile,omitempty"`
}

// Default returns the built-in configuration. The staging directory is
// resolved against the system temp directory.
func Default() *Config {
	return &Config{
		Locality:     defaults.LocalityGlobal,
		DeviceDir:    defaults.DeviceDir,
		DevicePrefix: defaults.DevicePrefix,
		MountRoot:    defaults.MountRoot,
		StagingDir:   filepath.Join(os.TempDir(), defaults.StagingDirName),
		Mounter:      MounterExec,
	}
}

// Load returns the defaults overlaid with the file at path, if path is set.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	file, err := serializer.FromFile[Config](fs, path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "failed to load config file", err,
			map[string]any{"path": path})
	}
	cfg.Merge(file)
	return cfg, nil
}

// Merge copies every non-zero field of o into c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	setString(&c.Account, o.Account)
	setString(&c.AccessKey, o.AccessKey)
	setString(&c.Locality, o.Locality)
	setString(&c.RegistryHost, o.RegistryHost)
	setString(&c.StoreDir, o.StoreDir)
	setString(&c.DeviceDir, o.DeviceDir)
	setString(&c.DevicePrefix, o.DevicePrefix)
	setString(&c.MountRoot, o.MountRoot)
	setString(&c.StagingDir, o.StagingDir)
	setString(&c.Mounter, o.Mounter)
	setString(&c.MetricsFile, o.MetricsFile)
	c.PlainHTTP = c.PlainHTTP || o.PlainHTTP
	c.InsecureTLS = c.InsecureTLS || o.InsecureTLS
	if o.UploadRate != 0 {
		c.UploadRate = o.UploadRate
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Offline reports whether results go to a local store directory.
func (c *Config) Offline() bool {
	return c.StoreDir != ""
}

// Validate checks the configuration before any work is done.
func (c *Config) Validate() error {
	// Locality is optional only when no endpoint is derived from it.
	needsLocality := !c.Offline() && c.RegistryHost == ""
	if (c.Locality != "" || needsLocality) && defaults.EndpointSuffix(c.Locality) == "" {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unrecognized locality, expected one of %s", strings.Join(Localities(), ", ")),
			map[string]any{"locality": c.Locality})
	}
	if !c.Offline() {
		if c.RegistryHost == "" {
			if c.Account == "" {
				return apperrors.New(apperrors.ErrCodeInvalidRequest, "account is required")
			}
		}
		if c.AccessKey == "" {
			return apperrors.New(apperrors.ErrCodeInvalidRequest, "access key is required")
		}
	}

	if _, err := device.NewScanner(device.WithPrefix(c.DevicePrefix)); err != nil {
		return err
	}
	switch c.Mounter {
	case MounterExec, MounterSystemd:
	default:
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "unknown mounter",
			map[string]any{"mounter": c.Mounter})
	}
	if c.UploadRate < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "upload rate cannot be negative")
	}
	for name, dir := range map[string]string{"deviceDir": c.DeviceDir, "mountRoot": c.MountRoot, "stagingDir": c.StagingDir} {
		if !filepath.IsAbs(dir) {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "path must be absolute",
				map[string]any{name: dir})
		}
	}
	return nil
}

// Localities returns the recognized locality selectors, sorted.
func Localities() []string {
	return []string{defaults.LocalityGlobal, defaults.LocalityUSGov}
}

// Redacted returns a copy safe to log or serialize.
func (c *Config) Redacted() Config {
	r := *c
	if r.AccessKey != "" {
		r.AccessKey = "***"
	}
	return r
}
