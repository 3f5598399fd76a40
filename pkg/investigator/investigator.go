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
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-investigator/pkg/collector"
	"github.com/NVIDIA/node-investigator/pkg/device"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
	"github.com/NVIDIA/node-investigator/pkg/header"
	"github.com/NVIDIA/node-investigator/pkg/host"
	"github.com/NVIDIA/node-investigator/pkg/locator"
	"github.com/NVIDIA/node-investigator/pkg/logscan"
	"github.com/NVIDIA/node-investigator/pkg/mount"
	"github.com/NVIDIA/node-investigator/pkg/publisher"
	"github.com/NVIDIA/node-investigator/pkg/serializer"
)

// Investigator runs the collection pipeline. All component fields are required;
// Fs, Identity, Clock and Metrics default when nil.
type Investigator struct {
	// Version is recorded in the run manifest.
	Version string

	Fs         afero.Fs
	Scanner    *device.Scanner
	Mounts     *mount.Manager
	Locator    *locator.Locator
	Collector  *collector.Collector
	LogScanner *logscan.Scanner
	Publisher  *publisher.Publisher
	Identity   host.Identity
	Clock      clock.PassiveClock
	Metrics    *Metrics

	// MetricsFile, when set, receives the run metrics after the run.
	MetricsFile string
}

func (i *Investigator) setDefaults() {
	if i.Fs == nil {
		i.Fs = afero.NewOsFs()
	}
	if i.Identity == nil {
		i.Identity = host.System{}
	}
	if i.Clock == nil {
		i.Clock = clock.RealClock{}
	}
	if i.Metrics == nil {
		i.Metrics = NewMetrics()
	}
}

// Run executes the pipeline once. The returned manifest is non-nil whenever
// device discovery succeeded, including when publishing failed.
func (i *Investigator) Run(ctx context.Context) (*Manifest, error) {
	i.setDefaults()

	start := i.Clock.Now()
	m, err := i.run(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	i.Metrics.runTotal.WithLabelValues(status).Inc()
	i.Metrics.runDuration.Observe(i.Clock.Since(start).Seconds())

	if i.MetricsFile != "" {
		if werr := i.Metrics.WriteTextfile(i.MetricsFile); werr != nil {
			slog.Warn("failed to write metrics file",
				slog.String("path", i.MetricsFile),
				apperrors.Attr(werr))
		}
	}
	return m, err
}

func (i *Investigator) run(ctx context.Context) (*Manifest, error) {
	m := NewManifest()
	m.Init(header.KindRunManifest, i.Clock, i.Version)
	m.Metadata[MetadataRunID] = uuid.NewString()
	if name, err := i.Identity.Hostname(ctx); err == nil {
		m.Metadata[MetadataHost] = name
	}

	slog.Debug("starting investigator run", slog.String("run-id", m.Metadata[MetadataRunID]))

	var devices []device.Device
	if err := i.phase("scan", func() error {
		var err error
		devices, err = i.Scanner.Scan(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	m.Devices = device.IDs(devices)
	i.Metrics.devices.Set(float64(len(devices)))
	if len(devices) == 0 {
		slog.Warn("no candidate devices found, nothing to collect from mounts")
	}

	if err := i.phase("mount", func() error {
		m.Mounts = i.Mounts.EnsureAll(ctx, devices)
		return ctx.Err()
	}); err != nil {
		return m, err
	}
	for _, mp := range m.Mounts {
		i.Metrics.mounts.WithLabelValues(string(mp.Action)).Inc()
	}

	_ = i.phase("locate", func() error {
		m.Locations = i.Locator.Locate(probePaths(m.Mounts))
		return nil
	})

	if err := i.phase("collect", func() error {
		i.collect(m)
		return ctx.Err()
	}); err != nil {
		return m, err
	}

	manifestArtifact := i.writeManifest(ctx, m)
	artifacts := append(append([]collector.Artifact{}, m.Artifacts...), manifestArtifact)
	m.Artifacts = artifacts

	var res *publisher.Result
	err := i.phase("publish", func() error {
		var err error
		res, err = i.Publisher.Publish(ctx, artifacts)
		return err
	})
	m.Publish = res
	if res != nil {
		i.Metrics.objects.WithLabelValues("uploaded").Add(float64(len(res.Uploaded)))
		i.Metrics.objects.WithLabelValues("existing").Add(float64(len(res.Existing)))
	}

	// The local copy also records the publish outcome.
	if manifestArtifact.Collected() {
		if werr := i.serializeManifest(ctx, manifestArtifact.Staged, m); werr != nil {
			slog.Warn("failed to update local run manifest", apperrors.Attr(werr))
		}
	}

	if err != nil {
		slog.Error("publish failed, staged files are kept",
			slog.String("staging", i.Collector.Dir()),
			apperrors.Attr(err))
		return m, err
	}

	slog.Info("investigator run complete",
		slog.String("container", res.Container),
		slog.Int("uploaded", len(res.Uploaded)),
		slog.Int("existing", len(res.Existing)))
	return m, nil
}

// phase runs fn and records its duration.
func (i *Investigator) phase(name string, fn func() error) error {
	start := i.Clock.Now()
	defer func() {
		i.Metrics.phaseDuration.WithLabelValues(name).Observe(i.Clock.Since(start).Seconds())
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// collect stages every artifact category from the located sources.
func (i *Investigator) collect(m *Manifest) {
	messages, _ := m.Locations.Get(locator.TargetMessages)
	boot, _ := m.Locations.Get(locator.TargetBoot)
	bootloader, _ := m.Locations.Get(locator.TargetBootloader)
	agentLog, _ := m.Locations.Get(locator.TargetAgentLog)
	osRelease, _ := m.Locations.Get(locator.TargetOSRelease)

	m.System = i.Collector.System(osRelease, bootloader)

	arts := make([]collector.Artifact, 0, 8)
	arts = append(arts, i.Collector.ArchiveLog(messages), i.Collector.CopyLog(messages))

	kernels, kernelEntries := i.Collector.KernelInventory(boot)
	m.Kernels = kernelEntries
	arts = append(arts, kernels)

	arts = append(arts, i.Collector.BootloaderConfigs(bootloader)...)
	arts = append(arts, i.Collector.AgentLog(agentLog))

	var (
		hits    []logscan.Hit
		scanErr error
	)
	if messages != "" {
		hits, scanErr = i.LogScanner.Scan(messages)
		if scanErr != nil {
			slog.Warn("failed to scan primary log",
				slog.String("path", messages),
				apperrors.Attr(scanErr))
		}
	}
	m.Hits = len(hits)
	i.Metrics.hits.Set(float64(len(hits)))
	if len(hits) > 0 {
		slog.Warn("fatal error signatures found in primary log",
			slog.String("path", messages),
			slog.Int("hits", len(hits)))
	}
	arts = append(arts, i.Collector.ErrorReport(messages, hits, scanErr))

	for _, a := range arts {
		i.Metrics.artifacts.WithLabelValues(string(a.Category), string(a.Status)).Inc()
	}
	m.Artifacts = arts
	m.Skipped = skippedCategories(arts)
	if len(m.Skipped) > 0 {
		slog.Info("categories skipped on this run", slog.Any("categories", m.Skipped))
	}
}

// writeManifest stages the run manifest as an artifact of its own.
func (i *Investigator) writeManifest(ctx context.Context, m *Manifest) collector.Artifact {
	a := collector.Artifact{
		Name:     string(collector.CategoryManifest),
		Category: collector.CategoryManifest,
		Encoding: collector.EncodingRaw,
	}
	dst := i.Collector.Path(collector.FileManifest)
	if err := i.serializeManifest(ctx, dst, m); err != nil {
		slog.Warn("failed to write run manifest", apperrors.Attr(err))
		a.Status = collector.StatusFailed
		a.Reason = err.Error()
		return a
	}
	a.Staged = dst
	a.Status = collector.StatusCollected
	return a
}

func (i *Investigator) serializeManifest(ctx context.Context, path string, m *Manifest) error {
	w, err := serializer.NewFileWriter(i.Fs, serializer.FormatYAML, path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, "failed to create manifest", err)
	}
	if err := w.Serialize(ctx, m); err != nil {
		_ = w.Close()
		return apperrors.Wrap(apperrors.ErrCodeIO, "failed to serialize manifest", err)
	}
	return w.Close()
}

// probePaths returns the mount paths worth probing: those known to be mounted
// and those whose mount state could not be determined.
func probePaths(mounts []mount.MountPoint) []string {
	paths := make([]string, 0, len(mounts))
	for _, mp := range mounts {
		if mp.Mounted || apperrors.CodeOf(mp.Err()) == apperrors.ErrCodeUnavailable {
			paths = append(paths, mp.Path)
		}
	}
	return paths
}
