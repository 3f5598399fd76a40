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

// Package locator finds artifacts of interest on mounted volumes.
//
// Mounts are probed in the order given and the first mount that holds a
// target wins; results are never merged across mounts. A target found on no
// mount is simply absent from the returned Locations.
package locator

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// Target names.
const (
	TargetMessages   = "messages"
	TargetBoot       = "boot"
	TargetAgentLog   = "agent-log"
	TargetBootloader = "bootloader"
	TargetOSRelease  = "os-release"
)

// Target is a file or directory looked up relative to each mount.
type Target struct {
	Name string
	// Paths are candidate relative paths, tried in order on each mount.
	Paths []string
	Dir   bool
}

// DefaultTargets are the artifacts collected from a rescued disk.
var DefaultTargets = []Target{
	{Name: TargetMessages, Paths: []string{"var/log/messages"}},
	{Name: TargetBoot, Paths: []string{"boot"}, Dir: true},
	{Name: TargetAgentLog, Paths: []string{"var/log/waagent.log"}},
	{Name: TargetBootloader, Paths: []string{"boot/grub2", "boot/grub"}, Dir: true},
	{Name: TargetOSRelease, Paths: []string{"etc/os-release", "usr/lib/os-release"}},
}

// Locations maps a target name to the absolute path where it was found.
type Locations map[string]string

// Get returns the location of name and whether it was found.
func (l Locations) Get(name string) (string, bool) {
	p, ok := l[name]
	return p, ok
}

// Locator probes mounts for targets.
type Locator struct {
	fs      afero.Fs
	targets []Target
}

// New creates a Locator over fs. With no targets, DefaultTargets are used.
func New(fs afero.Fs, targets ...Target) *Locator {
	if len(targets) == 0 {
		targets = DefaultTargets
	}
	return &Locator{fs: fs, targets: targets}
}

// Locate returns, for each target, the path on the first mount that holds it.
func (l *Locator) Locate(mounts []string) Locations {
	res := make(Locations, len(l.targets))
	for _, t := range l.targets {
		if p, ok := l.find(t, mounts); ok {
			slog.Info("found artifact",
				slog.String("target", t.Name),
				slog.String("path", p))
			res[t.Name] = p
			continue
		}
		slog.Info("artifact not found on any mount", slog.String("target", t.Name))
	}
	return res
}

func (l *Locator) find(t Target, mounts []string) (string, bool) {
	for _, m := range mounts {
		for _, rel := range t.Paths {
			p := filepath.Join(m, rel)
			fi, err := l.fs.Stat(p)
			if err != nil {
				continue
			}
			if fi.IsDir() == t.Dir {
				return p, true
			}
		}
	}
	return "", false
}
