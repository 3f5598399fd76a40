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

package publisher

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-investigator/pkg/collector"
	"github.com/NVIDIA/node-investigator/pkg/defaults"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
	"github.com/NVIDIA/node-investigator/pkg/host"
)

// Store is the remote object store.
type Store interface {
	ListContainers(ctx context.Context) ([]string, error)
	CreateContainer(ctx context.Context, name string) error
	ListObjects(ctx context.Context, container string) ([]string, error)
	Upload(ctx context.Context, container, name, path string) error
}

// Object is a planned upload.
type Object struct {
	Name     string             `json:"name" yaml:"name"`
	Path     string             `json:"path" yaml:"path"`
	Category collector.Category `json:"category" yaml:"category"`
}

// Result summarizes a publish run.
type Result struct {
	Container string   `json:"container" yaml:"container"`
	Created   bool     `json:"created" yaml:"created"`
	Uploaded  []string `json:"uploaded" yaml:"uploaded"`
	Existing  []string `json:"existing" yaml:"existing"`
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithClock sets the clock used for date stamps.
func WithClock(c clock.PassiveClock) Option {
	return func(p *Publisher) {
		p.clock = c
	}
}

// WithLimiter paces remote calls.
func WithLimiter(l *rate.Limiter) Option {
	return func(p *Publisher) {
		p.limiter = l
	}
}

// Publisher uploads artifacts not yet present in the host's container.
type Publisher struct {
	store    Store
	identity host.Identity
	clock    clock.PassiveClock
	limiter  *rate.Limiter
}

// New creates a Publisher.
func New(store Store, identity host.Identity, opts ...Option) *Publisher {
	p := &Publisher{
		store:    store,
		identity: identity,
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Container resolves the container name for this host.
func (p *Publisher) Container(ctx context.Context) (string, error) {
	hostname, err := p.identity.Hostname(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve host identity", err)
	}
	if containerBase(hostname) == "" {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInternal,
			"host name does not yield a container name",
			map[string]any{"hostname": hostname})
	}
	return ContainerName(hostname), nil
}

// Manifest returns the objects to upload for artifacts, in artifact order.
// Artifacts that were not collected are left out. Names that collide after
// sanitizing get a numeric suffix in artifact order, e.g. grub-grub.cfg-2.
func (p *Publisher) Manifest(artifacts []collector.Artifact) []Object {
	now := p.clock.Now()
	objs := make([]Object, 0, len(artifacts))
	used := make(map[string]struct{}, len(artifacts))
	for _, a := range artifacts {
		if !a.Collected() {
			continue
		}
		name := ObjectName(a, now)
		if _, dup := used[name]; dup {
			base := name
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s-%d", base, n)
				if _, dup := used[name]; !dup {
					break
				}
			}
			slog.Warn("object name collision, renamed",
				slog.String("source", a.Source),
				slog.String("object", base),
				slog.String("renamed", name))
		}
		used[name] = struct{}{}
		objs = append(objs, Object{
			Name:     name,
			Path:     a.Staged,
			Category: a.Category,
		})
	}
	return objs
}

// EnsureContainer creates the container unless the store already lists it.
// It reports whether the container was created.
func (p *Publisher) EnsureContainer(ctx context.Context, name string) (bool, error) {
	containers, err := call(ctx, p, defaults.StoreListTimeout, func(ctx context.Context) ([]string, error) {
		return p.store.ListContainers(ctx)
	})
	if err != nil {
		return false, wrapStoreErr("failed to list containers", err)
	}

	for _, c := range containers {
		if c == name {
			slog.Info("container already exists", slog.String("container", name))
			return false, nil
		}
	}

	slog.Info("creating container", slog.String("container", name))
	if _, err := call(ctx, p, defaults.StoreCreateTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.store.CreateContainer(ctx, name)
	}); err != nil {
		return false, wrapStoreErr("failed to create container", err)
	}
	return true, nil
}

// Publish ensures the container exists and uploads every manifest object
// whose name is not already present. The first upload error aborts the run.
func (p *Publisher) Publish(ctx context.Context, artifacts []collector.Artifact) (*Result, error) {
	container, err := p.Container(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Container: container, Uploaded: []string{}, Existing: []string{}}
	if res.Created, err = p.EnsureContainer(ctx, container); err != nil {
		return res, err
	}

	existing, err := call(ctx, p, defaults.StoreListTimeout, func(ctx context.Context) ([]string, error) {
		return p.store.ListObjects(ctx, container)
	})
	if err != nil {
		return res, wrapStoreErr("failed to list objects", err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		present[name] = struct{}{}
	}

	for _, obj := range p.Manifest(artifacts) {
		if _, ok := present[obj.Name]; ok {
			slog.Info("object already in container, skipping",
				slog.String("container", container),
				slog.String("object", obj.Name))
			res.Existing = append(res.Existing, obj.Name)
			continue
		}

		slog.Info("uploading object",
			slog.String("container", container),
			slog.String("object", obj.Name),
			slog.String("path", obj.Path))
		if _, err := call(ctx, p, defaults.StoreUploadTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.store.Upload(ctx, container, obj.Name, obj.Path)
		}); err != nil {
			return res, wrapStoreErr("failed to upload "+obj.Name, err)
		}
		present[obj.Name] = struct{}{}
		res.Uploaded = append(res.Uploaded, obj.Name)
	}

	return res, nil
}

// call waits for the limiter and runs fn under a per-call timeout.
func call[T any](ctx context.Context, p *Publisher, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return zero, err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

func wrapStoreErr(msg string, err error) error {
	var se *apperrors.StructuredError
	if stderrors.As(err, &se) {
		return apperrors.Wrap(se.Code, msg, err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, msg, err)
	}
	return apperrors.Wrap(apperrors.ErrCodeUnavailable, msg, err)
}
