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

package oci

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"

	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/errcode"
	"oras.land/oras-go/v2/registry/remote/retry"

	"github.com/NVIDIA/node-investigator/pkg/defaults"
	apperrors "github.com/NVIDIA/node-investigator/pkg/errors"
)

// RegistryOptions configures the remote registry store.
type RegistryOptions struct {
	// Account is the registry account name; it is the first label of the host.
	Account string
	// AccessKey authenticates Account.
	AccessKey string
	// Locality selects the endpoint suffix (see defaults.EndpointSuffixes).
	Locality string
	// Host overrides the derived <account>.<suffix> host (self-hosted registries).
	Host string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// ResolveHost returns the registry host addressed by the options.
func (o RegistryOptions) ResolveHost() (string, error) {
	if o.Host != "" {
		return stripProtocol(o.Host), nil
	}
	suffix := defaults.EndpointSuffix(o.Locality)
	if suffix == "" {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "unrecognized locality",
			map[string]any{"locality": o.Locality})
	}
	if o.Account == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest, "account is required")
	}
	return fmt.Sprintf("%s.%s", o.Account, suffix), nil
}

// Registry stores objects in a remote OCI registry.
type Registry struct {
	host      string
	plainHTTP bool
	client    *auth.Client
}

// NewRegistry validates opts and creates a Registry. No network calls are made.
func NewRegistry(opts RegistryOptions) (*Registry, error) {
	host, err := opts.ResolveHost()
	if err != nil {
		return nil, err
	}
	if opts.AccessKey == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "access key is required")
	}
	if err := ValidateRegistryReference(host, "probe"); err != nil {
		return nil, err
	}

	return &Registry{
		host:      host,
		plainHTTP: opts.PlainHTTP,
		client:    createAuthClient(host, opts),
	}, nil
}

// Host returns the registry host.
func (r *Registry) Host() string {
	return r.host
}

// ListContainers returns the repositories in the registry catalog.
func (r *Registry) ListContainers(ctx context.Context) ([]string, error) {
	reg, err := remote.NewRegistry(r.host)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize registry", err)
	}
	reg.PlainHTTP = r.plainHTTP
	reg.Client = r.client

	names := make([]string, 0)
	err = reg.Repositories(ctx, "", func(repos []string) error {
		names = append(names, repos...)
		return nil
	})
	if err != nil {
		return nil, classify("failed to list repositories", err)
	}
	return names, nil
}

// CreateContainer pushes the container marker into the repository.
func (r *Registry) CreateContainer(ctx context.Context, name string) error {
	repo, err := r.repository(name)
	if err != nil {
		return err
	}
	if err := pushMarker(ctx, repo); err != nil {
		return classify("failed to create repository", err)
	}
	return nil
}

// ListObjects returns the tags of the repository, without the container marker.
// A repository the registry does not know yet has no objects.
func (r *Registry) ListObjects(ctx context.Context, container string) ([]string, error) {
	repo, err := r.repository(container)
	if err != nil {
		return nil, err
	}
	names, err := listObjects(ctx, repo)
	if err != nil {
		var resp *errcode.ErrorResponse
		if errors.As(err, &resp) && resp.StatusCode == http.StatusNotFound {
			return []string{}, nil
		}
		return nil, classify("failed to list tags", err)
	}
	return names, nil
}

// Upload pushes the file at path as object name.
func (r *Registry) Upload(ctx context.Context, container, name, path string) error {
	repo, err := r.repository(container)
	if err != nil {
		return err
	}
	if _, err := pushFile(ctx, repo, name, path); err != nil {
		return classify("failed to upload object", err)
	}
	return nil
}

func (r *Registry) repository(name string) (*remote.Repository, error) {
	if err := ValidateRegistryReference(r.host, name); err != nil {
		return nil, err
	}
	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", r.host, name))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = r.plainHTTP
	repo.Client = r.client
	return repo, nil
}

// classify maps registry errors onto structured error codes.
func classify(msg string, err error) error {
	var resp *errcode.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.Wrap(apperrors.ErrCodeUnauthorized, msg, err)
		case http.StatusNotFound:
			return apperrors.Wrap(apperrors.ErrCodeNotFound, msg, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, msg, err)
	}
	return apperrors.Wrap(apperrors.ErrCodeUnavailable, msg, err)
}

// createAuthClient creates an HTTP client with a static credential for host
// and optional TLS relaxation.
func createAuthClient(host string, opts RegistryOptions) *auth.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   defaults.HTTPConnectTimeout,
		KeepAlive: defaults.HTTPKeepAlive,
	}).DialContext
	transport.TLSHandshakeTimeout = defaults.HTTPTLSHandshakeTimeout
	transport.ResponseHeaderTimeout = defaults.HTTPResponseHeaderTimeout
	transport.IdleConnTimeout = defaults.HTTPIdleConnTimeout
	if !opts.PlainHTTP && opts.InsecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client: &http.Client{Transport: retry.NewTransport(transport)},
		Cache:  auth.NewCache(),
		Credential: auth.StaticCredential(host, auth.Credential{
			Username: opts.Account,
			Password: opts.AccessKey,
		}),
	}
}
