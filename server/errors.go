// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrNoServersConfigured is returned by [New] when neither an HTTP nor a
// gRPC listen address is configured.
var ErrNoServersConfigured = errors.New("no servers configured")
