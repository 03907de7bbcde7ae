// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoCertificate is returned by NewServer when the TLS certificate or
	// key is not configured or cannot be loaded. The host only serves TLS.
	errNoCertificate = errors.New("no TLS certificate")

	// errNoHandler is returned by NewServer when no request pipeline is given.
	errNoHandler = errors.New("no handler is provided")
)
