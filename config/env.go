// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags as
// defined on [Base] and its nested types.
//
// Services with extra configuration sections define their own struct, embed
// [Base], tag the additional fields, and load everything in one call.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func ParseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
