// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceInterval coalesces the burst of fsnotify events a single file
// update typically produces into one reload.
const debounceInterval = 100 * time.Millisecond

// Watch re-reads the configuration file at path whenever it changes and
// invokes onChange with the freshly parsed result. It is the hook for secret
// rotation and live log-level changes without a restart.
//
// The parent directory is watched rather than the file itself, so atomic
// replace-by-rename updates (editors, mounted secret volumes) are seen.
// Updates that fail to parse or validate are logged via the zerolog logger
// attached to ctx and skipped; onChange only ever receives a valid config.
//
// The watch goroutine stops when ctx is canceled. Watch returns an error
// only if the watcher cannot be installed.
func Watch(ctx context.Context, path string, onChange func(*Base)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating config watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("error watching config directory: %w", err)
	}

	go watchLoop(ctx, watcher, path, onChange)

	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange func(*Base)) {
	defer watcher.Close()

	logger := zerolog.Ctx(ctx)

	reload := time.NewTimer(debounceInterval)
	if !reload.Stop() {
		<-reload.C
	}
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if !reload.Stop() {
				select {
				case <-reload.C:
				default:
				}
			}
			reload.Reset(debounceInterval)

		case <-reload.C:
			cfg, err := parseFile(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable config update")
				continue
			}
			if err := cfg.validate(); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("skipping invalid config update")
				continue
			}

			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Str("path", path).Msg("config watcher error")
		}
	}
}
