// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-service-kit/logger"
)

// Group runs a set of workers with a shared lifecycle: one Start, one Stop,
// one context for all of them.
type Group struct {
	logger  *logger.Logger
	workers []Worker

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGroup constructs a [Group] over the given workers.
func NewGroup(log *logger.Logger, workers ...Worker) *Group {
	return &Group{
		logger:  log,
		workers: workers,
	}
}

// Add registers another worker. Must be called before [Group.Start].
func (g *Group) Add(w Worker) {
	g.workers = append(g.workers, w)
}

// Start launches every worker in its own goroutine. The context handed to
// the workers carries the group's logger and is cancelled by [Group.Stop].
func (g *Group) Start(ctx context.Context) {
	ctx, g.cancel = context.WithCancel(ctx)
	ctx = g.logger.WithContext(ctx)

	g.logger.Info().Int("workers", len(g.workers)).Msg("starting background workers")

	for _, w := range g.workers {
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			w.Run(ctx)
		}()
	}
}

// Stop cancels the workers' context and blocks until every Run has
// returned. Safe to call without a prior Start.
func (g *Group) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
	g.wg.Wait()
	g.logger.Info().Msg("background workers stopped")
}
