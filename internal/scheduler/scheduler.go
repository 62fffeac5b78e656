// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio-go/internal/store"
)

// Scheduler runs housekeeping on a cron schedule: pruning old event log
// rows and deactivating expired API keys.
type Scheduler struct {
	store     *store.Store
	cron      *cron.Cron
	log       *slog.Logger
	retention time.Duration
}

// New creates a scheduler. Events older than retentionDays are pruned.
func New(st *store.Store, log *slog.Logger, retentionDays int) *Scheduler {
	return &Scheduler{
		store:     st,
		cron:      cron.New(),
		log:       log,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start registers the maintenance jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	// Nightly, off-peak
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.log.Error("event log pruning failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("registering event prune job: %w", err)
	}

	if _, err := s.cron.AddFunc("0 4 * * *", func() {
		if err := s.DeactivateExpiredKeys(context.Background()); err != nil {
			s.log.Error("api key expiry sweep failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("registering key expiry job: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the cron loop. Running jobs finish before it returns.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// PruneEvents deletes event log rows older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.retention)
	n, err := s.store.Events.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("pruned event log", "deleted", n, "cutoff", cutoff)
	}
	return nil
}

// DeactivateExpiredKeys flags API keys past their expiry as inactive.
func (s *Scheduler) DeactivateExpiredKeys(ctx context.Context) error {
	n, err := s.store.APIKeys.DeactivateExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("deactivated expired api keys", "count", n)
	}
	return nil
}
