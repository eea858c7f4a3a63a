// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic housekeeping for the console: expired
// console states and idle rate limiters are swept on a cron schedule.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the sweep once a minute.
const DefaultSchedule = "@every 1m"

// Sweeper removes stale entries and reports how many it dropped.
type Sweeper interface {
	Sweep() int
}

// SweeperFunc adapts a function to Sweeper.
type SweeperFunc func() int

// Sweep calls f.
func (f SweeperFunc) Sweep() int { return f() }

type job struct {
	name    string
	sweeper Sweeper
}

// Scheduler sweeps registered stores on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
	jobs     []job
}

// New creates a scheduler. An empty schedule uses DefaultSchedule.
func New(schedule string, logger *slog.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger,
	}
}

// Register adds a named sweeper. It must be called before Start.
func (s *Scheduler) Register(name string, sw Sweeper) {
	s.jobs = append(s.jobs, job{name: name, sweeper: sw})
}

// Start schedules every registered sweeper and starts the cron runner.
func (s *Scheduler) Start() error {
	for _, j := range s.jobs {
		if _, err := s.cron.AddFunc(s.schedule, func() { s.run(j) }); err != nil {
			return fmt.Errorf("scheduling %s sweep with %q: %w", j.name, s.schedule, err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunNow runs every sweeper once, synchronously.
func (s *Scheduler) RunNow() {
	for _, j := range s.jobs {
		s.run(j)
	}
}

func (s *Scheduler) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sweep panicked", "job", j.name, "panic", r)
		}
	}()

	if n := j.sweeper.Sweep(); n > 0 {
		s.logger.Debug("sweep removed entries", "job", j.name, "removed", n)
	}
}
