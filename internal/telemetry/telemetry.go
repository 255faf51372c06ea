/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry keeps local, in-process timing statistics for the editor
// pipeline. Nothing leaves the process; hosts decide whether to log or print
// a snapshot.
package telemetry

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	applog "splined/internal/log"
)

// StageStats summarizes the durations observed for one named stage.
type StageStats struct {
	Name  string
	Count uint64
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average duration, zero when nothing was observed.
func (s StageStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Recorder accumulates stage timings. It is safe for concurrent use so a UI
// goroutine can read while the update loop writes.
type Recorder struct {
	mu     sync.Mutex
	stages map[string]*StageStats
	log    *slog.Logger
}

// New constructs a recorder.
func New() *Recorder {
	return &Recorder{stages: make(map[string]*StageStats), log: applog.WithComponent("telemetry")}
}

// Observe records one duration for stage. A nil recorder drops it.
func (r *Recorder) Observe(stage string, d time.Duration) {
	if r == nil || stage == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stages[stage]
	if !ok {
		s = &StageStats{Name: stage}
		r.stages[stage] = s
	}
	s.Count++
	s.Total += d
	s.Max = max(s.Max, d)
}

// Snapshot returns a copy of the statistics sorted by stage name.
func (r *Recorder) Snapshot() []StageStats {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StageStats, 0, len(r.stages))
	for _, s := range r.stages {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b StageStats) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Reset forgets everything observed so far.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	clear(r.stages)
	r.mu.Unlock()
}

// LogSummary writes one debug line per stage.
func (r *Recorder) LogSummary() {
	for _, s := range r.Snapshot() {
		r.log.Debug("stage timing",
			slog.String("stage", s.Name),
			slog.Uint64("count", s.Count),
			slog.Duration("mean", s.Mean()),
			slog.Duration("max", s.Max))
	}
}
