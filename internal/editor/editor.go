/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor runs the per-frame interaction pipeline: it tracks the world
// pointer, dispatches intents through the mode state machine, moves selected
// entities and composes the render frame.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	applog "splined/internal/log"
	"splined/internal/render"
	"splined/internal/scene"
	"splined/internal/spline"
	"splined/internal/telemetry"
	"splined/internal/vector"
)

// Input is what the host polls once per update.
type Input struct {
	// Pointer is the raw viewport position, nil when the pointer is off-surface.
	Pointer *vector.Pt
	// Camera maps the pointer into world space; nil means no active camera.
	Camera  Camera
	Intents []Intent
}

type Options struct {
	CancelPolicy CancelPolicy
	Style        render.Style
	Logger       *slog.Logger
	// Recorder receives per-stage timings when set.
	Recorder *telemetry.Recorder
}

// Editor owns the interaction state for one graph. It is not safe for
// concurrent use; hosts call Update from a single goroutine.
type Editor struct {
	g     *scene.Graph
	opts  Options
	log   *slog.Logger
	frame uint64

	mode      Mode
	cursor    vector.Pt
	pointerOK bool // pointer resolved during the current update
	anchor    vector.Pt
	hasAnchor bool
	lock      Axis

	stages []stage
}

type stage struct {
	name string
	run  func(e *Editor, in Input, f *render.Frame) error
}

// New creates an editor over g in Select mode.
func New(g *scene.Graph, opts Options) *Editor {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("editor")
	}
	if opts.Style == (render.Style{}) {
		opts.Style = render.DefaultStyle()
	}
	e := &Editor{g: g, opts: opts, log: l}
	e.stages = []stage{
		{name: "cursor", run: (*Editor).cursorStage},
		{name: "transform", run: (*Editor).transformStage},
		{name: "geometry", run: (*Editor).geometryStage},
	}
	return e
}

func (e *Editor) Graph() *scene.Graph { return e.g }
func (e *Editor) Mode() Mode          { return e.mode }
func (e *Editor) Frame() uint64       { return e.frame }

// Cursor returns the last known world pointer position.
func (e *Editor) Cursor() vector.Pt { return e.cursor }

// Anchor returns the anchor snapshot. ok is false in Select mode.
func (e *Editor) Anchor() (vector.Pt, bool) { return e.anchor, e.hasAnchor }

// Constraint returns the active axis lock.
func (e *Editor) Constraint() Axis { return e.lock }

// CrashState summarizes the interaction state for crash reports.
func (e *Editor) CrashState() map[string]string {
	st := map[string]string{
		"frame":    strconv.FormatUint(e.frame, 10),
		"mode":     e.mode.String(),
		"cursor":   fmt.Sprintf("%g,%g", e.cursor.X, e.cursor.Y),
		"selected": strconv.Itoa(len(e.g.Selected())),
		"moving":   strconv.Itoa(len(e.g.MovingIDs())),
	}
	if e.hasAnchor {
		st["anchor"] = fmt.Sprintf("%g,%g", e.anchor.X, e.anchor.Y)
	}
	return st
}

// Update runs one frame: cursor, then transform, then geometry. Each stage
// completes before the next starts. A failing stage is logged and the
// remaining stages still run.
func (e *Editor) Update(in Input) render.Frame {
	e.frame++
	l := applog.WithFrame(e.log, e.frame)
	f := render.Frame{Seq: e.frame}
	for _, st := range e.stages {
		start := time.Now()
		err := st.run(e, in, &f)
		if e.opts.Recorder != nil {
			e.opts.Recorder.Observe(st.name, time.Since(start))
		}
		if err != nil {
			l.Warn("stage failed", slog.String("stage", st.name), slog.Any("err", err))
		}
	}
	return f
}

func (e *Editor) cursorStage(in Input, _ *render.Frame) error {
	e.pointerOK = false
	if in.Pointer != nil && in.Camera != nil && in.Camera.Active() {
		if w, ok := in.Camera.ViewportToWorld(*in.Pointer); ok {
			e.cursor = w
			e.pointerOK = true
		}
	}
	var errs []error
	from := e.mode
	for _, it := range in.Intents {
		// once a Move, Rotate or Scale ends, the rest of the update's intents
		// belong to the ended mode and must not leak into Select
		if from != ModeSelect && e.mode != from {
			e.log.Debug("intent dropped after transition", slog.String("intent", it.String()), slog.String("mode", e.mode.String()))
			continue
		}
		if err := e.dispatch(it); err != nil {
			errs = append(errs, fmt.Errorf("%s in %s: %w", it, from, err))
		}
	}
	if e.mode != from {
		e.log.Info("mode changed", slog.String("from", from.String()), slog.String("to", e.mode.String()), slog.Uint64("frame", e.frame))
	}
	return errors.Join(errs...)
}

// dispatch applies one intent against the current mode. Every pair is listed;
// pairs with no effect are ignored on purpose.
func (e *Editor) dispatch(it Intent) error {
	switch e.mode {
	case ModeSelect:
		switch it {
		case IntentBeginMove:
			e.enter(ModeMove)
		case IntentRotate:
			e.enter(ModeRotate)
		case IntentScale:
			e.enter(ModeScale)
		case IntentDeselect:
			e.g.ClearSelection()
		case IntentCommit, IntentRevert, IntentConstrainX, IntentConstrainY:
		default:
			return fmt.Errorf("intent %d: %w", it, ErrUnknownMode)
		}
	case ModeMove:
		switch it {
		case IntentCommit:
			e.leave()
		case IntentRevert:
			var err error
			if e.opts.CancelPolicy == CancelRevert {
				err = e.revert()
			}
			e.leave()
			return err
		case IntentConstrainX:
			e.toggle(AxisX)
		case IntentConstrainY:
			e.toggle(AxisY)
		case IntentBeginMove, IntentRotate, IntentScale, IntentDeselect:
		default:
			return fmt.Errorf("intent %d: %w", it, ErrUnknownMode)
		}
	case ModeRotate, ModeScale:
		switch it {
		case IntentCommit, IntentRevert:
			e.leave()
		case IntentBeginMove, IntentRotate, IntentScale, IntentDeselect, IntentConstrainX, IntentConstrainY:
		default:
			return fmt.Errorf("intent %d: %w", it, ErrUnknownMode)
		}
	default:
		return fmt.Errorf("%s: %w", e.mode, ErrUnknownMode)
	}
	return nil
}

// enter switches from Select into m and snapshots the anchor: the pointer of
// this update if it resolved, the origin otherwise.
func (e *Editor) enter(m Mode) {
	e.mode = m
	e.lock = AxisNone
	e.hasAnchor = true
	e.anchor = vector.Pt{}
	if e.pointerOK {
		e.anchor = e.cursor
	}
}

// leave returns to Select. Moving markers, the anchor and the axis lock are dropped.
func (e *Editor) leave() {
	e.mode = ModeSelect
	e.g.ClearMoving()
	e.hasAnchor = false
	e.anchor = vector.Pt{}
	e.lock = AxisNone
}

func (e *Editor) toggle(a Axis) {
	if e.lock == a {
		e.lock = AxisNone
		return
	}
	e.lock = a
}

// revert puts every moved entity back at its drag-start position.
func (e *Editor) revert() error {
	var errs []error
	for _, id := range e.g.MovingIDs() {
		start, _ := e.g.Moving(id)
		if err := e.g.SetPosition(id, start); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Editor) transformStage(_ Input, _ *render.Frame) error {
	switch e.mode {
	case ModeSelect:
		return nil
	case ModeMove:
		return e.applyMove()
	case ModeRotate, ModeScale:
		// no transform is defined for these modes yet
		return nil
	default:
		return fmt.Errorf("transform: %s: %w", e.mode, ErrUnknownMode)
	}
}

func (e *Editor) geometryStage(_ Input, f *render.Frame) error {
	built := spline.BuildAll(e.g)
	var errs []error
	for _, r := range built {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	composed := render.Compose(e.g, built, e.opts.Style)
	f.Items, f.Diagnostics = composed.Items, composed.Diagnostics
	return errors.Join(errs...)
}
