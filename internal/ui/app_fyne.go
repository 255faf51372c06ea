//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"splined/internal/config"
	"splined/internal/crash"
	"splined/internal/editor"
	applog "splined/internal/log"
	"splined/internal/render"
	"splined/internal/scene"
	"splined/internal/telemetry"
)

const frameInterval = time.Second / 60

// Run opens the editor window on the named seed and blocks until it closes.
func Run(cfg config.AppConfig, seed string) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("seed", seed))

	g := scene.NewGraph()
	if _, err := scene.Seed(g, seed); err != nil {
		return err
	}
	opts, err := editor.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	rec := telemetry.New()
	opts.Recorder = rec
	ed := editor.New(g, opts)
	defer crash.Recover(ed)

	fyneApp := app.NewWithID("splined")
	w := fyneApp.NewWindow("Splined")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1200), 640)
	winH := max(prefs.IntWithFallback("window.height", 800), 480)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	cam := editor.NewOrthoCamera(float32(winW), float32(winH))
	cv := NewSplineCanvas(ed, cam, l)
	if r := cfg.Editor.MarkerRadius; r > 0 {
		cv.PickRadius = 2 * r
	}
	status := widget.NewLabel("Ready")
	cv.OnStep = func(f render.Frame) {
		txt := fmt.Sprintf("%s  |  selected %d", ed.Mode(), len(g.Selected()))
		if a := ed.Constraint(); a != editor.AxisNone {
			txt += "  |  axis " + a.String()
		}
		if len(f.Diagnostics) > 0 {
			txt += "  |  " + f.Diagnostics[0].String()
		}
		if status.Text != txt {
			status.SetText(txt)
		}
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if its := IntentsForKey(cfg, string(ev.Name)); len(its) > 0 {
			cv.Queue(its...)
			return
		}
		if ev.Name == fyne.KeyF {
			cv.FitAll()
		}
	})
	w.SetContent(container.NewBorder(nil, status, nil, nil, cv))

	stop := make(chan struct{})
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				fyne.Do(func() { cv.Step() })
			}
		}
	}()

	w.SetCloseIntercept(func() {
		close(stop)
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		rec.LogSummary()
		w.Close()
	})
	w.ShowAndRun()
	return nil
}
