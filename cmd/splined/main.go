/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"splined/internal/config"
	"splined/internal/crash"
	"splined/internal/editor"
	"splined/internal/export"
	applog "splined/internal/log"
	"splined/internal/scene"
	"splined/internal/spline"
	"splined/internal/telemetry"
	"splined/internal/trace"
	"splined/internal/ui"
	"splined/internal/version"
)

func usage() {
	fmt.Println("splined: closed Bezier spline editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  splined version|-v|--version            Show version")
	fmt.Println("  splined demo [-o out.svg|png|pdf]       Replay the built-in drag on the lens seed")
	fmt.Println("  splined replay <trace.json> [-o out]     Replay a recorded input trace")
	fmt.Println("  splined config [-write]                  Print the effective config (or write it)")
	fmt.Printf("  splined ui [%s]            Launch desktop UI (build with -tags fyne)\n", strings.Join(scene.SeedNames(), "|"))
}

// session exposes the active editor to crash reports.
type session struct{ ed *editor.Editor }

func (s *session) CrashState() map[string]string {
	if s.ed == nil {
		return nil
	}
	return s.ed.CrashState()
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	sess := &session{}
	defer crash.Recover(sess)

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config not fully loaded", slog.Any("err", err))
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l = applog.WithComponent("cli")

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("splined")
		fmt.Println(version.String())
	case "demo":
		fs := flag.NewFlagSet("demo", flag.ExitOnError)
		out := fs.String("o", "", "write the final frame to this file (.svg, .png, .pdf)")
		_ = fs.Parse(args[2:])
		exitOn(l, replay(os.Stdout, sess, cfg, trace.Demo(), *out))
	case "replay":
		fs := flag.NewFlagSet("replay", flag.ExitOnError)
		out := fs.String("o", "", "write the final frame to this file (.svg, .png, .pdf)")
		_ = fs.Parse(args[2:])
		if fs.NArg() < 1 {
			fmt.Println("replay requires <trace.json>")
			usage()
			os.Exit(2)
		}
		tr, err := trace.Load(fs.Arg(0))
		exitOn(l, err)
		exitOn(l, replay(os.Stdout, sess, cfg, tr, *out))
	case "config":
		fs := flag.NewFlagSet("config", flag.ExitOnError)
		write := fs.Bool("write", false, "save the effective config to the user config path")
		_ = fs.Parse(args[2:])
		exitOn(l, showConfig(os.Stdout, cfg, *write))
	case "ui":
		seed := "lens"
		if len(args) >= 3 {
			seed = args[2]
		}
		exitOn(l, ui.Run(cfg, seed))
	default:
		usage()
		os.Exit(2)
	}
}

func exitOn(l *slog.Logger, err error) {
	if err == nil {
		return
	}
	l.Error("command failed", slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

// replay runs tr, prints the resulting handle positions and curve paths, and
// exports the last frame when out is set.
func replay(w io.Writer, sess *session, cfg config.AppConfig, tr *trace.Trace, out string) error {
	opts, err := editor.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	rec := telemetry.New()
	opts.Recorder = rec
	res, err := trace.Run(tr, opts)
	if res.Editor != nil {
		sess.ed = res.Editor
	}
	if err != nil {
		return err
	}
	defer rec.LogSummary()

	fmt.Fprintf(w, "frames: %d  mode: %s\n", res.Frames, res.Editor.Mode())
	for _, b := range spline.BuildAll(res.Graph) {
		s, _ := res.Graph.Spline(b.Spline)
		fmt.Fprintf(w, "spline %s\n", b.Spline)
		for i, h := range s.Handles {
			if p, ok := res.Graph.Position(h); ok {
				fmt.Fprintf(w, "  handle %d: (%g, %g)\n", i, p.X, p.Y)
			}
		}
		if b.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", b.Err)
			continue
		}
		fmt.Fprintf(w, "  path: %s\n", export.PathData(b.Path))
	}
	for _, d := range res.Frame.Diagnostics {
		fmt.Fprintf(w, "diagnostic: %s\n", d)
	}

	if out == "" {
		return nil
	}
	if err := export.ExportFile(out, res.Frame, export.Options{}); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", out)
	return nil
}

func showConfig(w io.Writer, cfg config.AppConfig, write bool) error {
	if write {
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, _ := config.ConfigPath()
		fmt.Fprintf(w, "saved %s\n", path)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
