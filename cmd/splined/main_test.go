/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splined/internal/config"
	"splined/internal/trace"
)

func TestReplayDemo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.svg")
	var buf bytes.Buffer
	sess := &session{}
	if err := replay(&buf, sess, config.Defaults(), trace.Demo(), out); err != nil {
		t.Fatalf("replay: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"frames: 7", "mode: select", "handle 0:", "handle 1:", "path: M", "wrote "} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if sess.CrashState()["mode"] != "select" {
		t.Fatalf("session state = %v", sess.CrashState())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("not an svg: %.80s", data)
	}
}

func TestReplayRejectsBadConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Editor.CancelPolicy = "explode"
	if err := replay(&bytes.Buffer{}, &session{}, cfg, trace.Demo(), ""); err == nil {
		t.Fatal("expected config error")
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := showConfig(&buf, config.Defaults(), false); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(buf.String(), "cancel_policy: revert") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	buf.Reset()
	if err := showConfig(&buf, config.Defaults(), true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}

func TestSessionWithoutEditor(t *testing.T) {
	if st := (&session{}).CrashState(); st != nil {
		t.Fatalf("state = %v, want nil", st)
	}
}
