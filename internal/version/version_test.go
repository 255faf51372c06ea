/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package version

import "testing"

func TestVersionString(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
	Version, Commit = "1.2.3", ""
	if s := String(); s != "1.2.3" {
		t.Fatalf("got %q", s)
	}
	Commit = "abc123"
	if s := String(); s != "1.2.3 (abc123)" {
		t.Fatalf("got %q", s)
	}
}
