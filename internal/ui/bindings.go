/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"strings"

	"splined/internal/config"
	"splined/internal/editor"
)

// keyAliases folds toolkit key names onto the names used in config bindings.
var keyAliases = map[string]string{
	"return":   "enter",
	"kp_enter": "enter",
	"esc":      "escape",
}

// KeyName normalizes a toolkit key name for binding lookup.
func KeyName(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if a, ok := keyAliases[k]; ok {
		return a
	}
	return k
}

// IntentsForKey returns the intents bound to key, in binding order. Unknown
// intent names in the configuration are skipped.
func IntentsForKey(cfg config.AppConfig, key string) []editor.Intent {
	var out []editor.Intent
	for _, name := range cfg.KeysFor(KeyName(key)) {
		it, err := editor.ParseIntent(name)
		if err != nil {
			continue
		}
		out = append(out, it)
	}
	return out
}
