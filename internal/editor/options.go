/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"

	"splined/internal/config"
	"splined/internal/render"
)

// OptionsFromConfig derives editor options from the user configuration.
// Logger and Recorder are left for the caller.
func OptionsFromConfig(cfg config.AppConfig) (Options, error) {
	policy, err := ParseCancelPolicy(cfg.Editor.CancelPolicy)
	if err != nil {
		return Options{}, err
	}
	st, err := render.ParseStyle(cfg.Style, cfg.Editor.MarkerRadius)
	if err != nil {
		return Options{}, fmt.Errorf("style: %w", err)
	}
	return Options{CancelPolicy: policy, Style: st}, nil
}
