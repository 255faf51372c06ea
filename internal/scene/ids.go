/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// ID identifies an entity. It is a typeid string whose prefix encodes the
// entity kind. Ids are never reused, so an id that outlives its entity stays
// dangling.
type ID string

type Kind uint8

const (
	KindUnknown Kind = iota
	KindControlPoint
	KindHandle
	KindSpline
)

const (
	PrefixControlPoint = "cp"
	PrefixHandle       = "handle"
	PrefixSpline       = "spline"
)

func (k Kind) prefix() string {
	switch k {
	case KindControlPoint:
		return PrefixControlPoint
	case KindHandle:
		return PrefixHandle
	case KindSpline:
		return PrefixSpline
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case KindControlPoint:
		return "control-point"
	case KindHandle:
		return "handle"
	case KindSpline:
		return "spline"
	}
	return "unknown"
}

// NewID mints a fresh id for the given kind. It panics for KindUnknown.
func NewID(k Kind) ID {
	p := k.prefix()
	if p == "" {
		panic(fmt.Sprintf("scene: cannot mint id for kind %d", k))
	}
	return ID(typeid.MustGenerate(p).String())
}

// KindOf reports the entity kind encoded in id. Malformed ids and unknown
// prefixes yield KindUnknown.
func KindOf(id ID) Kind {
	parsed, err := typeid.Parse(string(id))
	if err != nil {
		return KindUnknown
	}
	switch parsed.Prefix() {
	case PrefixControlPoint:
		return KindControlPoint
	case PrefixHandle:
		return KindHandle
	case PrefixSpline:
		return KindSpline
	}
	return KindUnknown
}

func validate(id ID, want Kind) error {
	if got := KindOf(id); got != want {
		return fmt.Errorf("%w: id %q is a %s, want %s", ErrInvalidReference, id, got, want)
	}
	return nil
}
