// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rule

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrOrder is returned when a rule runs before the rule providing what it needs
	ErrOrder = errors.Base("rule order violates declared dependencies")
	// ErrDuplicate is returned when two rules share an ID
	ErrDuplicate = errors.Base("duplicate rule id")
	// ErrUnknownProfile is returned by Lookup for names it does not know
	ErrUnknownProfile = errors.Base("unknown rule profile")
)

const (
	ProfileFrontend = "frontend"
	ProfileBackend  = "backend"
)

// 📚 Set is an ordered, validated list of rules
type Set struct {
	name  string
	rules []Rule
}

// NewSet validates declared dependencies and returns the set. A rule that
// requires an identifier must come after the first rule providing it.
// Identifiers no rule provides are expected to exist in the target files.
func NewSet(name string, rules ...Rule) (*Set, error) {
	providers := make(map[string]int)
	seen := make(map[string]bool)
	for i, r := range rules {
		if seen[r.ID()] {
			return nil, errors.Errorf("%w: %s", ErrDuplicate, r.ID())
		}
		seen[r.ID()] = true
		for _, p := range r.Provides() {
			if _, ok := providers[p]; !ok {
				providers[p] = i
			}
		}
	}

	for i, r := range rules {
		for _, req := range r.Requires() {
			p, ok := providers[req]
			if ok && p > i {
				return nil, errors.Errorf("%w: %s needs %q from %s, which runs later", ErrOrder, r.ID(), req, rules[p].ID())
			}
		}
	}

	return &Set{name: name, rules: rules}, nil
}

// Name returns the set's profile name
func (s *Set) Name() string { return s.name }

// Rules returns the rules in pipeline order
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules
func (s *Set) Len() int { return len(s.rules) }

// Frontend builds the component pipeline: imports, icons, state, call rewrite, UI.
func Frontend(opts FrontendOptions) (*Set, error) {
	opts = opts.withDefaults()
	return NewSet(ProfileFrontend,
		&ImportInjection{opts: opts},
		&IconImport{opts: opts},
		&StateInjection{opts: opts},
		&CallRewrite{opts: opts},
		&ConditionalUI{opts: opts},
	)
}

// Backend builds the route handler pipeline: imports, query wrapping, catch handling.
func Backend(opts BackendOptions) (*Set, error) {
	opts = opts.withDefaults()
	return NewSet(ProfileBackend,
		&TimeoutImport{opts: opts},
		&QueryWrap{opts: opts},
		&CatchTimeout{opts: opts},
	)
}

// Lookup resolves a profile name to its rule set.
func Lookup(profile string, fe FrontendOptions, be BackendOptions) (*Set, error) {
	switch profile {
	case ProfileFrontend, "":
		return Frontend(fe)
	case ProfileBackend:
		return Backend(be)
	default:
		return nil, errors.Errorf("%w: %q", ErrUnknownProfile, profile)
	}
}
