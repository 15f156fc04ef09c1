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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retrofit/pkg/anchor"
	"gitlab.com/tozd/go/errors"
)

// stubRule is a configurable rule for ordering and Apply tests
type stubRule struct {
	id       string
	requires []string
	provides []string
	already  bool
	found    bool
	result   Result
}

func (s *stubRule) ID() string                         { return s.id }
func (s *stubRule) Requires() []string                 { return s.requires }
func (s *stubRule) Provides() []string                 { return s.provides }
func (s *stubRule) AlreadyApplied(content string) bool { return s.already }
func (s *stubRule) Locate(content string) (anchor.Position, bool) {
	return anchor.Position{}, s.found
}
func (s *stubRule) Transform(content string, at anchor.Position) Result { return s.result }

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		rule        *stubRule
		wantContent string
		wantReason  Reason
		wantChanged bool
	}{
		{
			name:        "already_applied_short_circuits",
			rule:        &stubRule{id: "a", already: true, found: true, result: Result{Content: "x", Changed: true}},
			wantContent: "input",
			wantReason:  ReasonAlreadyApplied,
		},
		{
			name:        "missing_anchor_leaves_content",
			rule:        &stubRule{id: "a"},
			wantContent: "input",
			wantReason:  ReasonAnchorNotFound,
		},
		{
			name:        "unchanged_transform_restores_input",
			rule:        &stubRule{id: "a", found: true, result: Result{Content: "garbage", Reason: ReasonStructuralMismatch}},
			wantContent: "input",
			wantReason:  ReasonStructuralMismatch,
		},
		{
			name:        "applied",
			rule:        &stubRule{id: "a", found: true, result: applied("output")},
			wantContent: "output",
			wantReason:  ReasonApplied,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Apply(tt.rule, "input")
			assert.Equal(t, tt.wantContent, res.Content)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.wantChanged, res.Changed)
		})
	}
}

func TestNewSet(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantErr error
	}{
		{
			name: "provider_before_consumer",
			rules: []Rule{
				&stubRule{id: "imports", provides: []string{"apiCall"}},
				&stubRule{id: "rewrite", requires: []string{"apiCall"}},
			},
		},
		{
			name: "consumer_before_provider",
			rules: []Rule{
				&stubRule{id: "rewrite", requires: []string{"apiCall"}},
				&stubRule{id: "imports", provides: []string{"apiCall"}},
			},
			wantErr: ErrOrder,
		},
		{
			name: "external_requirement_is_allowed",
			rules: []Rule{
				&stubRule{id: "ui", requires: []string{"NextResponse"}},
			},
		},
		{
			name: "duplicate_ids",
			rules: []Rule{
				&stubRule{id: "same"},
				&stubRule{id: "same"},
			},
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet("test", tt.rules...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rules), set.Len())
		})
	}
}

func TestStockSetsAreOrdered(t *testing.T) {
	fe, err := Frontend(FrontendOptions{})
	require.NoError(t, err)
	var ids []string
	for _, r := range fe.Rules() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"import-injection", "icon-import", "state-injection", "call-rewrite", "conditional-ui"}, ids)

	be, err := Backend(BackendOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, be.Len())
	assert.Equal(t, ProfileBackend, be.Name())
}

func TestReorderedFrontendFailsValidation(t *testing.T) {
	opts := DefaultFrontendOptions()
	_, err := NewSet("reordered",
		&CallRewrite{opts: opts},
		&ImportInjection{opts: opts},
		&StateInjection{opts: opts},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrder))
}

func TestLookup(t *testing.T) {
	set, err := Lookup("", FrontendOptions{}, BackendOptions{})
	require.NoError(t, err)
	assert.Equal(t, ProfileFrontend, set.Name())

	set, err = Lookup(ProfileBackend, FrontendOptions{}, BackendOptions{})
	require.NoError(t, err)
	assert.Equal(t, ProfileBackend, set.Name())

	_, err = Lookup("mobile", FrontendOptions{}, BackendOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProfile))
}

func TestRulesReturnsCopy(t *testing.T) {
	set, err := Frontend(FrontendOptions{})
	require.NoError(t, err)
	rules := set.Rules()
	rules[0] = nil
	assert.NotNil(t, set.Rules()[0])
}

func runSet(t *testing.T, set *Set, content string) string {
	t.Helper()
	for _, r := range set.Rules() {
		res := Apply(r, content)
		require.NotEqual(t, ReasonStructuralMismatch, res.Reason, r.ID())
		if res.Changed {
			content = res.Content
		}
	}
	return content
}

func TestSetsKeepCRLFLineEndings(t *testing.T) {
	fe, err := Frontend(FrontendOptions{})
	require.NoError(t, err)
	be, err := Backend(BackendOptions{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		set   *Set
		input string
		want  []string
	}{
		{
			name: "component",
			set:  fe,
			input: "'use client'\r\n" +
				"import { useState } from 'react'\r\n\r\n" +
				"export default function Orders() {\r\n" +
				"  const [orders, setOrders] = useState([]) // rows\r\n\r\n" +
				"  async function load() {\r\n" +
				"    const res = await fetch('/api/orders', {\r\n" +
				"      method: 'GET',\r\n" +
				"    })\r\n" +
				"    setOrders(await res.json())\r\n" +
				"  }\r\n\r\n" +
				"  return (\r\n" +
				"    <div className=\"p-4\">\r\n" +
				"      <h1>Orders</h1>\r\n" +
				"    </div>\r\n" +
				"  )\r\n" +
				"}\r\n",
			want: []string{"apiCall('/api/orders', {", "timedOut && (", "useState([]) // rows\r\n"},
		},
		{
			name: "route_handler",
			set:  be,
			input: "import { NextResponse } from 'next/server'\r\n" +
				"import { prisma } from '@/lib/prisma'\r\n\r\n" +
				"export async function GET() {\r\n" +
				"  try {\r\n" +
				"    const users = await prisma.user.findMany()\r\n" +
				"    return NextResponse.json(users)\r\n" +
				"  } catch (error) {\r\n" +
				"    return NextResponse.json({ error: 'failed' }, { status: 500 })\r\n" +
				"  }\r\n" +
				"}\r\n",
			want: []string{"withPrismaTimeout(prisma.user.findMany(), 5000)", "error instanceof TimeoutError"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runSet(t, tt.set, tt.input)
			require.NotEqual(t, tt.input, out)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"), "bare line feed in output")
			assert.NotContains(t, out, "\r\r")
		})
	}
}
