package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImports(t *testing.T) {
	content := `'use client'

import React, { useState, useEffect as useMount } from 'react'
import * as icons from "lucide-react";
import type { Order } from '@/types'
import './globals.css'
import {
  apiCall,
  type ApiResult,
} from '@/lib/api-client'
// import { hidden } from 'nope'
const lazy = import('./lazy')
`
	imps := Imports(content)
	require.Len(t, imps, 5)

	react := imps[0]
	assert.Equal(t, "react", react.Module)
	assert.Equal(t, byte('\''), react.Quote)
	assert.Equal(t, "React", react.Default)
	assert.True(t, react.HasList())
	assert.True(t, react.Binds("useState"))
	assert.True(t, react.Binds("useMount"))
	assert.False(t, react.Binds("useEffect"), "aliased names bind their local name")

	ns := imps[1]
	assert.Equal(t, "icons", ns.Namespace)
	assert.Equal(t, byte('"'), ns.Quote)
	assert.Equal(t, `import * as icons from "lucide-react";`, content[ns.Start:ns.End])
	assert.False(t, ns.HasList())

	typeOnly := imps[2]
	assert.True(t, typeOnly.TypeOnly)
	assert.False(t, typeOnly.Binds("Order"), "type imports bind no values")
	assert.False(t, typeOnly.HasList())

	sideEffect := imps[3]
	assert.Equal(t, "./globals.css", sideEffect.Module)
	assert.Empty(t, sideEffect.Named)

	client := imps[4]
	assert.True(t, client.Binds("apiCall"))
	assert.False(t, client.Binds("ApiResult"), "inline type specifiers bind no values")

	assert.False(t, Bound(imps, "hidden"), "commented imports do not bind")
	assert.True(t, Bound(imps, "icons"))

	found, ok := FindImport(imps, "@/lib/api-client")
	require.True(t, ok)
	assert.Equal(t, client.Start, found.Start)

	_, ok = FindImport(imps, "@/types")
	assert.False(t, ok, "type-only imports are not merge targets")

	first, ok := FirstImport(content)
	require.True(t, ok)
	assert.Equal(t, react.Start, first.Start)

	last, ok := LastImport(content)
	require.True(t, ok)
	assert.Equal(t, client.Start, last.Start)
}

func TestImportsNone(t *testing.T) {
	assert.Empty(t, Imports("const important = 1\nexport {}\n"))

	_, ok := FirstImport("")
	assert.False(t, ok)
	_, ok = LastImport("")
	assert.False(t, ok)
}
