// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs(`[2, "two", {"n":2}, [2], null]`)
	require.NoError(t, err)
	require.Len(t, args, 5)
	assert.Equal(t, int64(2), args[0].Int())
	assert.Equal(t, "two", args[1].String())
	assert.Equal(t, int64(2), args[2].Get("n").Int())
	assert.True(t, args[3].IsArray())
	assert.Equal(t, "null", args[4].Raw)

	args, err = ParseArgs("  ")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestParseArgs_Rejects(t *testing.T) {
	_, err := ParseArgs(`{"a":1}`)
	assert.ErrorContains(t, err, "not an array")

	_, err = ParseArgs(`[1,`)
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestCall(t *testing.T) {
	w, lib := newTestWebView(t)

	require.NoError(t, w.Call("app.update", map[string]int{"hp": 80}, "a\"b", 3))
	require.NoError(t, w.Call("refresh"))

	calls, _ := lib.snapshot()
	assert.Equal(t, []string{
		"create(0,0x0)",
		`eval(if(typeof app.update==='function')app.update({"hp":80},"a\"b",3);)`,
		`eval(if(typeof refresh==='function')refresh();)`,
	}, calls)
}

func TestCall_UnencodableArgument(t *testing.T) {
	w, lib := newTestWebView(t)

	err := w.Call("f", make(chan int))
	assert.Error(t, err)
	calls, _ := lib.snapshot()
	assert.Len(t, calls, 1, "nothing is evaluated when encoding fails")
}
