// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// returned records one webview_return call.
type returned struct {
	Seq    string
	Status int32
	Result string
}

// fakeLib stands in for the native library. It records every call, and keeps
// the refs passed to bind and dispatch so tests can play the native side.
type fakeLib struct {
	mu sync.Mutex

	nextHandle uintptr
	failCreate bool

	calls      []string
	bound      map[string]stableRef
	dispatched []stableRef
	returns    []returned
	destroyed  int
	terminated int
}

func newFakeLib() *fakeLib {
	return &fakeLib{nextHandle: 0x1000, bound: make(map[string]stableRef)}
}

func (f *fakeLib) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeLib) create(debug int32, window uintptr) uintptr {
	f.record("create(%d,%#x)", debug, window)
	if f.failCreate {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextHandle += 0x10
	return f.nextHandle
}

func (f *fakeLib) destroy(w uintptr) {
	f.record("destroy")
	f.mu.Lock()
	f.destroyed++
	f.mu.Unlock()
}

func (f *fakeLib) run(uintptr) { f.record("run") }

func (f *fakeLib) terminate(uintptr) {
	f.mu.Lock()
	f.terminated++
	f.mu.Unlock()
}

func (f *fakeLib) dispatch(_ uintptr, ref stableRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, ref)
}

func (f *fakeLib) getWindow(w uintptr) uintptr {
	f.record("getWindow")
	return w + 1
}

func (f *fakeLib) setTitle(_ uintptr, title string) { f.record("setTitle(%s)", title) }

func (f *fakeLib) setSize(_ uintptr, width, height int32, hint Hint) {
	f.record("setSize(%d,%d,%d)", width, height, int32(hint))
}

func (f *fakeLib) navigate(_ uintptr, url string) { f.record("navigate(%s)", url) }
func (f *fakeLib) setHTML(_ uintptr, html string) { f.record("setHTML(%s)", html) }
func (f *fakeLib) initJS(_ uintptr, js string)    { f.record("init(%s)", js) }
func (f *fakeLib) eval(_ uintptr, js string)      { f.record("eval(%s)", js) }

func (f *fakeLib) bind(_ uintptr, name string, ref stableRef) {
	f.record("bind(%s)", name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bound[name] = ref
}

func (f *fakeLib) unbind(_ uintptr, name string) {
	f.record("unbind(%s)", name)
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bound, name)
}

func (f *fakeLib) ret(_ uintptr, seq string, status int32, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.returns = append(f.returns, returned{Seq: seq, Status: status, Result: result})
}

// call plays a JavaScript call of the bound function name.
func (f *fakeLib) call(t *testing.T, name, seq string, req *string) {
	t.Helper()
	f.mu.Lock()
	ref, ok := f.bound[name]
	f.mu.Unlock()
	require.True(t, ok, "%q is not bound", name)
	handleBind(seq, req, ref)
}

// runDispatched runs every pending dispatch once, as the loop would.
func (f *fakeLib) runDispatched() int {
	f.mu.Lock()
	pending := f.dispatched
	f.dispatched = nil
	f.mu.Unlock()
	for _, ref := range pending {
		handleDispatch(ref)
	}
	return len(pending)
}

func (f *fakeLib) snapshot() ([]string, []returned) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...), append([]returned(nil), f.returns...)
}

// newTestWebView creates a WebView on a fake library and destroys it at cleanup.
func newTestWebView(t *testing.T) (*WebView, *fakeLib) {
	t.Helper()
	lib := newFakeLib()
	w, err := newWebView(lib, false, 0, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(w.Destroy)
	return w, lib
}

func strPtr(s string) *string { return &s }
