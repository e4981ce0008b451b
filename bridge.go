// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

func init() {
	// The native main loop (GTK, Cocoa, Win32) must run on the main OS thread.
	runtime.LockOSThread()
}

// library is the native surface used by WebView. nativeLib forwards to the
// loaded shared library; tests substitute a recording fake.
type library interface {
	create(debug int32, window uintptr) uintptr
	destroy(w uintptr)
	run(w uintptr)
	terminate(w uintptr)
	dispatch(w uintptr, ref stableRef)
	getWindow(w uintptr) uintptr
	setTitle(w uintptr, title string)
	setSize(w uintptr, width, height int32, hint Hint)
	navigate(w uintptr, url string)
	setHTML(w uintptr, html string)
	initJS(w uintptr, js string)
	eval(w uintptr, js string)
	bind(w uintptr, name string, ref stableRef)
	unbind(w uintptr, name string)
	ret(w uintptr, seq string, status int32, result string)
}

var (
	wvCreate    func(debug int32, window uintptr) uintptr
	wvDestroy   func(w uintptr)
	wvRun       func(w uintptr)
	wvTerminate func(w uintptr)
	wvDispatch  func(w uintptr, fn uintptr, arg uintptr)
	wvGetWindow func(w uintptr) uintptr
	wvSetTitle  func(w uintptr, title string)
	wvSetSize   func(w uintptr, width, height int32, hint int32)
	wvNavigate  func(w uintptr, url string)
	wvSetHTML   func(w uintptr, html string)
	wvInit      func(w uintptr, js string)
	wvEval      func(w uintptr, js string)
	wvBind      func(w uintptr, name string, fn uintptr, arg uintptr)
	wvUnbind    func(w uintptr, name string)
	wvReturn    func(w uintptr, seq string, status int32, result string)
)

// C function pointers handed to webview_bind and webview_dispatch. Created once;
// purego callbacks are a limited, never-freed resource.
var (
	bindTrampoline     uintptr
	dispatchTrampoline uintptr
)

var (
	bridgeOnce sync.Once
	bridgeErr  error
)

func initBridge(libDir string) error {
	bridgeOnce.Do(func() {
		if bridgeErr = loadLibrary(libDir); bridgeErr != nil {
			return
		}
		bindTrampoline = purego.NewCallback(func(seq, req, arg uintptr) uintptr {
			var reqStr *string
			if req != 0 {
				s := goString(req)
				reqStr = &s
			}
			handleBind(goString(seq), reqStr, stableRef(arg))
			return 0
		})
		dispatchTrampoline = purego.NewCallback(func(_, arg uintptr) uintptr {
			handleDispatch(stableRef(arg))
			return 0
		})
	})
	return bridgeErr
}

// libraryPath is the absolute path of the shared library inside libDir.
func libraryPath(libDir string) string {
	p := filepath.Join(libDir, libraryName)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func loadLibrary(libDir string) error {
	path := libraryPath(libDir)
	handle, err := openLibrary(path)
	if err != nil {
		return fmt.Errorf("webview: open %s: %w", path, err)
	}
	if err := resolveAllSymbols(handle); err != nil {
		return fmt.Errorf("webview: %s: %w", path, err)
	}
	return nil
}

func resolveAllSymbols(handle uintptr) error {
	for _, reg := range []struct {
		fptr any
		name string
	}{
		{&wvCreate, "webview_create"},
		{&wvDestroy, "webview_destroy"},
		{&wvRun, "webview_run"},
		{&wvTerminate, "webview_terminate"},
		{&wvDispatch, "webview_dispatch"},
		{&wvGetWindow, "webview_get_window"},
		{&wvSetTitle, "webview_set_title"},
		{&wvSetSize, "webview_set_size"},
		{&wvNavigate, "webview_navigate"},
		{&wvSetHTML, "webview_set_html"},
		{&wvInit, "webview_init"},
		{&wvEval, "webview_eval"},
		{&wvBind, "webview_bind"},
		{&wvUnbind, "webview_unbind"},
		{&wvReturn, "webview_return"},
	} {
		sym, err := lookupSymbol(handle, reg.name)
		if err != nil {
			return fmt.Errorf("missing symbol %s: %w", reg.name, err)
		}
		purego.RegisterFunc(reg.fptr, sym)
	}
	return nil
}

// nativeLib forwards to the symbols resolved by initBridge.
type nativeLib struct{}

func (nativeLib) create(debug int32, window uintptr) uintptr { return wvCreate(debug, window) }
func (nativeLib) destroy(w uintptr)                          { wvDestroy(w) }
func (nativeLib) run(w uintptr)                              { wvRun(w) }
func (nativeLib) terminate(w uintptr)                        { wvTerminate(w) }
func (nativeLib) getWindow(w uintptr) uintptr                { return wvGetWindow(w) }
func (nativeLib) setTitle(w uintptr, title string)           { wvSetTitle(w, title) }
func (nativeLib) navigate(w uintptr, url string)             { wvNavigate(w, url) }
func (nativeLib) setHTML(w uintptr, html string)             { wvSetHTML(w, html) }
func (nativeLib) initJS(w uintptr, js string)                { wvInit(w, js) }
func (nativeLib) eval(w uintptr, js string)                  { wvEval(w, js) }
func (nativeLib) unbind(w uintptr, name string)              { wvUnbind(w, name) }

func (nativeLib) dispatch(w uintptr, ref stableRef) {
	wvDispatch(w, dispatchTrampoline, uintptr(ref))
}

func (nativeLib) setSize(w uintptr, width, height int32, hint Hint) {
	wvSetSize(w, width, height, int32(hint))
}

func (nativeLib) bind(w uintptr, name string, ref stableRef) {
	wvBind(w, name, bindTrampoline, uintptr(ref))
}

func (nativeLib) ret(w uintptr, seq string, status int32, result string) {
	wvReturn(w, seq, status, result)
}

// goString copies a NUL-terminated C string. A zero pointer yields "".
func goString(c uintptr) string {
	// Dereference through the address so vet does not flag the uintptr conversion.
	ptr := *(*unsafe.Pointer)(unsafe.Pointer(&c))
	if ptr == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(ptr), n))
}
