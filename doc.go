// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package webview binds the native webview library (libwebview) to Go without cgo.
//
// The shared library is loaded at runtime with purego. Every window operation is
// forwarded to it; this package only owns the native handle and bridges Go
// closures across the C callback boundary.
//
// Basic usage:
//
//	import webview "github.com/YindSoft/webview-purego"
//
//	w, err := webview.New(false)
//	if err != nil { ... }
//	w.Title("Hello")
//	w.Size(800, 600, webview.HintNone)
//
//	// JS: add(2, 3).then(console.log) prints 5
//	w.Bind("add", func(w *webview.WebView, req string) (string, error) {
//	    args, err := webview.ParseArgs(req)
//	    if err != nil || len(args) != 2 {
//	        return "", webview.Reject("add expects two numbers")
//	    }
//	    return strconv.FormatInt(args[0].Int()+args[1].Int(), 10), nil
//	})
//	w.HTML(`<button onclick="add(2,3).then(alert)">add</button>`)
//	w.Show() // runs the main loop, then destroys the webview
//
// Bound functions receive the JavaScript arguments as a raw JSON array string.
// Returning a nil error resolves the JavaScript Promise with the result parsed as
// JSON; returning a [RejectError] (see [Reject] and [RejectJSON]) rejects it.
// [WebView.BindRaw] exposes the underlying (result, status) protocol, and
// [WebView.BindFunc] decodes arguments into a typed Go function.
//
// Threading: the native main loop must run on the main OS thread, which this
// package locks in init. All methods must be called from that thread, except
// [WebView.Dispatch] and [WebView.Terminate], which are safe from any goroutine.
//
// Requirements: the webview shared library (webview.dll on Windows,
// libwebview.so on Linux, libwebview.dylib on macOS) must be present next to the
// executable, in the working directory, or in [Options.LibDir].
package webview
