// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build linux || darwin

package webview

import (
	"runtime"

	"github.com/ebitengine/purego"
)

var libraryName = "libwebview.so"

func init() {
	if runtime.GOOS == "darwin" {
		libraryName = "libwebview.dylib"
	}
}

// openLibrary loads libwebview with every symbol bound up front, so a broken
// build fails here rather than on first call.
func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}
