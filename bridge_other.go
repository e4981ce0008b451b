// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build !linux && !darwin && !windows

package webview

import (
	"fmt"
	"runtime"
)

const libraryName = "libwebview.so"

func openLibrary(string) (uintptr, error) {
	return 0, fmt.Errorf("%w: %s/%s", ErrUnsupported, runtime.GOOS, runtime.GOARCH)
}

func lookupSymbol(uintptr, string) (uintptr, error) {
	return 0, ErrUnsupported
}
