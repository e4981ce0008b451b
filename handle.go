// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// stableRef is the opaque value the native library receives as the `void *arg`
// of webview_bind and webview_dispatch. It indexes a process-wide table instead
// of pointing at Go memory, so the collector can neither move nor free the
// closure behind it. Zero is never a valid ref.
type stableRef uintptr

var (
	refTable = xsync.NewMap[stableRef, any]()
	lastRef  atomic.Uintptr
)

// newStableRef boxes v and returns a fresh ref for it. The value stays reachable
// until release is called.
func newStableRef(v any) stableRef {
	ref := stableRef(lastRef.Add(1))
	refTable.Store(ref, v)
	return ref
}

// value returns the boxed value, or false once the ref has been released.
func (r stableRef) value() (any, bool) {
	return refTable.Load(r)
}

// release drops the boxed value. It reports whether the ref was still live, so a
// second release of the same ref is a no-op that returns false.
func (r stableRef) release() bool {
	_, loaded := refTable.LoadAndDelete(r)
	return loaded
}
