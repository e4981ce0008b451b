// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

type dispatchContext struct {
	w  *WebView
	fn func(w *WebView)
}

// Dispatch schedules fn to run once on the loop thread, at the next main loop
// iteration. Safe to call from any goroutine. After Destroy it returns
// ErrClosed and fn never runs.
func (w *WebView) Dispatch(fn func(w *WebView)) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed.Load() {
		return ErrClosed
	}
	ref, err := w.register(&dispatchContext{w: w, fn: fn})
	if err != nil {
		return err
	}
	w.lib.dispatch(w.handle, ref)
	return nil
}

// handleDispatch is invoked by the native library on the loop thread. The
// context stays registered until Destroy releases it.
func handleDispatch(ref stableRef) {
	v, ok := ref.value()
	if !ok {
		return
	}
	if ctx, ok := v.(*dispatchContext); ok {
		ctx.fn(ctx.w)
	}
}
