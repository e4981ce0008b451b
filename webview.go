// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog"
)

var (
	// ErrCreate is returned when webview_create yields a null handle.
	ErrCreate = errors.New("webview: failed to create webview")

	// ErrClosed is returned by Bind and Dispatch after Destroy.
	ErrClosed = errors.New("webview: webview is destroyed")

	// ErrUnsupported is returned on platforms without a native webview backend.
	ErrUnsupported = errors.New("webview: unsupported platform")
)

// Hint configures how Size treats width and height. The values are the
// WEBVIEW_HINT_* constants of webview.h and are passed through unchanged.
type Hint int32

const (
	HintNone  Hint = 0 // Width and height are the default size.
	HintMin   Hint = 1 // Width and height are minimum bounds.
	HintMax   Hint = 2 // Width and height are maximum bounds.
	HintFixed Hint = 3 // The window cannot be resized by the user.
)

func (h Hint) String() string {
	switch h {
	case HintNone:
		return "none"
	case HintMin:
		return "min"
	case HintMax:
		return "max"
	case HintFixed:
		return "fixed"
	}
	return fmt.Sprintf("Hint(%d)", int32(h))
}

// Options for creating a webview. All fields are optional.
type Options struct {
	Debug  bool            // Enable developer tools where the platform supports them.
	LibDir string          // Directory containing the webview shared library. Defaults to the working directory, then the executable's directory.
	Window unsafe.Pointer  // Parent native window (GtkWindow, NSWindow or HWND) to embed into. Nil creates a new window.
	Logger *zerolog.Logger // Receives debug events. Defaults to a no-op logger.
}

// WebView owns one native webview instance and the Go callbacks bound to it.
type WebView struct {
	lib    library
	handle uintptr
	log    zerolog.Logger

	refs *disposeList

	// mu is held for writing by Destroy and for reading by the calls allowed off
	// the loop thread, so they never reach a destroyed handle.
	mu          sync.RWMutex
	closed      atomic.Bool
	destroyOnce sync.Once
}

// New creates a webview in a new window. If debug is true, developer tools are
// enabled when the platform supports them.
func New(debug bool) (*WebView, error) {
	return NewWithOptions(&Options{Debug: debug})
}

// NewWithOptions loads the native library on first use and creates a webview.
// No instance is returned when creation fails.
func NewWithOptions(opts *Options) (*WebView, error) {
	libDir, debug, window, log := resolveOpts(opts)
	if err := initBridge(libDir); err != nil {
		return nil, err
	}
	return newWebView(nativeLib{}, debug, window, log)
}

func newWebView(lib library, debug bool, window uintptr, log zerolog.Logger) (*WebView, error) {
	d := int32(0)
	if debug {
		d = 1
	}
	h := lib.create(d, window)
	if h == 0 {
		return nil, ErrCreate
	}
	w := &WebView{
		lib:    lib,
		handle: h,
		log:    log.With().Uint64("webview", uint64(h)).Logger(),
		refs:   newDisposeList(),
	}
	w.log.Debug().Bool("debug", debug).Msg("webview created")
	return w, nil
}

func resolveOpts(opts *Options) (string, bool, uintptr, zerolog.Logger) {
	log := zerolog.Nop()
	var (
		libDir string
		debug  bool
		window uintptr
	)
	if opts != nil {
		libDir = opts.LibDir
		debug = opts.Debug
		window = uintptr(opts.Window)
		if opts.Logger != nil {
			log = *opts.Logger
		}
	}
	if libDir == "" {
		libDir, _ = os.Getwd()
		if _, err := os.Stat(filepath.Join(libDir, libraryName)); err != nil {
			if exe, _ := os.Executable(); exe != "" {
				libDir = filepath.Dir(exe)
			}
		}
	}
	return libDir, debug, window, log
}

// Handle returns the native webview_t pointer.
func (w *WebView) Handle() uintptr {
	return w.handle
}

// Window returns the native window: a GtkWindow, NSWindow or HWND pointer
// depending on the backend.
func (w *WebView) Window() unsafe.Pointer {
	if w.closed.Load() {
		return nil
	}
	p := w.lib.getWindow(w.handle)
	return *(*unsafe.Pointer)(unsafe.Pointer(&p))
}

// Title updates the title of the native window. Must be called from the UI thread.
func (w *WebView) Title(v string) {
	if w.closed.Load() {
		return
	}
	w.lib.setTitle(w.handle, v)
}

// URL navigates to the given URL. Same as Navigate.
func (w *WebView) URL(v string) {
	w.Navigate(v)
}

// Navigate navigates the webview to url. A data URI such as
// "data:text/html,<h1>Hi</h1>" works as well; the native side re-encodes it.
func (w *WebView) Navigate(url string) {
	if w.closed.Load() {
		return
	}
	w.lib.navigate(w.handle, url)
}

// HTML sets the page content directly.
func (w *WebView) HTML(v string) {
	if w.closed.Load() {
		return
	}
	w.lib.setHTML(w.handle, v)
}

// Size updates the size of the native window. See the Hint constants.
func (w *WebView) Size(width, height int, hint Hint) {
	if w.closed.Load() {
		return
	}
	w.lib.setSize(w.handle, int32(width), int32(height), hint)
}

// Init injects js to run on every new page, before window.onload.
func (w *WebView) Init(js string) {
	if w.closed.Load() {
		return
	}
	w.lib.initJS(w.handle, js)
}

// Eval evaluates js asynchronously. The result of the expression is ignored;
// use Bind to get values back from the page.
func (w *WebView) Eval(js string) {
	if w.closed.Load() {
		return
	}
	w.lib.eval(w.handle, js)
}

// Unbind removes the global JS function registered under name. The Go callback
// stays registered until Destroy.
func (w *WebView) Unbind(name string) {
	if w.closed.Load() {
		return
	}
	w.lib.unbind(w.handle, name)
	w.log.Debug().Str("name", name).Msg("unbound")
}

// Start runs the main loop until Terminate is called. It blocks. After it
// returns the webview must be destroyed.
func (w *WebView) Start() {
	if w.closed.Load() {
		return
	}
	w.lib.run(w.handle)
}

// Terminate stops the main loop. Safe to call from any goroutine.
func (w *WebView) Terminate() {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed.Load() {
		return
	}
	w.lib.terminate(w.handle)
}

// Show runs the main loop and destroys the webview once it exits, also when it
// exits by panic.
func (w *WebView) Show() {
	defer w.Destroy()
	w.Start()
}

// Destroy closes the native window and releases every bound and dispatched
// callback. Calling it again is a no-op; no other method may be used afterwards.
func (w *WebView) Destroy() {
	w.destroyOnce.Do(func() {
		w.mu.Lock()
		w.closed.Store(true)
		w.lib.destroy(w.handle)
		w.mu.Unlock()

		n := w.refs.drain()
		w.log.Debug().Int("released", n).Msg("webview destroyed")
	})
}

// register boxes ctx and records it before the native side can see its ref.
func (w *WebView) register(ctx any) (stableRef, error) {
	ref := newStableRef(ctx)
	if err := w.refs.add(ref); err != nil {
		ref.release()
		return 0, err
	}
	return ref, nil
}
