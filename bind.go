// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"errors"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reply is what a raw binding hands back to JavaScript. Status 0 resolves the
// Promise with Result parsed as JSON; any other status rejects it with Result
// as the reason, which must itself be valid JSON.
type Reply struct {
	Result string
	Status int
}

// RawFunc is the callback behind BindRaw. req is the JSON array of the call
// arguments, or nil when the native side passes none. Returning nil sends no
// reply at all and leaves the JavaScript Promise pending.
type RawFunc func(w *WebView, req *string) *Reply

// Func is the callback behind Bind. It receives the JSON array of the call
// arguments and returns the JSON result. Return a *RejectError to reject the
// JavaScript Promise.
type Func func(w *WebView, req string) (string, error)

// RejectError rejects the JavaScript Promise of a bound call. When JSON is set
// it is sent verbatim as the rejection value and Reason is ignored; otherwise
// Reason is sent as a JSON string.
type RejectError struct {
	Reason string
	JSON   string
}

// Reject returns a RejectError carrying a plain-text reason.
func Reject(reason string) error {
	return &RejectError{Reason: reason}
}

// RejectJSON returns a RejectError carrying a ready-made JSON value.
func RejectJSON(payload string) error {
	return &RejectError{JSON: payload}
}

func (e *RejectError) Error() string {
	if e.JSON != "" {
		return "webview: rejected: " + e.JSON
	}
	return "webview: rejected: " + e.Reason
}

// Payload is the rejection value passed to webview_return.
func (e *RejectError) Payload() string {
	if e.JSON != "" {
		return e.JSON
	}
	quoted, err := json.MarshalToString(e.Reason)
	if err != nil {
		quoted = `""`
	}
	return " " + quoted + " "
}

type bindContext struct {
	w    *WebView
	name string
	fn   RawFunc
}

// BindRaw makes fn callable from JavaScript as the global function name. The
// callback stays registered until Destroy, even after Unbind.
func (w *WebView) BindRaw(name string, fn RawFunc) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed.Load() {
		return ErrClosed
	}
	ref, err := w.register(&bindContext{w: w, name: name, fn: fn})
	if err != nil {
		return err
	}
	w.lib.bind(w.handle, name, ref)
	w.log.Debug().Str("name", name).Uint64("ref", uint64(ref)).Msg("bound")
	return nil
}

// Bind makes fn callable from JavaScript as the global function name.
//
// A nil error resolves the Promise with the returned JSON. A *RejectError (also
// when wrapped) rejects it. Any other error panics: it is a bug in fn, not
// something to report to the page.
func (w *WebView) Bind(name string, fn Func) error {
	return w.BindRaw(name, jsonAdapter(name, fn))
}

func jsonAdapter(name string, fn Func) RawFunc {
	return func(w *WebView, req *string) *Reply {
		var r string
		if req != nil {
			r = *req
		}
		res, err := fn(w, r)
		if err == nil {
			return &Reply{Result: res}
		}
		var reject *RejectError
		if errors.As(err, &reject) {
			return &Reply{Result: reject.Payload(), Status: 1}
		}
		panic(fmt.Errorf("webview: bound function %q: %w", name, err))
	}
}

// handleBind is invoked by the native library, on the loop thread, for each
// JavaScript call of a bound function.
func handleBind(seq string, req *string, ref stableRef) {
	v, ok := ref.value()
	if !ok {
		return
	}
	ctx, ok := v.(*bindContext)
	if !ok {
		return
	}
	w := ctx.w
	reply := ctx.fn(w, req)
	if reply == nil {
		return
	}
	if w.closed.Load() {
		w.log.Warn().Str("name", ctx.name).Str("seq", seq).Msg("reply after destroy dropped")
		return
	}
	w.lib.ret(w.handle, seq, int32(reply.Status), reply.Result)
}

var errorType = reflect.TypeFor[error]()

// BindFunc binds an ordinary Go function. Its parameters are decoded from the
// JavaScript arguments and its result is encoded as JSON. f may return nothing,
// a value, an error, or a value and an error. A returned error, a wrong
// argument count or an undecodable argument rejects the Promise with the error
// text, or with the payload of a *RejectError.
func (w *WebView) BindFunc(name string, f any) error {
	call, err := funcWrapper(f)
	if err != nil {
		return fmt.Errorf("bind %q: %w", name, err)
	}
	return w.BindRaw(name, func(_ *WebView, req *string) *Reply {
		var r string
		if req != nil {
			r = *req
		}
		res, err := call(r)
		if err != nil {
			return rejectReply(err)
		}
		out, err := json.MarshalToString(res)
		if err != nil {
			return rejectReply(err)
		}
		return &Reply{Result: out}
	})
}

// rejectReply keeps the payload of a *RejectError and quotes any other error text.
func rejectReply(err error) *Reply {
	var reject *RejectError
	if !errors.As(err, &reject) {
		reject = &RejectError{Reason: err.Error()}
	}
	return &Reply{Result: reject.Payload(), Status: 1}
}

// funcWrapper validates f once and returns a closure decoding a request array
// into its arguments.
func funcWrapper(f any) (func(req string) (any, error), error) {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func {
		return nil, errors.New("only functions can be bound")
	}
	t := v.Type()
	outCount := t.NumOut()
	switch {
	case outCount > 2:
		return nil, errors.New("function may only return a value, an error, or both")
	case outCount == 2 && !t.Out(1).Implements(errorType):
		return nil, errors.New("second return value must implement error")
	}
	returnsError := outCount == 1 && t.Out(0).Implements(errorType)
	numIn := t.NumIn()
	variadic := t.IsVariadic()

	return func(req string) (any, error) {
		var raw []jsoniter.RawMessage
		if req != "" {
			if err := json.UnmarshalFromString(req, &raw); err != nil {
				return nil, fmt.Errorf("decoding arguments: %w", err)
			}
		}
		if (!variadic && len(raw) != numIn) || (variadic && len(raw) < numIn-1) {
			return nil, fmt.Errorf("function arguments mismatch: want %d, got %d", numIn, len(raw))
		}
		args := make([]reflect.Value, len(raw))
		for i := range raw {
			var arg reflect.Value
			if variadic && i >= numIn-1 {
				arg = reflect.New(t.In(numIn - 1).Elem())
			} else {
				arg = reflect.New(t.In(i))
			}
			if err := json.Unmarshal(raw[i], arg.Interface()); err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			args[i] = arg.Elem()
		}

		res := v.Call(args)
		switch {
		case outCount == 0:
			return nil, nil
		case returnsError:
			return nil, asError(res[0])
		case outCount == 1:
			return res[0].Interface(), nil
		}
		if err := asError(res[1]); err != nil {
			return nil, err
		}
		return res[0].Interface(), nil
	}, nil
}

// asError converts a returned error value, treating a typed nil such as a nil
// *MyErr as success.
func asError(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface().(error)
}
