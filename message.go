// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseArgs splits the request string received by a bound function into its
// arguments. req must be a JSON array, as produced by the native library.
func ParseArgs(req string) ([]gjson.Result, error) {
	req = strings.TrimSpace(req)
	if req == "" {
		return nil, nil
	}
	if !gjson.Valid(req) {
		return nil, errors.New("request is not valid JSON")
	}
	res := gjson.Parse(req)
	if !res.IsArray() {
		return nil, fmt.Errorf("request %.32q is not an array", req)
	}
	return res.Array(), nil
}

// Call invokes the global JavaScript function fn with args serialized as JSON.
// Like Eval it is fire-and-forget and must run on the loop thread; use Dispatch
// from other goroutines.
func (w *WebView) Call(fn string, args ...any) error {
	js, err := callExpr(fn, args...)
	if err != nil {
		return fmt.Errorf("Call: %w", err)
	}
	w.Eval(js)
	return nil
}

// callExpr renders `if(typeof fn==='function')fn(a1,a2,...);`.
func callExpr(fn string, args ...any) (string, error) {
	var sb strings.Builder
	sb.WriteString("if(typeof ")
	sb.WriteString(fn)
	sb.WriteString("==='function')")
	sb.WriteString(fn)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}
		sb.Write(b)
	}
	sb.WriteString(");")
	return sb.String(), nil
}
