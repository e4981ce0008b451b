// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Example of LoadFS: the page comes from embed.FS (no files on disk).
package main

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	webview "github.com/YindSoft/webview-purego"
	"github.com/rs/zerolog"
)

//go:embed ui
var uiFiles embed.FS

func findLibDir() string {
	// Look for the library in the current dir, then the parent (for running from example_embed/).
	for _, dir := range []string{".", ".."} {
		for _, name := range []string{"libwebview.so", "libwebview.dylib", "webview.dll"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir
			}
		}
	}
	return ""
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.DebugLevel).With().Timestamp().Logger()

	w, err := webview.NewWithOptions(&webview.Options{LibDir: findLibDir(), Debug: true, Logger: &log})
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}

	w.Title("webview-purego - embed.FS example")
	w.Size(480, 320, webview.HintFixed)

	var counter atomic.Int64
	err = w.Bind("send", func(w *webview.WebView, req string) (string, error) {
		args, err := webview.ParseArgs(req)
		if err != nil || len(args) == 0 {
			return "", webview.Reject("send expects a message")
		}
		msg := args[0].String()
		log.Info().Str("msg", msg).Msg("message from page")
		switch strings.ToLower(msg) {
		case "greet":
			_ = w.Call("showMessage", "Hello from embedded Go!")
		case "count":
			_ = w.Call("updateCounter", counter.Add(1))
		default:
			_ = w.Call("showMessage", "Go received: "+msg)
		}
		return "true", nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("bind")
	}

	if err := w.LoadFS(uiFiles, "ui/index.html"); err != nil {
		log.Fatal().Err(err).Msg("LoadFS")
	}
	w.Show()
}
