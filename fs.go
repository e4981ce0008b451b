// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// LoadFS sets the page content to mainFile read from fsys.
//
// The page is loaded from memory, so relative <link>, <script> and <img>
// references do not resolve; inline them or serve the files over HTTP and use
// Navigate instead.
//
// Example with embed.FS:
//
//	//go:embed ui
//	var uiFiles embed.FS
//	err := w.LoadFS(uiFiles, "ui/index.html")
func (w *WebView) LoadFS(fsys fs.FS, mainFile string) error {
	name := path.Clean(strings.TrimLeft(strings.ReplaceAll(mainFile, "\\", "/"), "/"))
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	w.HTML(string(data))
	return nil
}

// LoadFile sets the page content to the HTML file at filePath on disk.
func (w *WebView) LoadFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading HTML file %s: %w", filePath, err)
	}
	w.HTML(string(data))
	return nil
}
