// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	webview "github.com/YindSoft/webview-purego"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

const page = `<!doctype html>
<html>
<body style="font-family: sans-serif">
  <h1 id="clock">--:--:--</h1>
  <p>
    <input id="a" type="number" value="2"> +
    <input id="b" type="number" value="3">
    <button onclick="doAdd()">=</button>
    <span id="sum"></span>
  </p>
  <button onclick="greet('').catch(e => show(e))">greet nobody</button>
  <button onclick="quit()">quit</button>
  <pre id="out"></pre>
  <script>
    function show(v) { document.getElementById('out').textContent = JSON.stringify(v); }
    function tick(t) { document.getElementById('clock').textContent = t; }
    function doAdd() {
      const a = Number(document.getElementById('a').value);
      const b = Number(document.getElementById('b').value);
      add(a, b).then(s => document.getElementById('sum').textContent = s).catch(show);
    }
  </script>
</body>
</html>`

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "webview-example",
		Short:        "Open a webview window with a few Go bindings",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), v)
		},
	}

	f := cmd.Flags()
	f.Bool("debug", false, "enable developer tools")
	f.String("lib-dir", "", "directory containing the webview shared library")
	f.String("title", "webview-purego example", "window title")
	f.Int("width", 800, "window width")
	f.Int("height", 600, "window height")
	f.String("url", "", "navigate to this URL instead of the built-in page")
	f.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	f.String("log-file", "", "also write JSON logs to this file, rotated")

	v.SetEnvPrefix("WEBVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func newLogger(v *viper.Viper) zerolog.Logger {
	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if path := v.GetString("log-file"); path != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
		})
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func run(ctx context.Context, v *viper.Viper) error {
	log := newLogger(v)

	w, err := webview.NewWithOptions(&webview.Options{
		Debug:  v.GetBool("debug"),
		LibDir: v.GetString("lib-dir"),
		Logger: &log,
	})
	if err != nil {
		return fmt.Errorf("creating webview: %w", err)
	}
	defer w.Destroy()

	w.Title(v.GetString("title"))
	w.Size(v.GetInt("width"), v.GetInt("height"), webview.HintNone)

	if err := bindAll(w, log); err != nil {
		return err
	}

	if u := v.GetString("url"); u != "" {
		w.Navigate(u)
	} else {
		w.HTML(page)
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return clock(ctx, w)
	})

	w.Start()
	cancel()
	return g.Wait()
}

func bindAll(w *webview.WebView, log zerolog.Logger) error {
	if err := w.Bind("add", func(_ *webview.WebView, req string) (string, error) {
		args, err := webview.ParseArgs(req)
		if err != nil || len(args) != 2 {
			return "", webview.Reject("add expects two numbers")
		}
		return strconv.FormatFloat(args[0].Float()+args[1].Float(), 'g', -1, 64), nil
	}); err != nil {
		return err
	}
	if err := w.BindFunc("greet", func(name string) (string, error) {
		if name == "" {
			return "", webview.RejectJSON(`{"code":"EMPTY_NAME","message":"name required"}`)
		}
		return "Hello, " + name, nil
	}); err != nil {
		return err
	}
	return w.BindRaw("quit", func(w *webview.WebView, _ *string) *webview.Reply {
		log.Info().Msg("quit requested from page")
		w.Terminate()
		return nil
	})
}

// clock pushes the time into the page once per second until ctx is done.
func clock(ctx context.Context, w *webview.WebView) error {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			err := w.Dispatch(func(w *webview.WebView) {
				_ = w.Call("tick", now.Format(time.TimeOnly))
			})
			if err != nil {
				// Destroyed while the ticker was pending.
				return nil
			}
		}
	}
}
