//go:build js && wasm

// Command dot-wasm boots the example application in the browser.
//
// The page provides <div id="app">. Its data-app attribute selects
// "counter" or "todos" (the default), and data-api="off" keeps the to-do
// app local-only.
package main

import (
	"syscall/js"

	"github.com/vango-dev/dot/internal/config"
	"github.com/vango-dev/dot/internal/demo"
	"github.com/vango-dev/dot/internal/logging"
	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/dom/jsdom"
	"github.com/vango-dev/dot/pkg/httpclient"
	"github.com/vango-dev/dot/pkg/storage"
	"github.com/vango-dev/dot/pkg/store"
)

func main() {
	logger := logging.New(config.LogConfig{Level: "info"}, nil)

	win := jsdom.Global()
	doc := win.Document()
	root := doc.GetElementByID("app")
	if root == nil {
		root = doc.CreateElement("div")
		root.SetAttribute("id", "app")
		doc.Body().AppendChild(root)
	}

	backend, err := storage.NewLocalStorage()
	if err != nil {
		logger.Warn("persistence unavailable", "error", err)
	}

	if attr(root, "data-app") == "counter" {
		opts := []store.Option{store.WithLogger(logger)}
		if backend != nil {
			opts = append(opts, store.WithPersistKey("dot-counter"), store.WithBackend(backend))
		}
		if err := demo.NewCounter(doc, root, opts...).Start(); err != nil {
			logger.Error("counter failed to start", "error", err)
		}
		select {}
	}

	opts := []demo.Option{demo.WithLogger(logger)}
	if backend != nil {
		opts = append(opts, demo.WithBackend(backend))
	}
	if attr(root, "data-api") != "off" {
		origin := js.Global().Get("location").Get("origin").String()
		opts = append(opts, demo.WithAPI(httpclient.New(origin+"/api")))
	}
	if err := demo.NewApp(win, root, opts...).Start(); err != nil {
		logger.Error("app failed to start", "error", err)
	}
	select {}
}

func attr(el dom.Element, name string) string {
	v, _ := el.GetAttribute(name)
	return v
}
