// Package main is the entry point for the inkwell editor shell.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/editor"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/transform"
	"github.com/dshills/inkwell/internal/view"
	"github.com/dshills/inkwell/internal/view/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	schema := model.BasicSchema()
	bus := event.NewBus()

	var mu sync.Mutex
	ed, err := editor.NewFromConfig(schema, cfg, editor.WithBus(bus))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer ed.Close()

	if opts.watch && opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath, func(next *config.Config) {
			mu.Lock()
			defer mu.Unlock()
			// Rebuild around the live document; the registry is frozen per
			// editor instance, so rule toggles need a fresh assembly.
			replacement, err := editor.NewFromConfig(schema, next,
				editor.WithBus(bus), editor.WithDoc(ed.Doc()))
			if err != nil {
				return
			}
			cursor := ed.Cursor()
			ed.Close()
			ed = replacement
			_ = ed.SetCursor(cursor)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	syncer := view.New(view.Config{Host: term, Render: view.DefaultRender, Bus: bus})
	defer syncer.Teardown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Shutdown()
		os.Exit(1)
	}()

	redraw := func() {
		doc := ed.Doc()
		if err := syncer.Sync(doc); err != nil {
			return
		}
		term.Draw()
		term.ShowCursor(cursorCell(doc, ed.Cursor()))
	}
	redraw()

	var pasteBuf []rune
	pasting := false
	for {
		ev := term.PollEvent()
		mu.Lock()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case tev.Key() == tcell.KeyCtrlC, tev.Key() == tcell.KeyEscape:
				mu.Unlock()
				return 0
			case tev.Key() == tcell.KeyBackspace, tev.Key() == tcell.KeyBackspace2:
				if c := ed.Cursor(); c > 1 {
					_ = ed.Apply(func(tr *transform.Transaction) error {
						return tr.Delete(c-1, c)
					})
					_ = ed.SetCursor(c - 1)
				}
			case tev.Key() == tcell.KeyRune:
				if pasting {
					pasteBuf = append(pasteBuf, tev.Rune())
				} else {
					_ = ed.InsertText(string(tev.Rune()))
					_ = ed.Flush()
				}
			}
		case *tcell.EventPaste:
			if tev.Start() {
				pasting = true
				pasteBuf = pasteBuf[:0]
			} else {
				pasting = false
				_ = ed.Paste(string(pasteBuf))
			}
		case *tcell.EventResize:
			// Fall through to redraw.
		}
		redraw()
		mu.Unlock()
	}
}

// cursorCell maps a document position to a terminal cell: one top-level
// block per row. Nested blocks share their outer block's row.
func cursorCell(doc *model.Node, pos int) (int, int) {
	offset := 0
	for y, block := range doc.Content {
		size := block.NodeSize()
		if pos < offset+size {
			x := pos - offset - 1
			if x < 0 {
				// pos on the block's opening boundary.
				x = 0
			}
			return x, y
		}
		offset += size
	}
	return 0, len(doc.Content)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkwell - pattern-rule editor shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkwell [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Inkwell %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
