package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/caret/internal/app"
	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/logging"
	"github.com/dshills/caret/internal/terminal"
)

// sampleDocument is edited when no --doc is given.
const sampleDocument = `{"tag": "div", "attrs": {"contenteditable": "true"}, "children": [
	{"tag": "h1", "children": [{"text": "Caret"}]},
	{"tag": "p", "children": [
		{"text": "Move with the arrow keys, "},
		{"tag": "b", "children": [{"text": "extend with shift"}]},
		{"text": " and jump with page up and down. "},
		{"tag": "i", "children": [{"text": "Drag, double click or triple click"}]},
		{"text": " to select with the mouse."}
	]},
	{"tag": "ul", "children": [
		{"tag": "li", "children": [{"text": "Home and End move along the line"}]},
		{"tag": "li", "children": [{"tag": "span", "style": {"color": "red"}, "children": [{"text": "Colored text colors the caret"}]}]}
	]},
	{"tag": "p", "children": [{"text": "Press Escape to quit."}]}
]}`

type options struct {
	configPath string
	docPath    string
	logPath    string
	logLevel   string
}

func newRootCmd(version string) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "caretdemo",
		Short:        "Edit a document's selection in the terminal",
		Long:         `caretdemo lays out a document in the terminal and drives its caret and selection with the keyboard and mouse.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	cmd.Flags().StringVarP(&opts.docPath, "doc", "d", "", "document to edit as JSON (default: built-in sample)")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "log file (default: no logging)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config)")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logPath != "" {
		cfg.Logging.File = opts.logPath
	}
	logger, closer, err := logging.Open(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()

	doc, err := loadDocument(opts.docPath)
	if err != nil {
		return err
	}

	lc := cfg.LayoutConfig()
	term, err := terminal.Open(terminal.Metrics{
		CellWidth:  lc.CharWidth,
		CellHeight: lc.FontSize * lc.LineHeight,
	}, cfg.MouseConfig())
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer term.Close()

	a, err := app.New(cfg, doc, term, app.WithLogger(logger))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.configPath != "" {
		go func() {
			err := config.Watch(ctx, opts.configPath, a.Reload)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	logger.Info("started", "doc", opts.docPath, "config", opts.configPath)
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadDocument reads a JSON document, or the sample when path is empty.
func loadDocument(path string) (*dom.Node, error) {
	data := []byte(sampleDocument)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
	}
	doc, err := dom.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return doc, nil
}
