package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgonek/highlight/blocks"
	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/editor"
	"github.com/rgonek/highlight/fontsize"
	"github.com/rgonek/highlight/highlight"
	"github.com/rgonek/highlight/mdconverter"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetLossy    = "lossy"
)

var errUsage = errors.New("usage")

func markdownPresetConfig(preset string) (mdconverter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return mdconverter.Config{}, nil
	case presetStrict:
		return mdconverter.Config{
			UnknownNodes: mdconverter.UnknownNodesError,
			InlineTags:   []string{"mark", "span"},
		}, nil
	case presetLossy:
		return mdconverter.Config{
			ImageStyle:   mdconverter.ImageStyleIgnore,
			UnknownNodes: mdconverter.UnknownNodesSkip,
		}, nil
	default:
		return mdconverter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, lossy)", preset)
	}
}

type options struct {
	configFile  string
	optionsFile string
	markdown    bool
	preset      string
	apply       string
	clear       bool
	modelOutput bool
	toMarkdown  bool
	verbose     bool
	input       string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("hlc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "Editor settings file (yaml, json or toml)")
	fs.StringVar(&opts.optionsFile, "options", "", "YAML file with highlight options")
	fs.BoolVar(&opts.markdown, "markdown", false, "Read the input as Markdown instead of HTML")
	fs.StringVar(&opts.preset, "preset", presetBalanced, "Markdown preset: balanced|strict|lossy")
	fs.StringVar(&opts.apply, "apply", "", "Highlight the whole document with this option model value")
	fs.BoolVar(&opts.clear, "clear", false, "Remove every highlight from the document")
	fs.BoolVar(&opts.modelOutput, "model", false, "Print the model instead of HTML")
	fs.BoolVar(&opts.toMarkdown, "to-markdown", false, "Print the document as Markdown instead of HTML")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log editor activity to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hlc [options] <input-file>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return options{}, errUsage
	}
	if opts.apply != "" && opts.clear {
		return options{}, errors.New("-apply and -clear are mutually exclusive")
	}
	if opts.modelOutput && opts.toMarkdown {
		return options{}, errors.New("-model and -to-markdown are mutually exclusive")
	}
	opts.input = fs.Arg(0)
	return opts, nil
}

func newLogger(verbose bool, stderr io.Writer) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}

func newEditor(opts options, logger *zap.SugaredLogger) (*editor.Editor, error) {
	cfg := editor.NewConfig()
	if opts.configFile != "" {
		if err := cfg.ReadConfigFile(opts.configFile); err != nil {
			return nil, err
		}
	}

	if opts.optionsFile != "" {
		f, err := os.Open(opts.optionsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open options file: %w", err)
		}
		defer f.Close()

		highlightOptions, err := highlight.LoadOptions(f)
		if err != nil {
			return nil, err
		}
		cfg.Set(highlight.ConfigKey, optionsToConfig(highlightOptions))
	}

	editorOpts := []editor.Option{
		editor.WithConfigStore(cfg),
		editor.WithLogger(logger),
		editor.WithPlugins(blocks.Paragraph{}, blocks.Image{}, fontsize.Plugin{}, &highlight.Editing{}),
	}
	if opts.markdown && !cfg.IsSet(editor.MarkdownConfigKey) {
		mdCfg, err := markdownPresetConfig(opts.preset)
		if err != nil {
			return nil, err
		}
		editorOpts = append(editorOpts, editor.WithMarkdownConfig(mdCfg))
	}

	return editor.New(editorOpts...)
}

// optionsToConfig turns options into plain values the config store decodes
// like any other source.
func optionsToConfig(opts []highlight.Option) []any {
	out := make([]any, 0, len(opts))
	for _, opt := range opts {
		out = append(out, map[string]any{
			"model": opt.Model,
			"class": opt.Class,
			"title": opt.Title,
			"color": opt.Color,
			"type":  string(opt.Type),
		})
	}
	return out
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		}
		return 1
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return 1
	}

	logger := newLogger(opts.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	e, err := newEditor(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}

	if opts.markdown {
		err = e.SetMarkdown(string(data))
	} else {
		err = e.SetData(string(data))
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error loading document: %v\n", err)
		return 1
	}
	loadWarnings := e.Warnings()

	if opts.apply != "" || opts.clear {
		if err := e.SelectAll(); err != nil {
			fmt.Fprintf(stderr, "Error selecting document: %v\n", err)
			return 1
		}
		if err := e.Execute(highlight.CommandName, editor.Params{Value: opts.apply}); err != nil {
			fmt.Fprintf(stderr, "Error applying highlight: %v\n", err)
			return 1
		}
	}

	printWarnings(stderr, loadWarnings)

	switch {
	case opts.modelOutput:
		fmt.Fprintln(stdout, e.ModelData())
	case opts.toMarkdown:
		markdown, err := e.Markdown()
		if err != nil {
			fmt.Fprintf(stderr, "Error exporting Markdown: %v\n", err)
			return 1
		}
		printWarnings(stderr, e.Warnings())
		fmt.Fprint(stdout, markdown)
	default:
		fmt.Fprintln(stdout, e.Data())
	}
	return 0
}

func printWarnings(w io.Writer, warnings []conversion.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s (%s): %s\n", warning.Type, warning.NodeType, warning.Message)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
