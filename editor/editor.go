// Package editor wires the document model, the conversion pipelines, the
// configuration store and the command collection into one editor instance.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/converter"
	"github.com/rgonek/highlight/mdconverter"
	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

// ErrUnknownCommand is returned by Execute for unregistered command names.
var ErrUnknownCommand = errors.New("unknown command")

const (
	// MarkdownConfigKey holds the Markdown import settings in the config store.
	MarkdownConfigKey = "markdown"
	// MarkdownExportConfigKey holds the Markdown export settings.
	MarkdownExportConfigKey = "markdownExport"
)

// Plugin is a feature installed into an editor.
type Plugin interface {
	Name() string
	Init(e *Editor) error
}

// Option customizes an editor at construction time.
type Option func(e *Editor) error

// WithConfig merges nested configuration values into the store.
func WithConfig(values map[string]any) Option {
	return func(e *Editor) error {
		return e.Config.Merge(values)
	}
}

// WithConfigStore replaces the configuration store.
func WithConfigStore(cfg *Config) Option {
	return func(e *Editor) error {
		if cfg == nil {
			return errors.New("config store must not be nil")
		}
		e.Config = cfg
		return nil
	}
}

// WithLogger sets the editor logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Editor) error {
		if logger != nil {
			e.logger = logger
		}
		return nil
	}
}

// WithPlugins queues plugins to install in the given order.
func WithPlugins(plugins ...Plugin) Option {
	return func(e *Editor) error {
		e.pending = append(e.pending, plugins...)
		return nil
	}
}

// WithMarkdownConfig sets the Markdown import settings, overriding the
// config store.
func WithMarkdownConfig(cfg mdconverter.Config) Option {
	return func(e *Editor) error {
		conv, err := mdconverter.New(cfg)
		if err != nil {
			return fmt.Errorf("invalid markdown config: %w", err)
		}
		e.markdown = conv
		return nil
	}
}

// WithMarkdownExportConfig sets the Markdown export settings, overriding the
// config store.
func WithMarkdownExportConfig(cfg converter.Config) Option {
	return func(e *Editor) error {
		conv, err := converter.New(cfg)
		if err != nil {
			return fmt.Errorf("invalid markdown export config: %w", err)
		}
		e.exporter = conv
		return nil
	}
}

// Editor is a single editing session.
type Editor struct {
	Config   *Config
	Model    *model.Model
	Downcast *conversion.Downcast
	Upcast   *conversion.Upcast

	logger      *zap.SugaredLogger
	commands    map[string]Command
	installed   map[string]bool
	pending     []Plugin
	editingView *view.Element
	warnings    []conversion.Warning
	markdown    *mdconverter.Converter
	exporter    *converter.Converter
}

// New creates an editor and installs its plugins. A plugin failing to
// initialize aborts creation.
func New(opts ...Option) (*Editor, error) {
	m := model.New()
	e := &Editor{
		Config:    NewConfig(),
		Model:     m,
		Downcast:  conversion.NewDowncast(),
		Upcast:    conversion.NewUpcast(m.Schema),
		logger:    zap.NewNop().Sugar(),
		commands:  make(map[string]Command),
		installed: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	for _, plugin := range e.pending {
		if err := e.Use(plugin); err != nil {
			return nil, err
		}
	}
	e.pending = nil

	m.OnChange(e.render)
	e.render()

	return e, nil
}

// Logger returns the editor logger.
func (e *Editor) Logger() *zap.SugaredLogger { return e.logger }

// Use installs a plugin. Installing a plugin with the same name again is a
// no-op.
func (e *Editor) Use(plugin Plugin) error {
	name := plugin.Name()
	if e.installed[name] {
		e.logger.Debugf("Plugin %s already installed", name)
		return nil
	}

	e.logger.Infof("Initializing %s plugin", name)
	if err := plugin.Init(e); err != nil {
		return fmt.Errorf("failed to initialize plugin %s: %w", name, err)
	}
	e.installed[name] = true
	return nil
}

// HasPlugin reports whether a plugin with name is installed.
func (e *Editor) HasPlugin(name string) bool { return e.installed[name] }

// AddCommand registers a command under name.
func (e *Editor) AddCommand(name string, cmd Command) error {
	if _, exists := e.commands[name]; exists {
		return fmt.Errorf("command %q is already registered", name)
	}
	e.commands[name] = cmd
	return nil
}

// Command returns the command registered under name.
func (e *Editor) Command(name string) (Command, bool) {
	cmd, ok := e.commands[name]
	return cmd, ok
}

// Execute runs a registered command.
func (e *Editor) Execute(name string, params Params) error {
	cmd, ok := e.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.Execute(params)
}

// SetData replaces the document with the given HTML.
func (e *Editor) SetData(data string) error {
	root, err := view.ParseHTMLString(data)
	if err != nil {
		return err
	}
	return e.SetView(root)
}

// SetMarkdown replaces the document with the given Markdown. Inline
// <mark> and <span> markup is kept, so configured styles survive the import.
func (e *Editor) SetMarkdown(markdown string) error {
	conv, err := e.markdownConverter()
	if err != nil {
		return err
	}

	result, err := conv.Convert(markdown)
	if err != nil {
		return err
	}
	if err := e.SetView(result.Root); err != nil {
		return err
	}

	loaded := e.warnings
	e.recordWarnings(result.Warnings)
	e.warnings = append(e.warnings, loaded...)
	return nil
}

func (e *Editor) markdownConverter() (*mdconverter.Converter, error) {
	if e.markdown != nil {
		return e.markdown, nil
	}

	var cfg mdconverter.Config
	if e.Config.IsSet(MarkdownConfigKey) {
		if err := e.Config.UnmarshalKey(MarkdownConfigKey, &cfg); err != nil {
			return nil, err
		}
	}
	conv, err := mdconverter.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid markdown config: %w", err)
	}
	e.markdown = conv
	return conv, nil
}

// Markdown returns the document rendered as GFM Markdown. Styling without a
// Markdown syntax is kept as inline HTML unless configured otherwise.
func (e *Editor) Markdown() (string, error) {
	conv, err := e.markdownExporter()
	if err != nil {
		return "", err
	}

	data := e.Downcast.Convert(e.Model.Root())
	result, err := conv.Convert(data.View)
	if err != nil {
		return "", err
	}
	e.recordWarnings(append(data.Warnings, result.Warnings...))
	return result.Markdown, nil
}

func (e *Editor) markdownExporter() (*converter.Converter, error) {
	if e.exporter != nil {
		return e.exporter, nil
	}

	var cfg converter.Config
	if e.Config.IsSet(MarkdownExportConfigKey) {
		if err := e.Config.UnmarshalKey(MarkdownExportConfigKey, &cfg); err != nil {
			return nil, err
		}
	}
	conv, err := converter.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid markdown export config: %w", err)
	}
	e.exporter = conv
	return conv, nil
}

// SetView replaces the document with an upcast of the given view tree.
func (e *Editor) SetView(root *view.Element) error {
	result := e.Upcast.Convert(root)
	if err := e.Model.SetRoot(result.Model, nil); err != nil {
		return err
	}

	rendered := e.warnings
	e.recordWarnings(result.Warnings)
	e.warnings = append(e.warnings, rendered...)
	return nil
}

// Data returns the document rendered as HTML.
func (e *Editor) Data() string {
	result := e.Downcast.Convert(e.Model.Root())
	e.recordWarnings(result.Warnings)
	return view.Stringify(result.View)
}

// ViewData returns the current editing view as HTML.
func (e *Editor) ViewData() string {
	return view.Stringify(e.editingView)
}

// EditingView returns the root of the current editing view.
func (e *Editor) EditingView() *view.Element { return e.editingView }

// SetModelData replaces the document with the development model format,
// including an optional [selection].
func (e *Editor) SetModelData(data string) error {
	root, sel, err := model.Parse(data)
	if err != nil {
		return err
	}
	if err := e.checkTree(root); err != nil {
		return err
	}
	return e.Model.SetRoot(root, sel)
}

// ModelData returns the document in the development model format with the
// selection marked.
func (e *Editor) ModelData() string {
	sel := e.Model.Selection().Range
	return model.Stringify(e.Model.Root(), &sel)
}

// SelectAll selects the content of the innermost limit element around the
// selection, such as an image caption, or the whole document.
func (e *Editor) SelectAll() error {
	return e.Model.Change(func(w *model.Writer) error {
		limit := e.Model.Schema.LimitElement(w.Root(), w.Selection().Range)
		w.SetSelection(model.RangeIn(limit))
		return nil
	})
}

// Warnings returns the warnings of the last load or render.
func (e *Editor) Warnings() []conversion.Warning {
	return append([]conversion.Warning(nil), e.warnings...)
}

func (e *Editor) render() {
	result := e.Downcast.Convert(e.Model.Root())
	e.recordWarnings(result.Warnings)
	e.editingView = result.View
}

func (e *Editor) recordWarnings(warnings []conversion.Warning) {
	e.warnings = warnings
	for _, warning := range warnings {
		e.logger.Debugw("conversion skipped", "type", warning.Type, "node", warning.NodeType, "message", warning.Message)
	}
}

// checkTree validates a loaded model tree against the schema.
func (e *Editor) checkTree(el *model.Element) error {
	var problems []string
	var walk func(parent *model.Element)
	walk = func(parent *model.Element) {
		for _, child := range parent.Children() {
			switch typed := child.(type) {
			case *model.Text:
				if !e.Model.Schema.CheckChild(parent.Name, model.TextName) {
					problems = append(problems, fmt.Sprintf("text in %s", parent.Name))
				}
				for _, key := range typed.AttributeKeys() {
					if !e.Model.Schema.CheckAttribute(typed, key) {
						problems = append(problems, fmt.Sprintf("attribute %s on text in %s", key, parent.Name))
					}
				}
			case *model.Element:
				if !e.Model.Schema.CheckChild(parent.Name, typed.Name) {
					problems = append(problems, fmt.Sprintf("%s in %s", typed.Name, parent.Name))
				}
				walk(typed)
			}
		}
	}
	walk(el)

	if len(problems) > 0 {
		return fmt.Errorf("model data violates schema: %s", strings.Join(problems, ", "))
	}
	return nil
}
