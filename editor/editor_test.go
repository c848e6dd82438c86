package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/converter"
	"github.com/rgonek/highlight/mdconverter"
	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

// testPlugin registers a paragraph block and a "bold" attribute rendered as
// <strong>.
type testPlugin struct {
	inits int
	err   error
}

func (p *testPlugin) Name() string { return "test" }

func (p *testPlugin) Init(e *Editor) error {
	p.inits++
	if p.err != nil {
		return p.err
	}

	if err := e.Model.Schema.Register("paragraph", model.ItemDefinition{AllowIn: []string{model.RootName}}); err != nil {
		return err
	}
	if err := e.Model.Schema.Extend(model.TextName, model.ItemDefinition{
		AllowIn:         []string{"paragraph"},
		AllowAttributes: []string{"bold"},
	}); err != nil {
		return err
	}
	if err := e.Downcast.AddElementToElement(conversion.ElementToElementDowncast{
		Model: "paragraph",
		View: func(_ *model.Element, w view.Writer) *view.Element {
			return w.CreateContainerElement("p", nil)
		},
	}); err != nil {
		return err
	}
	if err := e.Downcast.AddAttributeToElement(conversion.AttributeToElementDefinition{
		Key:    "bold",
		Values: []string{"true"},
		View: map[string]conversion.ElementCreator{
			"true": func(_ string, w view.Writer) *view.Element {
				return w.CreateAttributeElement("strong", nil, view.AttributeElementOptions{})
			},
		},
	}); err != nil {
		return err
	}
	if err := e.Upcast.AddElementToElement(conversion.ElementToElementUpcast{
		View: view.Matcher{Name: "p"},
		Model: func(_ *view.Element, _ *conversion.UpcastContext) *model.Element {
			return model.NewElement("paragraph", nil)
		},
	}); err != nil {
		return err
	}
	if err := e.Upcast.AddElementToAttribute(conversion.ElementToAttributeDefinition{
		View:  view.Matcher{Name: "strong"},
		Key:   "bold",
		Value: "true",
	}); err != nil {
		return err
	}
	return e.AddCommand("bold", NewAttributeCommand(e, "bold", nil))
}

func newTestEditor(t *testing.T, opts ...Option) (*Editor, *testPlugin) {
	t.Helper()

	plugin := &testPlugin{}
	e, err := New(append(opts, WithPlugins(plugin))...)
	require.NoError(t, err)
	return e, plugin
}

func TestUseIsIdempotent(t *testing.T) {
	e, plugin := newTestEditor(t)

	require.NoError(t, e.Use(plugin))
	require.NoError(t, e.Use(&testPlugin{}))
	assert.Equal(t, 1, plugin.inits)
	assert.True(t, e.HasPlugin("test"))
	assert.False(t, e.HasPlugin("other"))
}

func TestNewFailsWhenPluginFails(t *testing.T) {
	boom := errors.New("boom")

	_, err := New(WithPlugins(&testPlugin{err: boom}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to initialize plugin test")
}

func TestNewRejectsNilConfigStore(t *testing.T) {
	_, err := New(WithConfigStore(nil))
	require.Error(t, err)
}

func TestExecuteUnknownCommand(t *testing.T) {
	e, _ := newTestEditor(t)

	err := e.Execute("italic", Params{Value: "true"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestAddCommandRejectsDuplicates(t *testing.T) {
	e, _ := newTestEditor(t)

	err := e.AddCommand("bold", NewAttributeCommand(e, "bold", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestSetDataAndData(t *testing.T) {
	e, _ := newTestEditor(t)

	require.NoError(t, e.SetData(`<p>foo <strong>bar</strong></p><p>baz</p>`))
	assert.Equal(t, `[]<paragraph>foo <$text bold="true">bar</$text></paragraph><paragraph>baz</paragraph>`, e.ModelData())
	assert.Equal(t, `<p>foo <strong>bar</strong></p><p>baz</p>`, e.Data())
	assert.Equal(t, e.Data(), e.ViewData())
	assert.Equal(t, view.RootName, e.EditingView().Name)
}

func TestModelDataKeepsSpecialCharacters(t *testing.T) {
	e, _ := newTestEditor(t)
	require.NoError(t, e.SetData(`<p>a &lt;b&gt; [c] "d"</p>`))

	data := e.ModelData()
	assert.Equal(t, `[]<paragraph>a &lt;b&gt; &#91;c&#93; "d"</paragraph>`, data)

	require.NoError(t, e.SetModelData(data))
	assert.Equal(t, data, e.ModelData())
	assert.Equal(t, `<p>a &lt;b&gt; [c] &#34;d&#34;</p>`, e.Data())

	require.NoError(t, e.SetModelData(`<paragraph>x &lt; y</paragraph>`))
	assert.Equal(t, `<p>x &lt; y</p>`, e.Data())
}

func TestSetModelDataValidatesSchema(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "unknown element",
			data:    `<heading>foo</heading>`,
			wantErr: "heading in $root",
		},
		{
			name:    "text in root",
			data:    `foo`,
			wantErr: "text in $root",
		},
		{
			name:    "disallowed attribute",
			data:    `<paragraph><$text italic="true">foo</$text></paragraph>`,
			wantErr: "attribute italic on text in paragraph",
		},
		{
			name:    "malformed",
			data:    `<paragraph>foo`,
			wantErr: "unclosed element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t)
			require.NoError(t, e.SetModelData(`<paragraph>keep</paragraph>`))

			err := e.SetModelData(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, `<paragraph>keep</paragraph>`, model.Stringify(e.Model.Root(), nil))
		})
	}
}

func TestAttributeCommandOverRange(t *testing.T) {
	e, _ := newTestEditor(t)
	require.NoError(t, e.SetModelData(`<paragraph>f[oo</paragraph><paragraph>ba]r</paragraph>`))

	cmd, ok := e.Command("bold")
	require.True(t, ok)
	assert.True(t, cmd.IsEnabled())

	require.NoError(t, e.Execute("bold", Params{Value: "true"}))
	assert.Equal(t,
		`<paragraph>f[<$text bold="true">oo</$text></paragraph><paragraph><$text bold="true">ba</$text>]r</paragraph>`,
		e.ModelData(),
	)
	assert.Equal(t, `<p>f<strong>oo</strong></p><p><strong>ba</strong>r</p>`, e.ViewData())

	value, ok := cmd.Value()
	require.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestAttributeCommandValidatesBeforeChange(t *testing.T) {
	e, _ := newTestEditor(t)
	require.NoError(t, e.SetModelData(`<paragraph>[foo]</paragraph>`))

	invalid := errors.New("invalid value")
	cmd := NewAttributeCommand(e, "bold", func(value string) error {
		if value != "true" {
			return invalid
		}
		return nil
	})

	assert.ErrorIs(t, cmd.Execute(Params{Value: "yes"}), invalid)
	assert.Equal(t, `<paragraph>[foo]</paragraph>`, e.ModelData())

	require.NoError(t, cmd.Execute(Params{Value: "true"}))
	assert.Equal(t, `<paragraph>[<$text bold="true">foo</$text>]</paragraph>`, e.ModelData())
}

func TestConfigSources(t *testing.T) {
	cfg, err := NewConfigFromMap(map[string]any{
		"highlight": map[string]any{"mode": "strict"},
	})
	require.NoError(t, err)
	assert.True(t, cfg.IsSet("highlight.mode"))
	assert.Equal(t, "strict", cfg.GetString("highlight.mode"))

	require.NoError(t, cfg.ReadConfig(strings.NewReader("highlight:\n  extra: 3\n"), "yaml"))
	assert.Equal(t, "strict", cfg.GetString("highlight.mode"))
	assert.Equal(t, 3, cfg.Get("highlight.extra"))

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"toolbar": {"items": ["highlight"]}}`), 0o600))
	require.NoError(t, cfg.ReadConfigFile(path))

	var items []string
	require.NoError(t, cfg.UnmarshalKey("toolbar.items", &items))
	assert.Equal(t, []string{"highlight"}, items)

	cfg.Set("highlight.mode", "loose")
	assert.Equal(t, "loose", cfg.GetString("highlight.mode"))
	assert.False(t, cfg.IsSet("missing.key"))
}

func TestConfigReadErrors(t *testing.T) {
	cfg := NewConfig()

	err := cfg.ReadConfig(strings.NewReader("highlight: ["), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read yaml config")

	err = cfg.ReadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestPluginInitIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	_, _ = newTestEditor(t, WithLogger(zap.New(core).Sugar()))

	entries := logs.FilterMessage("Initializing test plugin").All()
	assert.Len(t, entries, 1)
}

func TestSetMarkdown(t *testing.T) {
	e, _ := newTestEditor(t)

	require.NoError(t, e.SetMarkdown("foo **bar**\n\n# Title"))
	assert.Equal(t, `<paragraph>foo <$text bold="true">bar</$text></paragraph><paragraph>Title</paragraph>`, model.Stringify(e.Model.Root(), nil))

	warnings := e.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, conversion.WarningDroppedFeature, warnings[0].Type)
	assert.Equal(t, "Heading", warnings[0].NodeType)
}

func TestMarkdownConfig(t *testing.T) {
	e, _ := newTestEditor(t, WithConfig(map[string]any{
		"markdown": map[string]any{"imageStyle": "bogus"},
	}))

	err := e.SetMarkdown("foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid markdown config")

	_, err = New(WithMarkdownConfig(mdconverter.Config{UnknownNodes: "explode"}))
	require.Error(t, err)
}

func TestMarkdownExport(t *testing.T) {
	e, _ := newTestEditor(t)
	require.NoError(t, e.SetData(`<p>foo <strong>bar</strong></p><p>baz</p>`))

	markdown, err := e.Markdown()
	require.NoError(t, err)
	assert.Equal(t, "foo **bar**\n\nbaz\n", markdown)

	require.NoError(t, e.SetMarkdown(markdown))
	assert.Equal(t, `<p>foo <strong>bar</strong></p><p>baz</p>`, e.Data())
}

func TestMarkdownExportConfig(t *testing.T) {
	e, _ := newTestEditor(t, WithConfig(map[string]any{
		"markdownExport": map[string]any{"emphasis": "bogus"},
	}))

	_, err := e.Markdown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid markdown export config")

	_, err = New(WithMarkdownExportConfig(converter.Config{InlineHTML: "pandoc"}))
	require.Error(t, err)
}
