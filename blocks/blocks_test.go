package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/editor"
	"github.com/rgonek/highlight/model"
)

func newBlocksEditor(t *testing.T) *editor.Editor {
	t.Helper()

	e, err := editor.New(editor.WithPlugins(Paragraph{}, Image{}))
	require.NoError(t, err)
	return e
}

func TestBlocksSchema(t *testing.T) {
	e := newBlocksEditor(t)
	schema := e.Model.Schema

	assert.True(t, schema.CheckChild(model.RootName, ParagraphName))
	assert.True(t, schema.CheckChild(model.RootName, ImageName))
	assert.True(t, schema.CheckChild(ImageName, CaptionName))
	assert.True(t, schema.CheckChild(ParagraphName, model.TextName))
	assert.True(t, schema.CheckChild(CaptionName, model.TextName))
	assert.False(t, schema.CheckChild(ImageName, model.TextName))
	assert.False(t, schema.CheckChild(ParagraphName, ImageName))

	assert.True(t, schema.IsObject(ImageName))
	assert.True(t, schema.IsLimit(CaptionName))
	name, ok := schema.TextBlockIn(model.RootName)
	require.True(t, ok)
	assert.Equal(t, ParagraphName, name)
	assert.Equal(t, []string{"alt", "src"}, schema.AllowedAttributes(ImageName))
}

func TestBlocksDowncast(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		{
			name:  "paragraphs",
			model: `<paragraph>foo</paragraph><paragraph>bar</paragraph>`,
			want:  `<p>foo</p><p>bar</p>`,
		},
		{
			name:  "image without caption",
			model: `<image alt="Logo" src="logo.png"></image>`,
			want:  `<figure class="image"><img alt="Logo" src="logo.png"></figure>`,
		},
		{
			name:  "image with caption",
			model: `<image src="a.png"><caption>A & B</caption></image>`,
			want:  `<figure class="image"><img src="a.png"><figcaption>A &amp; B</figcaption></figure>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newBlocksEditor(t)
			require.NoError(t, e.SetModelData(tt.model))
			assert.Equal(t, tt.want, e.Data())
		})
	}
}

func TestBlocksUpcast(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		want         string
		wantWarnings []conversion.WarningType
	}{
		{
			name: "paragraph",
			html: `<p>foo</p>`,
			want: `<paragraph>foo</paragraph>`,
		},
		{
			name: "figure with caption",
			html: `<figure class="image"><img src="a.png" alt="A"><figcaption>cap</figcaption></figure>`,
			want: `<image alt="A" src="a.png"><caption>cap</caption></image>`,
		},
		{
			name: "bare image",
			html: `<img src="b.png">`,
			want: `<image src="b.png"></image>`,
		},
		{
			name:         "figure without image",
			html:         `<figure class="image"><figcaption>lost</figcaption></figure>`,
			want:         `<paragraph>lost</paragraph>`,
			wantWarnings: []conversion.WarningType{
				conversion.WarningUnknownElement,
				conversion.WarningDisallowedContent,
			},
		},
		{
			name:         "image inside paragraph",
			html:         `<p>a<img src="c.png">b</p>`,
			want:         `<paragraph>ab</paragraph>`,
			wantWarnings: []conversion.WarningType{conversion.WarningDisallowedContent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newBlocksEditor(t)
			require.NoError(t, e.SetData(tt.html))
			assert.Equal(t, tt.want, model.Stringify(e.Model.Root(), nil))

			var got []conversion.WarningType
			for _, warning := range e.Warnings() {
				got = append(got, warning.Type)
			}
			assert.Equal(t, tt.wantWarnings, got)
		})
	}
}

func TestSelectAllStopsAtCaption(t *testing.T) {
	e := newBlocksEditor(t)

	require.NoError(t, e.SetModelData(`<paragraph>foo</paragraph><image src="a.png"><caption>a[b]c</caption></image>`))
	require.NoError(t, e.SelectAll())
	assert.Equal(t, `<paragraph>foo</paragraph><image src="a.png"><caption>[abc]</caption></image>`, e.ModelData())

	require.NoError(t, e.SetModelData(`<paragraph>f[oo</paragraph><image src="a.png"><caption>a]bc</caption></image>`))
	require.NoError(t, e.SelectAll())
	assert.Equal(t, `[<paragraph>foo</paragraph><image src="a.png"><caption>abc</caption></image>]`, e.ModelData())
}

func TestPluginsRejectDoubleRegistration(t *testing.T) {
	e := newBlocksEditor(t)

	err := Paragraph{}.Init(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
