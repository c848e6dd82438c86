package conversion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

func wrapperCreator(name, class string, priority int) ElementCreator {
	return func(_ string, w view.Writer) *view.Element {
		var attrs map[string]string
		if class != "" {
			attrs = map[string]string{"class": class}
		}
		return w.CreateAttributeElement(name, attrs, view.AttributeElementOptions{Priority: priority})
	}
}

func newTestPipelines(t *testing.T) (*model.Schema, *Downcast, *Upcast) {
	t.Helper()

	schema := model.NewSchema()
	require.NoError(t, schema.Register("paragraph", model.ItemDefinition{AllowIn: []string{model.RootName}, IsBlock: true}))
	require.NoError(t, schema.Extend(model.TextName, model.ItemDefinition{
		AllowIn:         []string{"paragraph"},
		AllowAttributes: []string{"bold", "mark", "size"},
	}))

	down := NewDowncast()
	require.NoError(t, down.AddElementToElement(ElementToElementDowncast{
		Model: "paragraph",
		View: func(_ *model.Element, w view.Writer) *view.Element {
			return w.CreateContainerElement("p", nil)
		},
	}))
	require.NoError(t, down.AddAttributeToElement(AttributeToElementDefinition{
		Key:    "bold",
		Values: []string{"true"},
		View:   map[string]ElementCreator{"true": wrapperCreator("strong", "", 0)},
	}))
	require.NoError(t, down.AddAttributeToElement(AttributeToElementDefinition{
		Key:    "mark",
		Values: []string{"a", "b"},
		View: map[string]ElementCreator{
			"a": wrapperCreator("mark", "m-a", view.DefaultPriority+5),
			"b": wrapperCreator("mark", "m-b", view.DefaultPriority+5),
		},
	}))
	require.NoError(t, down.AddAttributeToElement(AttributeToElementDefinition{
		Key:    "size",
		Values: []string{"big"},
		View:   map[string]ElementCreator{"big": wrapperCreator("span", "big", 0)},
	}))

	up := NewUpcast(schema)
	require.NoError(t, up.AddElementToElement(ElementToElementUpcast{
		View: view.Matcher{Name: "p"},
		Model: func(_ *view.Element, _ *UpcastContext) *model.Element {
			return model.NewElement("paragraph", nil)
		},
	}))
	for _, def := range []ElementToAttributeDefinition{
		{View: view.Matcher{Name: "strong"}, Key: "bold", Value: "true"},
		{View: view.Matcher{Name: "mark", Classes: []string{"m-a"}}, Key: "mark", Value: "a"},
		{View: view.Matcher{Name: "mark", Classes: []string{"m-b"}}, Key: "mark", Value: "b"},
		{View: view.Matcher{Name: "span", Classes: []string{"big"}}, Key: "size", Value: "big"},
	} {
		require.NoError(t, up.AddElementToAttribute(def))
	}

	return schema, down, up
}

func downcastString(t *testing.T, down *Downcast, data string) (string, []Warning) {
	t.Helper()

	root, _, err := model.Parse(data)
	require.NoError(t, err)
	result := down.Convert(root)
	return view.Stringify(result.View), result.Warnings
}

func TestDowncastWrapperOrder(t *testing.T) {
	_, down, _ := newTestPipelines(t)

	tests := []struct {
		name  string
		model string
		want  string
	}{
		{
			name:  "priority puts mark innermost",
			model: `<paragraph><$text mark="a" size="big">x</$text></paragraph>`,
			want:  `<p><span class="big"><mark class="m-a">x</mark></span></p>`,
		},
		{
			name:  "equal priorities order by element name",
			model: `<paragraph><$text bold="true" size="big">x</$text></paragraph>`,
			want:  `<p><span class="big"><strong>x</strong></span></p>`,
		},
		{
			name:  "adjacent runs share open wrappers",
			model: `<paragraph><$text size="big">a</$text><$text mark="a" size="big">b</$text><$text size="big">c</$text></paragraph>`,
			want:  `<p><span class="big">a<mark class="m-a">b</mark>c</span></p>`,
		},
		{
			name:  "different values do not merge",
			model: `<paragraph><$text mark="a">a</$text><$text mark="b">b</$text></paragraph>`,
			want:  `<p><mark class="m-a">a</mark><mark class="m-b">b</mark></p>`,
		},
		{
			name:  "text escaping",
			model: `<paragraph>a & b</paragraph>`,
			want:  `<p>a &amp; b</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := downcastString(t, down, tt.model)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, warnings)
		})
	}
}

func TestDowncastWarnings(t *testing.T) {
	_, down, _ := newTestPipelines(t)

	got, warnings := downcastString(t, down, `<paragraph><$text mark="zzz">x</$text></paragraph><table></table>`)
	assert.Equal(t, `<p>x</p>`, got)

	want := []Warning{
		{Type: WarningUnmatchedValue, NodeType: "mark", Message: `no view for mark="zzz"; value left unrendered`},
		{Type: WarningUnknownElement, NodeType: "table", Message: `no downcast for element "table"; skipped`},
	}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestDowncastRejectsInvalidRules(t *testing.T) {
	down := NewDowncast()

	require.Error(t, down.AddElementToElement(ElementToElementDowncast{Model: "paragraph"}))
	require.Error(t, down.AddAttributeToElement(AttributeToElementDefinition{Key: "mark"}))
	require.Error(t, down.AddAttributeToElement(AttributeToElementDefinition{
		Key:    "mark",
		Values: []string{"a"},
		View:   map[string]ElementCreator{},
	}))

	def := AttributeToElementDefinition{
		Key:    "mark",
		Values: []string{"a"},
		View:   map[string]ElementCreator{"a": wrapperCreator("mark", "m-a", 0)},
	}
	require.NoError(t, down.AddAttributeToElement(def))
	err := down.AddAttributeToElement(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestUpcast(t *testing.T) {
	_, _, up := newTestPipelines(t)

	tests := []struct {
		name         string
		html         string
		want         string
		wantWarnings []WarningType
	}{
		{
			name: "nested attributes",
			html: `<p>a<span class="big">b<mark class="m-b">c</mark></span></p>`,
			want: `<paragraph>a<$text size="big">b</$text><$text mark="b" size="big">c</$text></paragraph>`,
		},
		{
			name: "inner value overrides outer",
			html: `<p><mark class="m-a">a<mark class="m-b">b</mark></mark></p>`,
			want: `<paragraph><$text mark="a">a</$text><$text mark="b">b</$text></paragraph>`,
		},
		{
			name: "first matching rule wins on one element",
			html: `<p><mark class="m-b m-a">x</mark></p>`,
			want: `<paragraph><$text mark="a">x</$text></paragraph>`,
		},
		{
			name:         "unknown element is unwrapped",
			html:         `<p><em>x</em></p>`,
			want:         `<paragraph>x</paragraph>`,
			wantWarnings: []WarningType{WarningUnknownElement},
		},
		{
			name: "text outside blocks is wrapped in a paragraph",
			html: `loose<p>x</p>`,
			want: `<paragraph>loose</paragraph><paragraph>x</paragraph>`,
		},
		{
			name: "inline content at the root shares one paragraph",
			html: `a<mark class="m-a">root</mark><p>x</p>b`,
			want: `<paragraph>a<$text mark="a">root</$text></paragraph><paragraph>x</paragraph><paragraph>b</paragraph>`,
		},
		{
			name: "whitespace outside blocks is dropped silently",
			html: "<p>x</p>\n",
			want: `<paragraph>x</paragraph>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := view.ParseHTMLString(tt.html)
			require.NoError(t, err)

			result := up.Convert(root)
			assert.Equal(t, tt.want, model.Stringify(result.Model, nil))

			var got []WarningType
			for _, warning := range result.Warnings {
				got = append(got, warning.Type)
			}
			assert.Equal(t, tt.wantWarnings, got)
		})
	}
}

func TestUpcastDropsDisallowedAttributes(t *testing.T) {
	schema, _, up := newTestPipelines(t)
	schema.AddAttributeCheck(func(node model.Node, key string) bool {
		return key != "size"
	})

	root, err := view.ParseHTMLString(`<p><span class="big">x</span></p>`)
	require.NoError(t, err)

	result := up.Convert(root)
	assert.Equal(t, `<paragraph>x</paragraph>`, model.Stringify(result.Model, nil))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDisallowedAttribute, result.Warnings[0].Type)
	assert.Equal(t, "size", result.Warnings[0].NodeType)
}

func TestUpcastDropsTextWithoutTextBlock(t *testing.T) {
	schema := model.NewSchema()
	require.NoError(t, schema.Register("image", model.ItemDefinition{AllowIn: []string{model.RootName}, IsBlock: true, IsObject: true}))

	up := NewUpcast(schema)
	require.NoError(t, up.AddElementToElement(ElementToElementUpcast{
		View: view.Matcher{Name: "img"},
		Model: func(_ *view.Element, _ *UpcastContext) *model.Element {
			return model.NewElement("image", nil)
		},
	}))

	root, err := view.ParseHTMLString(`loose<img src="a.png">`)
	require.NoError(t, err)

	result := up.Convert(root)
	assert.Equal(t, `<image></image>`, model.Stringify(result.Model, nil))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDisallowedContent, result.Warnings[0].Type)
}

func TestUpcastRejectsInvalidRules(t *testing.T) {
	up := NewUpcast(model.NewSchema())

	require.Error(t, up.AddElementToElement(ElementToElementUpcast{View: view.Matcher{Name: "p"}}))
	require.Error(t, up.AddElementToAttribute(ElementToAttributeDefinition{View: view.Matcher{Name: "mark"}, Key: "mark"}))
	require.Error(t, up.AddElementToAttribute(ElementToAttributeDefinition{Key: "mark", Value: "a"}))
}

func TestRoundTrip(t *testing.T) {
	_, down, up := newTestPipelines(t)

	data := `<paragraph>a<$text bold="true" mark="a">b</$text><$text mark="b" size="big">c</$text></paragraph>`
	root, _, err := model.Parse(data)
	require.NoError(t, err)

	viewRoot := down.Convert(root).View
	result := up.Convert(viewRoot)
	assert.Equal(t, data, model.Stringify(result.Model, nil))
	assert.Empty(t, result.Warnings)
}
