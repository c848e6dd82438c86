package mdconverter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rgonek/highlight/conversion"
)

// convertRawHTML handles one inline raw HTML fragment. Opening tags of
// allowed inline elements push a wrapper, closing tags pop it; <br> becomes
// a space. Other tags are dropped with a warning.
func (s *state) convertRawHTML(rawHTML string, stack *markStack) ([]run, error) {
	var content []run
	z := xhtml.NewTokenizer(strings.NewReader(rawHTML))

	for {
		tokenType := z.Next()
		switch tokenType {
		case xhtml.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to tokenize inline HTML: %w", err)
			}
			return content, nil

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if atom.Lookup(name) == atom.Br {
				content = append(content, newRun(" ", stack.current()))
				continue
			}
			if tokenType == xhtml.SelfClosingTagToken || !s.config.allowsInlineTag(tag) {
				if err := s.unsupportedTag(tag); err != nil {
					return nil, err
				}
				continue
			}
			stack.push(mark{name: tag, attrs: readTagAttrs(z, hasAttr)})

		case xhtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !s.config.allowsInlineTag(tag) {
				continue
			}
			stack.popByName(tag)
		}
	}
}

func readTagAttrs(z *xhtml.Tokenizer, hasAttr bool) map[string]string {
	if !hasAttr {
		return nil
	}

	attrs := make(map[string]string)
	for {
		key, value, more := z.TagAttr()
		attrs[string(key)] = string(value)
		if !more {
			break
		}
	}
	return attrs
}

func (s *state) unsupportedTag(tag string) error {
	if s.config.UnknownNodes == UnknownNodesError {
		return fmt.Errorf("%w: <%s>", ErrUnsupportedNode, tag)
	}
	s.addWarning(conversion.WarningUnknownNode, tag, fmt.Sprintf("unsupported inline HTML tag <%s> dropped", tag))
	return nil
}
