package markdown

import (
	"bytes"
	"fmt"
	"io"
	stdhtml "html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// NodeKind identifies a family of Markdown nodes that can be rendered differently.
type NodeKind string

const (
	KindBlockquote NodeKind = "blockquote"
	KindCode       NodeKind = "code"
	KindHeading2   NodeKind = "heading-2"
	KindHeading3   NodeKind = "heading-3"
	KindLink       NodeKind = "link"
)

// KindOf returns the kind of a node, if the node can be overridden.
func KindOf(node ast.Node) (NodeKind, bool) {
	switch n := node.(type) {
	case *ast.BlockQuote:
		return KindBlockquote, true
	case *ast.CodeBlock:
		return KindCode, true
	case *ast.Heading:
		switch n.Level {
		case 2:
			return KindHeading2, true
		case 3:
			return KindHeading3, true
		}
	case *ast.Link:
		return KindLink, true
	}
	return "", false
}

// NodeRenderer writes the HTML of a single node.
// The renderer is called when entering and when leaving the node.
// It returns false to let the default HTML output be used.
type NodeRenderer interface {
	Render(w io.Writer, node ast.Node, entering bool) bool
}

// NodeRendererFunc adapts a function to the NodeRenderer interface.
type NodeRendererFunc func(w io.Writer, node ast.Node, entering bool) bool

func (f NodeRendererFunc) Render(w io.Writer, node ast.Node, entering bool) bool {
	return f(w, node, entering)
}

// Registry associates node kinds with their renderer.
type Registry struct {
	renderers map[NodeKind]NodeRenderer
}

func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[NodeKind]NodeRenderer),
	}
}

// Register replaces the renderer of a node kind.
func (r *Registry) Register(kind NodeKind, renderer NodeRenderer) *Registry {
	r.renderers[kind] = renderer
	return r
}

// Lookup returns the renderer of a node kind.
func (r *Registry) Lookup(kind NodeKind) (NodeRenderer, bool) {
	renderer, ok := r.renderers[kind]
	return renderer, ok
}

func (r *Registry) hook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	kind, ok := KindOf(node)
	if !ok {
		return ast.GoToNext, false
	}
	renderer, ok := r.Lookup(kind)
	if !ok {
		return ast.GoToNext, false
	}
	return ast.GoToNext, renderer.Render(w, node, entering)
}

// ToHTML converts Markdown to HTML using the default output for every node.
func ToHTML(md string) string {
	return ToHTMLWith(md, nil)
}

// ToHTMLWith converts Markdown to HTML, delegating the registered node kinds to their renderer.
func ToHTMLWith(md string, registry *Registry) string {
	// A parser cannot be reused
	p := parser.NewWithExtensions(parser.CommonExtensions)

	options := html.RendererOptions{
		Flags: html.CommonFlags,
	}
	if registry != nil {
		options.RenderNodeHook = registry.hook
	}

	result := markdown.ToHTML([]byte(md), p, html.NewRenderer(options))
	return strings.TrimSpace(string(result))
}

/*
 * Renderers
 */

// ClassBlockquote renders blockquotes with the given CSS class.
func ClassBlockquote(class string) NodeRenderer {
	return NodeRendererFunc(func(w io.Writer, node ast.Node, entering bool) bool {
		if entering {
			fmt.Fprintf(w, "<blockquote class=%q>\n", stdhtml.EscapeString(class))
		} else {
			io.WriteString(w, "</blockquote>\n")
		}
		return true
	})
}

// LanguageCodeBlock renders code blocks with a data attribute exposing the declared language.
func LanguageCodeBlock() NodeRenderer {
	return NodeRendererFunc(func(w io.Writer, node ast.Node, entering bool) bool {
		block := node.(*ast.CodeBlock)
		lang := strings.Fields(string(block.Info))
		if len(lang) == 0 {
			io.WriteString(w, "<pre><code>")
		} else {
			escaped := stdhtml.EscapeString(lang[0])
			fmt.Fprintf(w, `<pre data-lang="%s"><code class="language-%s">`, escaped, escaped)
		}
		html.EscapeHTML(w, block.Literal)
		io.WriteString(w, "</code></pre>\n")
		return true
	})
}

// AnchoredHeading renders headings with the id returned by the given function.
// Headings without id use the default output.
func AnchoredHeading(idFor func(text string) string) NodeRenderer {
	var ids []string // stack, headings cannot be nested
	return NodeRendererFunc(func(w io.Writer, node ast.Node, entering bool) bool {
		heading := node.(*ast.Heading)
		if entering {
			id := idFor(NodeText(node))
			if id == "" {
				ids = append(ids, "")
				return false
			}
			ids = append(ids, id)
			fmt.Fprintf(w, `<h%d id="%s">`, heading.Level, stdhtml.EscapeString(id))
			return true
		}
		id := ids[len(ids)-1]
		ids = ids[:len(ids)-1]
		if id == "" {
			return false
		}
		fmt.Fprintf(w, "</h%d>\n", heading.Level)
		return true
	})
}

// ClassHeading renders headings with the given CSS class.
func ClassHeading(class string) NodeRenderer {
	return NodeRendererFunc(func(w io.Writer, node ast.Node, entering bool) bool {
		heading := node.(*ast.Heading)
		if entering {
			fmt.Fprintf(w, `<h%d class="%s">`, heading.Level, stdhtml.EscapeString(class))
		} else {
			fmt.Fprintf(w, "</h%d>\n", heading.Level)
		}
		return true
	})
}

// ExternalLink opens absolute links in a new tab.
func ExternalLink() NodeRenderer {
	return NodeRendererFunc(func(w io.Writer, node ast.Node, entering bool) bool {
		link := node.(*ast.Link)
		dest := string(link.Destination)
		if !strings.HasPrefix(dest, "http://") && !strings.HasPrefix(dest, "https://") {
			return false
		}
		if !entering {
			io.WriteString(w, "</a>")
			return true
		}
		fmt.Fprintf(w, `<a href="%s" target="_blank" rel="noopener noreferrer"`, stdhtml.EscapeString(dest))
		if len(link.Title) > 0 {
			fmt.Fprintf(w, ` title="%s"`, stdhtml.EscapeString(string(link.Title)))
		}
		io.WriteString(w, ">")
		return true
	})
}

// NodeText returns the raw text contained in a node.
func NodeText(node ast.Node) string {
	var buf bytes.Buffer
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch leaf := n.(type) {
		case *ast.Text:
			buf.Write(leaf.Literal)
		case *ast.Code:
			buf.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(buf.String())
}
