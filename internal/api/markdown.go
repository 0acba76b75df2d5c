package api

import (
	"bytes"
	"html/template"
	"io"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	recipePolicyOnce sync.Once
	recipePolicy     *bluemonday.Policy
)

// renderMarkdown turns generated recipe text into sanitized HTML. The text
// comes from a remote model and is treated as untrusted.
func renderMarkdown(text string) template.HTML {
	if text == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.CommonFlags | html.HrefTargetBlank,
		RenderNodeHook: paragraphLineBreaks,
	})
	rendered := markdown.ToHTML([]byte(text), p, renderer)

	return template.HTML(sanitizer().SanitizeBytes(rendered))
}

// paragraphLineBreaks keeps the single line breaks of plain paragraphs, which
// models use to put one step per line. Text inside lists is left to the
// default renderer.
func paragraphLineBreaks(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	text, ok := node.(*ast.Text)
	if !ok || !entering || !bytes.ContainsRune(text.Literal, '\n') {
		return ast.GoToNext, false
	}
	if _, ok := text.Parent.(*ast.Paragraph); !ok || insideList(text) {
		return ast.GoToNext, false
	}

	lines := bytes.Split(text.Literal, []byte("\n"))
	for i, line := range lines {
		if i > 0 {
			_, _ = io.WriteString(w, "<br>\n")
		}
		template.HTMLEscape(w, line)
	}
	return ast.GoToNext, true
}

func insideList(node ast.Node) bool {
	for parent := node.GetParent(); parent != nil; parent = parent.GetParent() {
		switch parent.(type) {
		case *ast.ListItem, *ast.List:
			return true
		}
	}
	return false
}

func sanitizer() *bluemonday.Policy {
	recipePolicyOnce.Do(func() {
		recipePolicy = bluemonday.UGCPolicy()
	})
	return recipePolicy
}
