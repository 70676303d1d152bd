// Package markdown renders user written blog bodies.
package markdown

import (
	stdhtml "html"
	"html/template"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const codeStyle = "github"

var (
	codeBlockPattern  = regexp.MustCompile("(?s)```.*?```")
	imagePattern      = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkPattern       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	headingPattern    = regexp.MustCompile(`(?m)^#{1,6}\s+(.*?)$`)
	emphasisPattern   = regexp.MustCompile(`(\*{1,3}|_{1,2}|~~)(.*?)(\*{1,3}|_{1,2}|~~)`)
	inlineCodePattern = regexp.MustCompile("`(.*?)`")
	quotePattern      = regexp.MustCompile(`(?m)^\s*>\s*(.*?)$`)
	listPattern       = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// ToHTML renders a markdown body. Raw HTML in the source is dropped and
// fenced code blocks are highlighted with inline styles.
func ToHTML(input string) template.HTML {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(input))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink | mdhtml.NofollowLinks | mdhtml.NoreferrerLinks | mdhtml.NoopenerLinks,
		RenderNodeHook: renderNodeHook,
	})

	return template.HTML(md.Render(doc, renderer))
}

// Excerpt returns the plain text of a markdown body cut to at most maxChars
// runes, preferring a word boundary near the end.
func Excerpt(input string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}

	text := plainText(input)
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	runes := []rune(text)
	cut := maxChars
	for i := maxChars - 1; i >= maxChars*4/5; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}

	return strings.TrimSpace(string(runes[:cut])) + "..."
}

func plainText(input string) string {
	text := codeBlockPattern.ReplaceAllString(input, " ")
	text = imagePattern.ReplaceAllString(text, " ")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "$1")
	text = emphasisPattern.ReplaceAllString(text, "$2")
	text = inlineCodePattern.ReplaceAllString(text, "$1")
	text = quotePattern.ReplaceAllString(text, "$1")
	text = listPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}

func renderNodeHook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		return ast.GoToNext, false
	}

	block, ok := node.(*ast.CodeBlock)
	if !ok {
		return ast.GoToNext, false
	}

	renderCodeBlock(w, block)
	return ast.SkipChildren, true
}

func renderCodeBlock(w io.Writer, block *ast.CodeBlock) {
	code := string(block.Literal)

	iterator, err := pickLexer(string(block.Info), code).Tokenise(nil, code)
	if err != nil {
		renderPlainCodeBlock(w, code)
		return
	}

	formatter := chromahtml.New(chromahtml.WithClasses(false))
	if err := formatter.Format(w, styles.Get(codeStyle), iterator); err != nil {
		renderPlainCodeBlock(w, code)
	}
}

func renderPlainCodeBlock(w io.Writer, code string) {
	_, _ = io.WriteString(w, "<pre><code>")
	_, _ = io.WriteString(w, stdhtml.EscapeString(code))
	_, _ = io.WriteString(w, "</code></pre>")
}

func pickLexer(info, code string) chroma.Lexer {
	if fields := strings.Fields(info); len(fields) > 0 {
		if lexer := lexers.Get(strings.ToLower(fields[0])); lexer != nil {
			return chroma.Coalesce(lexer)
		}
	}

	if lexer := lexers.Analyse(code); lexer != nil {
		return chroma.Coalesce(lexer)
	}

	return lexers.Fallback
}
