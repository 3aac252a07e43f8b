package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParser is shared by every render; goldmark parsers are stateless
// between Parse calls.
var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
).Parser()

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// RenderMarkdown renders markdown to styled terminal text wrapped at width.
// Links become OSC 8 hyperlinks.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	src := []byte(content)
	doc := markdownParser.Parse(text.NewReader(src))
	r := &mdRenderer{src: src}
	return r.blocks(doc, width, "\n\n")
}

// renderUserText renders a user message literally: escape sequences are
// stripped and no markup is interpreted.
func renderUserText(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	clean := ansi.Strip(content)
	var lines []string
	for _, l := range strings.Split(clean, "\n") {
		lines = append(lines, ChatMessageStyle.Render(ansi.Hardwrap(ansi.Wordwrap(l, width, " "), width, true)))
	}
	return strings.Join(lines, "\n")
}

type mdRenderer struct {
	src []byte
}

// blocks renders the block children of n, separated by sep.
func (r *mdRenderer) blocks(n ast.Node, width int, sep string) string {
	var out []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c, width); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}

func (r *mdRenderer) block(n ast.Node, width int) string {
	width = max(width, 4)

	switch n := n.(type) {
	case *ast.Heading:
		style := MarkdownH4Style
		switch n.Level {
		case 1:
			style = MarkdownH1Style
		case 2:
			style = MarkdownH2Style
		case 3:
			style = MarkdownH3Style
		}
		return r.wrap(style.Render(r.plain(n)), width)

	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inlines(n), width)

	case *ast.FencedCodeBlock:
		return r.code(n, string(n.Language(r.src)))

	case *ast.CodeBlock:
		return r.code(n, "")

	case *ast.Blockquote:
		bar := MarkdownBlockquoteBarStyle.Render("│ ")
		inner := r.blocks(n, width-2, "\n\n")
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = bar + MarkdownBlockquoteStyle.Render(l)
		}
		return strings.Join(lines, "\n")

	case *ast.List:
		return r.list(n, width)

	case *ast.ThematicBreak:
		return MarkdownHRStyle.Render(strings.Repeat("─", width))

	case *ast.HTMLBlock:
		var sb strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(r.src))
		}
		return StatusPlaceholderStyle.Render(strings.TrimRight(ansi.Strip(sb.String()), "\n"))

	default:
		return r.blocks(n, width, "\n\n")
	}
}

func (r *mdRenderer) code(n ast.Node, lang string) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(r.src))
	}
	code := strings.TrimRight(ansi.Strip(sb.String()), "\n")
	out := strings.Split(highlightCode(code, lang), "\n")
	for i, l := range out {
		out[i] = "  " + l
	}
	return strings.Join(out, "\n")
}

func (r *mdRenderer) list(n *ast.List, width int) string {
	sep := "\n"
	if !n.IsTight {
		sep = "\n\n"
	}

	var items []string
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		bullet := "• "
		if n.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", num)
			num++
		}
		indent := ansi.StringWidth(bullet)
		body := r.blocks(c, width-indent, sep)

		lines := strings.Split(body, "\n")
		for i, l := range lines {
			if i == 0 {
				lines[i] = MarkdownListBulletStyle.Render(bullet) + l
			} else if l != "" {
				lines[i] = strings.Repeat(" ", indent) + l
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, sep)
}

func (r *mdRenderer) wrap(s string, width int) string {
	return ansi.Hardwrap(ansi.Wordwrap(s, width, " -"), width, true)
}

// inlines renders the inline children of n.
func (r *mdRenderer) inlines(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		sb.WriteString(r.inline(c))
	}
	return sb.String()
}

func (r *mdRenderer) inline(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Text:
		s := ansi.Strip(string(n.Segment.Value(r.src)))
		switch {
		case n.HardLineBreak():
			s += "\n"
		case n.SoftLineBreak():
			s += " "
		}
		return ChatMessageStyle.Render(s)

	case *ast.String:
		return ChatMessageStyle.Render(ansi.Strip(string(n.Value)))

	case *ast.CodeSpan:
		return MarkdownInlineCodeStyle.Render(r.plain(n))

	case *ast.Emphasis:
		if n.Level >= 2 {
			return MarkdownBoldStyle.Render(r.plain(n))
		}
		return MarkdownItalicStyle.Render(r.plain(n))

	case *east.Strikethrough:
		return MarkdownStrikeStyle.Render(r.plain(n))

	case *ast.Link:
		label := r.plain(n)
		if label == "" {
			label = string(n.Destination)
		}
		return hyperlink(string(n.Destination), label)

	case *ast.AutoLink:
		url := string(n.URL(r.src))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		return hyperlink(url, string(n.Label(r.src)))

	case *ast.Image:
		alt := r.plain(n)
		if alt == "" {
			alt = "image"
		}
		return hyperlink(string(n.Destination), "[image: "+alt+"]")

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(r.src))
		}
		return StatusPlaceholderStyle.Render(ansi.Strip(sb.String()))

	default:
		return r.inlines(n)
	}
}

// plain collects the text under n without styling, so an outer style is not
// cut short by inner resets.
func (r *mdRenderer) plain(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(r.src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(c.Value)
		case *ast.AutoLink:
			sb.Write(c.Label(r.src))
		default:
			sb.WriteString(r.plain(c))
		}
	}
	return ansi.Strip(sb.String())
}

// hyperlink wraps a styled label in an OSC 8 terminal hyperlink.
func hyperlink(url, label string) string {
	if url == "" {
		return MarkdownLinkStyle.Render(label)
	}
	return ansi.SetHyperlink(url) + MarkdownLinkStyle.Render(label) + ansi.ResetHyperlink()
}
