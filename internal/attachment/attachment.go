// Package attachment decides how an assistant attachment is opened and turns
// inline HTML attachments into markdown for the preview modal.
package attachment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/botenders/govsimplify/internal/api"
)

// Action is what opening an attachment does.
type Action int

const (
	// ActionNone means there is nothing to open.
	ActionNone Action = iota
	// ActionOpenExternal hands the attachment URL to the browser. No modal.
	ActionOpenExternal
	// ActionPreview shows the inline content in the preview modal.
	ActionPreview
)

func (a Action) String() string {
	switch a {
	case ActionOpenExternal:
		return "open-external"
	case ActionPreview:
		return "preview"
	default:
		return "none"
	}
}

// Resolve returns the action for a. PDFs always go to the browser; anything
// else with inline content is previewed in place.
func Resolve(a api.Attachment) Action {
	hasURL := strings.TrimSpace(a.URL) != ""
	switch {
	case a.IsPDF():
		if hasURL {
			return ActionOpenExternal
		}
		return ActionNone
	case a.HasContent():
		return ActionPreview
	case hasURL:
		return ActionOpenExternal
	default:
		return ActionNone
	}
}

// Converter turns attachment HTML into markdown.
type Converter struct {
	trusted bool
	policy  *bluemonday.Policy
}

// NewConverter returns a converter. Untrusted content is passed through the
// bluemonday UGC policy before conversion; trusted content is used as sent.
func NewConverter(trusted bool) *Converter {
	return &Converter{trusted: trusted, policy: bluemonday.UGCPolicy()}
}

// Trusted reports whether content skips sanitizing.
func (c *Converter) Trusted() bool { return c.trusted }

// Source returns the HTML the converter would render: sanitized unless trusted.
func (c *Converter) Source(content string) string {
	if c.trusted {
		return content
	}
	return c.policy.Sanitize(content)
}

// ToMarkdown converts content to markdown.
func (c *Converter) ToMarkdown(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(c.Source(content)))
	if err != nil {
		return "", err
	}
	w := &mdWriter{}
	w.walk(doc, 0)
	return cleanMarkdown(w.String()), nil
}

const maxDepth = 64

type mdWriter struct {
	strings.Builder
	listStack []listState
	inPre     bool
}

type listState struct {
	ordered bool
	n       int
}

func (w *mdWriter) walk(n *html.Node, depth int) {
	if depth > maxDepth {
		return
	}

	switch n.Type {
	case html.TextNode:
		if w.inPre {
			w.WriteString(n.Data)
			return
		}
		w.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		if !w.open(n, depth) {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth+1)
	}

	if n.Type == html.ElementNode {
		w.close(n)
	}
}

// open writes the opening markup for n and reports whether its children
// should be walked.
func (w *mdWriter) open(n *html.Node, depth int) bool {
	switch n.Data {
	case "script", "style", "noscript", "iframe", "svg", "head", "template":
		return false
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.WriteString("\n\n" + strings.Repeat("#", int(n.Data[1]-'0')) + " ")
	case "p", "div", "section", "article", "table":
		w.WriteString("\n\n")
	case "br":
		w.WriteString("\n")
	case "hr":
		w.WriteString("\n\n---\n\n")
	case "ul", "ol":
		w.listStack = append(w.listStack, listState{ordered: n.Data == "ol"})
		w.WriteString("\n")
	case "li":
		indent := ""
		if len(w.listStack) > 1 {
			indent = strings.Repeat("  ", len(w.listStack)-1)
		}
		marker := "- "
		if len(w.listStack) > 0 && w.listStack[len(w.listStack)-1].ordered {
			top := &w.listStack[len(w.listStack)-1]
			top.n++
			marker = fmt.Sprintf("%d. ", top.n)
		}
		w.WriteString("\n" + indent + marker)
	case "blockquote":
		inner := &mdWriter{}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			inner.walk(c, depth+1)
		}
		w.WriteString("\n\n")
		for _, line := range strings.Split(cleanMarkdown(inner.String()), "\n") {
			w.WriteString("> " + line + "\n")
		}
		w.WriteString("\n")
		return false
	case "pre":
		w.WriteString("\n\n```\n")
		w.inPre = true
	case "code":
		if !w.inPre {
			w.WriteString("`")
		}
	case "strong", "b":
		w.WriteString("**")
	case "em", "i":
		w.WriteString("*")
	case "del", "s":
		w.WriteString("~~")
	case "a":
		if href := attr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
			w.WriteString("[")
		}
	case "img":
		if alt := attr(n, "alt"); alt != "" {
			w.WriteString("[Image: " + alt + "]")
		}
		return false
	case "tr":
		w.WriteString("\n|")
	}
	return true
}

func (w *mdWriter) close(n *html.Node) {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.WriteString("\n\n")
	case "ul", "ol":
		if len(w.listStack) > 0 {
			w.listStack = w.listStack[:len(w.listStack)-1]
		}
		w.WriteString("\n\n")
	case "pre":
		w.inPre = false
		w.WriteString("\n```\n\n")
	case "code":
		if !w.inPre {
			w.WriteString("`")
		}
	case "strong", "b":
		w.WriteString("**")
	case "em", "i":
		w.WriteString("*")
	case "del", "s":
		w.WriteString("~~")
	case "a":
		if href := attr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
			w.WriteString("](" + href + ")")
		}
	case "td", "th":
		w.WriteString(" |")
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

var (
	spaceRun     = regexp.MustCompile(`[ \t\r\n\f]+`)
	multiSpace   = regexp.MustCompile(` {2,}`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

func collapseSpace(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

// cleanMarkdown tidies spacing line by line and limits blank runs, leaving
// fenced code untouched.
func cleanMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			lines[i] = trimmed
			continue
		}
		if inFence {
			continue
		}
		indent := ""
		if isListLine(line) {
			indent = line[:len(line)-len(strings.TrimLeft(line, " "))]
		}
		lines[i] = indent + multiSpace.ReplaceAllString(trimmed, " ")
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// isListLine reports whether line is an indented list item, whose leading
// spaces carry nesting.
func isListLine(line string) bool {
	t := strings.TrimLeft(line, " ")
	if len(t) == len(line) {
		return false
	}
	if strings.HasPrefix(t, "- ") {
		return true
	}
	i := 0
	for i < len(t) && t[i] >= '0' && t[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(t[i:], ". ")
}
