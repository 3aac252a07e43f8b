package attachment

import (
	"strings"
	"testing"

	"github.com/botenders/govsimplify/internal/api"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		att  api.Attachment
		want Action
	}{
		{"pdf with url opens externally", api.Attachment{Type: "pdf", URL: "https://epa.gov/a.pdf"}, ActionOpenExternal},
		{"pdf with content still opens externally", api.Attachment{Type: "pdf", URL: "https://epa.gov/a.pdf", Content: "<p>x</p>"}, ActionOpenExternal},
		{"pdf without url has nothing to open", api.Attachment{Type: "pdf", Content: "<p>x</p>"}, ActionNone},
		{"html content previews", api.Attachment{Type: "html", Content: "<p>Summary</p>"}, ActionPreview},
		{"unknown type with content previews", api.Attachment{Type: "table", Content: "<table></table>"}, ActionPreview},
		{"link only opens externally", api.Attachment{Type: "link", URL: "https://sec.gov"}, ActionOpenExternal},
		{"blank content and no url", api.Attachment{Type: "html", Content: "  "}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.att); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A pdf never resolves to the in-app preview.
func TestResolve_PDFNeverPreviews(t *testing.T) {
	for _, att := range []api.Attachment{
		{Type: "pdf"},
		{Type: "pdf", Content: "<h1>inline</h1>"},
		{Type: "pdf", URL: "https://x/y.pdf", Content: "<h1>inline</h1>"},
	} {
		if Resolve(att) == ActionPreview {
			t.Errorf("pdf attachment %+v resolved to preview", att)
		}
	}
}

func TestToMarkdown(t *testing.T) {
	c := NewConverter(false)
	input := `<h2>Permit summary</h2>
<p>You need a <strong>Title V</strong> permit. See <a href="https://epa.gov/titlev">the guide</a>.</p>
<ul><li>Apply online</li><li>Pay the fee</li></ul>
<script>alert(1)</script>`

	got, err := c.ToMarkdown(input)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	want := "## Permit summary\n\nYou need a **Title V** permit. See [the guide](https://epa.gov/titlev).\n\n- Apply online\n- Pay the fee"
	if got != want {
		t.Errorf("ToMarkdown() =\n%q\nwant\n%q", got, want)
	}
}

func TestToMarkdown_ListsQuotesAndCode(t *testing.T) {
	c := NewConverter(true)

	got, err := c.ToMarkdown(`<ol><li>One</li><li>Two</li></ol><blockquote><p>Quoted text</p></blockquote><pre><code>line1
  line2</code></pre><p>Use <code>form 8-K</code>.</p>`)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	want := "1. One\n2. Two\n\n> Quoted text\n\n```\nline1\n  line2\n```\n\nUse `form 8-K`."
	if got != want {
		t.Errorf("ToMarkdown() =\n%q\nwant\n%q", got, want)
	}
}

func TestToMarkdown_NestedList(t *testing.T) {
	got, err := NewConverter(true).ToMarkdown(`<ul><li>Outer<ul><li>Inner</li></ul></li></ul>`)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if !strings.Contains(got, "- Outer") || !strings.Contains(got, "\n  - Inner") {
		t.Errorf("nested list not preserved: %q", got)
	}
}

func TestSanitizing(t *testing.T) {
	input := `<p onclick="steal()">Hi</p><a href="javascript:alert(1)">click</a>`

	sanitized := NewConverter(false)
	if src := sanitized.Source(input); strings.Contains(src, "onclick") || strings.Contains(src, "javascript:") {
		t.Errorf("sanitized source kept unsafe markup: %q", src)
	}
	md, err := sanitized.ToMarkdown(input)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if strings.Contains(md, "javascript:") || !strings.Contains(md, "click") {
		t.Errorf("sanitized markdown = %q", md)
	}

	trusted := NewConverter(true)
	if !trusted.Trusted() || trusted.Source(input) != input {
		t.Error("trusted converter must use content verbatim")
	}
	md, err = trusted.ToMarkdown(input)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if !strings.Contains(md, "[click](javascript:alert(1))") {
		t.Errorf("trusted markdown = %q", md)
	}
}

func TestActionString(t *testing.T) {
	if ActionPreview.String() != "preview" || ActionOpenExternal.String() != "open-external" || ActionNone.String() != "none" {
		t.Error("unexpected action names")
	}
}
