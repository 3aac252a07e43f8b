package api

import (
	"strings"
	"time"
)

// AttachmentTypePDF marks attachments opened directly in the browser.
const AttachmentTypePDF = "pdf"

// Attachment is a supplementary document carried by an assistant reply.
// Content, when present, is HTML.
type Attachment struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// IsPDF reports whether the attachment is a PDF document.
func (a Attachment) IsPDF() bool {
	return a.Type == AttachmentTypePDF
}

// HasContent reports whether the attachment carries inline HTML.
func (a Attachment) HasContent() bool {
	return strings.TrimSpace(a.Content) != ""
}

// Viewable reports whether there is anything to open: inline content or a link.
func (a Attachment) Viewable() bool {
	return a.HasContent() || strings.TrimSpace(a.URL) != ""
}

// DisplayTitle returns the title, or a label derived from the type.
func (a Attachment) DisplayTitle() string {
	if t := strings.TrimSpace(a.Title); t != "" {
		return t
	}
	if a.IsPDF() {
		return "PDF document"
	}
	return "Attachment"
}

// MessageRequest is the body of POST /message/{agencyId}.
type MessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// Reply is a successful response from the message endpoint.
type Reply struct {
	Text        string       `json:"text"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Time parses the server timestamp. ok is false when it is absent or unparseable.
func (r Reply) Time() (time.Time, bool) {
	return parseTime(r.Timestamp)
}

// Article is one news item for an agency.
type Article struct {
	ArticleID   string `json:"article_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	PubDate     string `json:"pubDate"`
	SourceName  string `json:"source_name,omitempty"`
}

// Summary returns the description, falling back to the content.
func (a Article) Summary() string {
	if a.Description != "" {
		return a.Description
	}
	return a.Content
}

// Published parses PubDate. ok is false when it is absent or unparseable.
func (a Article) Published() (time.Time, bool) {
	return parseTime(a.PubDate)
}

type newsResponse struct {
	Results []Article `json:"results"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// timeLayouts are the formats the news feed and message backend emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
