// Package mockbackend serves a canned implementation of the chat and news
// HTTP contract, for local development and tests. It does not generate
// answers: replies echo the question with agency context, and a few trigger
// words exercise attachments, failures and slow replies.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/logger"
)

// DefaultSlowDelay is how long a "slow" message waits before replying. It is
// past the client's default slow threshold.
const DefaultSlowDelay = 12 * time.Second

// Trigger words, matched case-insensitively in the message text.
const (
	TriggerPDF     = "pdf"
	TriggerSummary = "summary"
	TriggerFail    = "fail"
	TriggerSlow    = "slow"
)

// articlesPerAgency is how many canned articles each agency gets.
const articlesPerAgency = 3

// Server is the mock backend. It is safe for concurrent use.
type Server struct {
	catalog   *agency.Catalog
	slowDelay time.Duration
	now       func() time.Time
	log       *slog.Logger

	mu     sync.Mutex
	counts map[string]int // messages seen per session id

	mux *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithSlowDelay sets how long slow replies wait.
func WithSlowDelay(d time.Duration) Option {
	return func(s *Server) { s.slowDelay = d }
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a mock backend answering for the agencies in cat.
func New(cat *agency.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		slowDelay: DefaultSlowDelay,
		now:       time.Now,
		log:       logger.WithComponent("mockbackend"),
		counts:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /message/{agencyId}", s.handleMessage)
	mux.HandleFunc("GET /news/{agencyName}", s.handleNews)
	mux.HandleFunc("GET /agencies/{file}", s.handleLogo)
	mux.HandleFunc("GET /docs/{file}", s.handleDocument)
	s.mux = mux
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.log.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", s.now().Sub(start))
}

// MessageCount returns how many messages sessionID has sent.
func (s *Server) MessageCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[sessionID]
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	agencyID := r.PathValue("agencyId")
	rec, ok := s.catalog.Get(agencyID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown agency %q", agencyID))
		return
	}

	var req api.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	s.mu.Lock()
	s.counts[req.SessionID]++
	n := s.counts[req.SessionID]
	s.mu.Unlock()

	text := strings.ToLower(req.Message)
	if strings.Contains(text, TriggerSlow) {
		select {
		case <-time.After(s.slowDelay):
		case <-r.Context().Done():
			s.log.Debug("slow reply abandoned by client", "session", req.SessionID)
			return
		}
	}
	if strings.Contains(text, TriggerFail) {
		writeError(w, http.StatusInternalServerError, "simulated failure")
		return
	}

	reply := api.Reply{
		Text:      s.replyText(rec, req.Message, n),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if strings.Contains(text, TriggerPDF) {
		reply.Attachments = append(reply.Attachments, api.Attachment{
			Type:  api.AttachmentTypePDF,
			Title: rec.ShortName + " guidance (PDF)",
			URL:   baseURL(r) + "/docs/" + rec.ID + ".pdf",
		})
	}
	if strings.Contains(text, TriggerSummary) {
		reply.Attachments = append(reply.Attachments, api.Attachment{
			Type:    "html",
			Title:   rec.ShortName + " summary",
			Content: summaryHTML(rec),
		})
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) replyText(rec agency.Record, question string, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", rec.FullName)
	fmt.Fprintf(&sb, "This is the %s question in this conversation. You asked:\n\n", humanize.Ordinal(n))
	for _, line := range strings.Split(strings.TrimSpace(question), "\n") {
		sb.WriteString("> " + line + "\n")
	}
	sb.WriteString("\nThe mock backend does not answer questions. Try these words:\n\n")
	fmt.Fprintf(&sb, "- `%s` for a PDF attachment\n", TriggerPDF)
	fmt.Fprintf(&sb, "- `%s` for an HTML attachment\n", TriggerSummary)
	fmt.Fprintf(&sb, "- `%s` for a failed request\n", TriggerFail)
	fmt.Fprintf(&sb, "- `%s` for a reply that takes %s\n", TriggerSlow, s.slowDelay)
	return sb.String()
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("agencyName")
	resp := struct {
		Results []api.Article `json:"results"`
	}{Results: []api.Article{}}

	if rec, ok := s.findByFullName(name); ok {
		resp.Results = s.articles(rec)
	} else {
		s.log.Debug("news for unknown agency", "name", name)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) findByFullName(name string) (agency.Record, bool) {
	for _, rec := range s.catalog.All() {
		if strings.EqualFold(rec.FullName, name) {
			return rec, true
		}
	}
	return agency.Record{}, false
}

// articles returns canned, deterministic news for rec, newest first.
func (s *Server) articles(rec agency.Record) []api.Article {
	topics := []string{"issues new guidance", "opens public comment period", "announces enforcement update"}
	now := s.now().UTC()

	out := make([]api.Article, 0, articlesPerAgency)
	for i := range articlesPerAgency {
		title := fmt.Sprintf("%s %s", rec.ShortName, topics[i%len(topics)])
		slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")
		out = append(out, api.Article{
			ArticleID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(rec.ID+"/"+slug)).String(),
			Title:       title,
			Link:        "https://example.gov/news/" + slug,
			Description: fmt.Sprintf("The %s published an update relevant to %s.", rec.FullName, strings.ToLower(rec.Category)),
			PubDate:     now.Add(-time.Duration(i+1) * 26 * time.Hour).Format("2006-01-02 15:04:05"),
			SourceName:  "GovSimplify Mock Wire",
		})
	}
	return out
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	id, ok := strings.CutSuffix(file, ".svg")
	if !ok {
		http.NotFound(w, r)
		return
	}
	label := id
	if rec, ok := s.catalog.Get(id); ok {
		label = rec.ShortName
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprintf(w, logoSVG, escapeXML(label))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	id, ok := strings.CutSuffix(file, ".pdf")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.catalog.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = io.WriteString(w, placeholderPDF)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func summaryHTML(rec agency.Record) string {
	return fmt.Sprintf(`<h1>%[1]s at a glance</h1>
<p>The <strong>%[2]s</strong> covers <em>%[3]s</em> matters.</p>
<ul>
<li>Read the official notice before acting.</li>
<li>Comment periods usually run 30 to 60 days.</li>
</ul>
<p>See <a href="https://example.gov/%[1]s">the agency page</a>.</p>`,
		escapeXML(rec.ShortName), escapeXML(rec.FullName), escapeXML(strings.ToLower(rec.Category)))
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="96" height="96" viewBox="0 0 96 96">
<rect width="96" height="96" rx="12" fill="#1F5FAD"/>
<text x="48" y="56" font-family="sans-serif" font-size="20" fill="#FFFFFF" text-anchor="middle">%s</text>
</svg>
`

const placeholderPDF = "%PDF-1.4\n1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n" +
	"2 0 obj << /Type /Pages /Kids [] /Count 0 >> endobj\n" +
	"trailer << /Root 1 0 R >>\n%%EOF\n"
