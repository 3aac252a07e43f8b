package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/logger"
)

// DefaultSlowThreshold is how long a reply may take before the slow hint shows.
const DefaultSlowThreshold = 10 * time.Second

// ApologyText replaces the reply whenever a request fails for any reason.
const ApologyText = "I'm sorry, I ran into a problem answering that. Please try again in a moment."

// State is the request lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateAwaiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting-response"
	default:
		return "unknown"
	}
}

// Message is one transcript entry.
type Message struct {
	Text        string
	Timestamp   time.Time
	IsUser      bool
	IsError     bool
	Attachments []api.Attachment
}

// VisibleAttachments returns the attachments that have content or a link.
func (m Message) VisibleAttachments() []api.Attachment {
	var out []api.Attachment
	for _, a := range m.Attachments {
		if a.Viewable() {
			out = append(out, a)
		}
	}
	return out
}

// Request identifies one in-flight send.
type Request struct {
	SessionID string
	AgencyID  string
	Seq       uint64
	Text      string

	ctx       context.Context // cancelled when the session closes
	slowCtx   context.Context // cancelled when the request resolves
	slowAfter time.Duration
}

// Context is cancelled when the owning session closes.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Body is the JSON body sent to the message endpoint.
func (r Request) Body() api.MessageRequest {
	return api.MessageRequest{Message: r.Text, SessionID: r.SessionID}
}

// Session is a single conversation with one agency.
type Session struct {
	id       string
	agencyID string

	transcript []Message
	state      State
	slow       bool
	seq        uint64
	startedAt  time.Time

	ctx        context.Context
	cancel     context.CancelFunc
	cancelSlow context.CancelFunc
	closed     bool

	slowAfter time.Duration
	now       func() time.Time
	log       *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSlowThreshold overrides DefaultSlowThreshold.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.slowAfter = d
		}
	}
}

// WithClock overrides time.Now for timestamps (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session for agencyID with a freshly generated ID.
func New(agencyID string, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        uuid.NewString(),
		agencyID:  agencyID,
		ctx:       ctx,
		cancel:    cancel,
		slowAfter: DefaultSlowThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.WithSession(s.id).With("agency", agencyID)
	s.log.Info("session started")
	return s
}

// ID returns the correlation ID sent with every request.
func (s *Session) ID() string { return s.id }

// AgencyID returns the agency this session is scoped to.
func (s *Session) AgencyID() string { return s.agencyID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// IsAwaiting reports whether a reply is pending.
func (s *Session) IsAwaiting() bool { return s.state == StateAwaiting }

// IsSlow reports whether the pending reply has passed the slow threshold.
func (s *Session) IsSlow() bool { return s.state == StateAwaiting && s.slow }

// IsClosed reports whether Close has been called.
func (s *Session) IsClosed() bool { return s.closed }

// WaitStarted returns when the pending request was sent.
func (s *Session) WaitStarted() time.Time { return s.startedAt }

// SlowThreshold returns how long a reply may take before it counts as slow.
func (s *Session) SlowThreshold() time.Duration { return s.slowAfter }

// Len returns the number of transcript entries.
func (s *Session) Len() int { return len(s.transcript) }

// Transcript returns a copy of the transcript in insertion order.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// LastReply returns the newest assistant message that is not an error.
func (s *Session) LastReply() (Message, bool) {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		m := s.transcript[i]
		if !m.IsUser && !m.IsError {
			return m, true
		}
	}
	return Message{}, false
}

// Attachments returns every visible attachment in the transcript, newest first.
func (s *Session) Attachments() []api.Attachment {
	var out []api.Attachment
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].IsUser {
			continue
		}
		out = append(out, s.transcript[i].VisibleAttachments()...)
	}
	return out
}

// Begin appends the user's message and returns the request to send. ok is
// false, and nothing changes, when text is blank, the session is closed, or a
// reply is still pending.
func (s *Session) Begin(text string) (req Request, ok bool) {
	if strings.TrimSpace(text) == "" || s.closed {
		return Request{}, false
	}
	if s.state == StateAwaiting {
		s.log.Debug("send ignored while awaiting reply", "seq", s.seq)
		return Request{}, false
	}

	s.transcript = append(s.transcript, Message{
		Text:      text,
		Timestamp: s.now(),
		IsUser:    true,
	})
	s.seq++
	s.state = StateAwaiting
	s.slow = false
	s.startedAt = s.now()

	slowCtx, cancelSlow := context.WithCancel(s.ctx)
	s.cancelSlow = cancelSlow

	s.log.Debug("message sent", "seq", s.seq, "length", len(text))
	return Request{
		SessionID: s.id,
		AgencyID:  s.agencyID,
		Seq:       s.seq,
		Text:      text,
		ctx:       s.ctx,
		slowCtx:   slowCtx,
		slowAfter: s.slowAfter,
	}, true
}

// WaitSlow blocks until req has been pending for the slow threshold, returning
// true, or until its timer is cancelled by Resolve or Close, returning false.
// It is safe to call from any goroutine.
func WaitSlow(req Request) bool {
	if req.slowCtx == nil {
		return false
	}
	timer := time.NewTimer(req.slowAfter)
	defer timer.Stop()

	select {
	case <-timer.C:
		return req.slowCtx.Err() == nil
	case <-req.slowCtx.Done():
		return false
	}
}

// current reports whether req is the request this session is waiting on.
func (s *Session) current(req Request) bool {
	return !s.closed && s.state == StateAwaiting && req.SessionID == s.id && req.Seq == s.seq
}

// MarkSlow flags the pending request as slow. It returns false for stale requests.
func (s *Session) MarkSlow(req Request) bool {
	if !s.current(req) {
		return false
	}
	s.slow = true
	s.log.Info("reply is slow", "seq", req.Seq, "threshold", s.slowAfter)
	return true
}

// Resolve completes req with the backend's reply or error and appends the
// assistant message. Any failure becomes an error message carrying
// ApologyText. It returns false, and changes nothing, for stale requests.
func (s *Session) Resolve(req Request, reply *api.Reply, err error) (Message, bool) {
	if !s.current(req) {
		s.log.Debug("discarding stale reply", "seq", req.Seq, "session", req.SessionID)
		return Message{}, false
	}

	s.cancelSlow()
	s.cancelSlow = nil
	s.state = StateIdle
	s.slow = false

	var msg Message
	switch {
	case err != nil:
		s.log.Error("message failed", "seq", req.Seq, "error", err)
		msg = Message{Text: ApologyText, Timestamp: s.now(), IsError: true}
	case reply == nil:
		s.log.Error("message failed", "seq", req.Seq, "error", "empty reply")
		msg = Message{Text: ApologyText, Timestamp: s.now(), IsError: true}
	default:
		ts, ok := reply.Time()
		if !ok {
			ts = s.now()
		}
		msg = Message{Text: reply.Text, Timestamp: ts, Attachments: reply.Attachments}
		s.log.Debug("reply received", "seq", req.Seq, "attachments", len(reply.Attachments), "elapsed", s.now().Sub(s.startedAt))
	}

	s.transcript = append(s.transcript, msg)
	return msg, true
}

// Close ends the session. It aborts the in-flight request and stops its slow
// timer. Later MarkSlow and Resolve calls are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.cancelSlow = nil
	s.log.Info("session closed", "messages", len(s.transcript))
}
