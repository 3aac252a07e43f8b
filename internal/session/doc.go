// Package session manages one conversation with an agency's assistant.
//
// # Overview
//
// A Session is created when the conversation view is entered and closed when
// the user returns to the agency catalog. It owns the transcript, the
// correlation ID sent with every message, and the request lifecycle. Nothing
// is persisted: closing the session discards the transcript.
//
// # States
//
//	idle ──Begin──▶ awaiting ──Resolve──▶ idle
//	                   │
//	                MarkSlow (threshold elapsed)
//	                   ▼
//	              awaiting+slow ──Resolve──▶ idle
//
// Only one request is in flight at a time. Begin rejects blank text, a closed
// session, and a send while a reply is pending.
//
// # Fencing
//
// Every Request carries the session ID and a sequence number. MarkSlow and
// Resolve ignore requests that do not match the current in-flight request, so
// a reply or timer that outlives its session or its turn cannot touch the
// transcript.
//
// # Timers
//
// WaitSlow blocks until the slow threshold passes or the request's timer is
// cancelled. Resolve and Close both cancel it, so a timer goroutine never
// outlives the request it belongs to.
//
// # Concurrency
//
// Session methods other than WaitSlow must be called from a single goroutine
// (the Bubble Tea update loop). WaitSlow only reads the Request it is given.
package session
