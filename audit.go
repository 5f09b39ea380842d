package navguard

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/RedRiverSoftware/navguard/internal/audit"
)

// AuditEvent is a structured audit record emitted by the shell for every
// guard decision path and token lifecycle change.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the shell's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

const (
	auditEventNavAnonymous        = "nav_anonymous"
	auditEventNavAllowed          = "nav_allowed"
	auditEventNavLoginRedirect    = "nav_login_redirect"
	auditEventClaimRedirect       = "claim_redirect"
	auditEventClaimStateRedirect  = "claim_state_redirect"
	auditEventClaimFallbackMissed = "claim_fallback_missing"
	auditEventTokenUpdated        = "token_updated"
	auditEventRefreshFailure      = "refresh_failure"
)

type auditDispatcher = internalaudit.Dispatcher

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}

func emitAudit(ctx context.Context, d *auditDispatcher, event AuditEvent) {
	if d == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.NavigationID = navigationIDFromContext(ctx)
	d.Emit(ctx, event)
}
