package navguard

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestAuditDisabledDispatcherIsNil(t *testing.T) {
	dispatcher := newAuditDispatcher(AuditConfig{Enabled: false}, &countingSink{})
	if dispatcher != nil {
		t.Fatal("expected nil dispatcher when audit is disabled")
	}

	// nil dispatchers must be safe everywhere
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Close()
	if dispatcher.Dropped() != 0 {
		t.Fatal("expected zero dropped on nil dispatcher")
	}
}

func TestAuditBufferFullDropIfFullTrueDoesNotBlock(t *testing.T) {
	sink := newGateSink()
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})

	start := time.Now()
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e3"})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("expected non-blocking emit when DropIfFull is true")
	}
	if dispatcher.Dropped() == 0 {
		t.Fatal("expected dropped counter to increment when queue is full")
	}
}

func TestAuditBufferFullDropIfFullFalseBlocksUntilSpace(t *testing.T) {
	sink := newGateSink()
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: false,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})

	done := make(chan struct{})
	go func() {
		dispatcher.Emit(context.Background(), AuditEvent{EventType: "e3"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expected emit to block while buffer is full")
	case <-time.After(150 * time.Millisecond):
	}

	sink.gate <- struct{}{}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected blocked emit to proceed after space is available")
	}
}

func TestAuditDispatcherCloseIdempotentAndEmitAfterCloseSafe(t *testing.T) {
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 4,
		DropIfFull: true,
	}, &countingSink{})

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Close()
	dispatcher.Close()
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})
}

func TestAuditJSONWriterSinkWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)
	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "nav_login_redirect",
		State:     "secret",
		Redirect:  "/login?redirect=/secret",
	})

	line := buf.String()
	if !strings.Contains(line, `"event_type":"nav_login_redirect"`) {
		t.Fatalf("expected JSON log line to contain event type, got %q", line)
	}
	if !strings.Contains(line, `"state":"secret"`) {
		t.Fatalf("expected JSON log line to contain state name, got %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("expected newline-terminated log line")
	}
}

func TestEmitAuditStampsTimestampAndNavigationID(t *testing.T) {
	sink := NewChannelSink(1)
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
	}, sink)
	defer dispatcher.Close()

	ctx := WithNavigationID(context.Background(), "nav-42")
	emitAudit(ctx, dispatcher, AuditEvent{EventType: "nav_allowed"})

	select {
	case event := <-sink.Events():
		if event.NavigationID != "nav-42" {
			t.Fatalf("expected navigation id nav-42, got %q", event.NavigationID)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be stamped")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event to be received")
	}
}
