package navguard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RedRiverSoftware/navguard/token"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Shell defines a public type used by navguard APIs.
//
// Shell instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Shell struct {
	config    Config
	router    Router
	location  Location
	store     *token.Store
	guard     *Guard
	annotator *StateAnnotator
	refresher *token.Refresher
	audit     *auditDispatcher
	metrics   *Metrics
	logger    *zap.Logger

	dependencies []string
	configFuncs  []ConfigFunc
	runFuncs     []RunFunc
	states       []State
	initialToken *token.Token

	started atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Run assembles the shell against the host: config callbacks first, then
// state registration, then run callbacks, all in registration order. It
// annotates the router's current state, installs the navigation hook, and
// starts the refresh loop when enabled. Run returns once assembly is done;
// the refresh loop continues until [Shell.Close].
func (s *Shell) Run(ctx context.Context) error {
	if s == nil {
		return ErrShellNotReady
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrShellStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for _, fn := range s.configFuncs {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("config callback: %w", err)
		}
	}

	for _, st := range s.states {
		if err := s.router.Register(st); err != nil {
			return fmt.Errorf("register state %q: %w", st.Name, err)
		}
	}

	for _, fn := range s.runFuncs {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("run callback: %w", err)
		}
	}

	if s.initialToken != nil {
		s.refresher.Check(s.initialToken)
	}

	s.annotator.Apply(s.router.Current())
	s.router.OnNavigationStart(s.handleNavigation)

	if s.config.Refresh.Enabled {
		loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.cancel = cancel
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.refresher.Run(loopCtx)
		}()
	}

	s.logger.Info("shell started",
		zap.Strings("dependencies", s.dependencies),
		zap.Int("states", len(s.states)),
		zap.Bool("refresh", s.config.Refresh.Enabled),
	)

	return nil
}

// handleNavigation is the hook installed on the router. The guard runs
// first; the annotator observes the same event regardless of the guard's
// outcome. A guard evaluation error propagates to the router uncaught.
func (s *Shell) handleNavigation(ev NavigationEvent, to State) error {
	ctx := WithNavigationID(context.Background(), uuid.NewString())

	decision, err := s.guard.Evaluate(ctx, s.currentToken(), to, ev)

	s.annotator.Apply(to)

	if err != nil {
		s.logger.Error("navigation guard failed",
			zap.String("state", to.Name),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("navigation evaluated",
		zap.String("state", to.Name),
		zap.Stringer("decision", decision),
	)
	return nil
}

func (s *Shell) currentToken() *token.Token {
	current, ok := s.store.Current()
	if !ok {
		return nil
	}
	return &current
}

func (s *Shell) onTokenUpdate(t token.Token) {
	emitAudit(context.Background(), s.audit, AuditEvent{
		EventType: auditEventTokenUpdated,
		Allowed:   true,
		Metadata: map[string]string{
			"expires_at": t.ExpiresAt.String(),
		},
	})
	s.metricInc(MetricTokenUpdated)
}

func (s *Shell) onRefreshError(err error) {
	emitAudit(context.Background(), s.audit, AuditEvent{
		EventType: auditEventRefreshFailure,
		Error:     err.Error(),
	})
	s.metricInc(MetricRefreshFailure)
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Shell) Close() {
	if s == nil {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	if s.audit != nil {
		s.audit.Close()
	}
}

// Dependencies returns the declared module dependency names in order.
func (s *Shell) Dependencies() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.dependencies...)
}

// TokenStore exposes the shell's token store. The guard reads it on every
// navigation; the refresh loop writes it on change.
func (s *Shell) TokenStore() *token.Store {
	if s == nil {
		return nil
	}
	return s.store
}

// Guard exposes the shell's navigation guard for hosts that dispatch
// navigation events themselves.
func (s *Shell) Guard() *Guard {
	if s == nil {
		return nil
	}
	return s.guard
}

// Annotator exposes the shell's state annotator.
func (s *Shell) Annotator() *StateAnnotator {
	if s == nil {
		return nil
	}
	return s.annotator
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Shell) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Shell) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

func (s *Shell) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}
