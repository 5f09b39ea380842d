package navguard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RedRiverSoftware/navguard/token"
	"go.uber.org/zap"
)

// Builder defines a public type used by navguard APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	router     Router
	location   Location
	document   Document
	httpClient *http.Client
	logger     *zap.Logger
	auditSink  AuditSink
	source     token.Source

	initialToken *token.Token

	dependencies []string
	configFuncs  []ConfigFunc
	runFuncs     []RunFunc
	states       []State

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRouter describes the withrouter operation and its observable behavior.
//
// WithRouter may return an error when input validation, dependency calls, or security checks fail.
// WithRouter does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRouter(router Router) *Builder {
	b.router = router
	return b
}

// WithLocation describes the withlocation operation and its observable behavior.
//
// WithLocation may return an error when input validation, dependency calls, or security checks fail.
// WithLocation does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLocation(location Location) *Builder {
	b.location = location
	return b
}

// WithDocument describes the withdocument operation and its observable behavior.
//
// WithDocument may return an error when input validation, dependency calls, or security checks fail.
// WithDocument does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDocument(document Document) *Builder {
	b.document = document
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
//
// WithLogger may return an error when input validation, dependency calls, or security checks fail.
// WithLogger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithTokenSource describes the withtokensource operation and its observable behavior.
//
// WithTokenSource may return an error when input validation, dependency calls, or security checks fail.
// WithTokenSource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTokenSource(source token.Source) *Builder {
	b.source = source
	return b
}

// WithInitialToken seeds the token store before the refresh loop starts,
// for hosts that bootstrap a token out of band. The seed goes through the
// refresher's change detection, not directly into the store.
func (b *Builder) WithInitialToken(t token.Token) *Builder {
	clone := t.Clone()
	b.initialToken = &clone
	return b
}

// WithDependency appends a module dependency name. Order is preserved.
func (b *Builder) WithDependency(name string) *Builder {
	b.dependencies = append(b.dependencies, name)
	return b
}

// WithConfigFunc appends a configuration callback. All config callbacks run
// in registration order during [Shell.Run], before any run callback.
func (b *Builder) WithConfigFunc(fn ConfigFunc) *Builder {
	b.configFuncs = append(b.configFuncs, fn)
	return b
}

// WithRunFunc appends a startup callback, invoked in registration order
// after state registration.
func (b *Builder) WithRunFunc(fn RunFunc) *Builder {
	b.runFuncs = append(b.runFuncs, fn)
	return b
}

// WithState declares a navigation state. Declaration order is preserved and
// claim requirements are evaluated in the order given here.
func (b *Builder) WithState(state State) *Builder {
	b.states = append(b.states, state)
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Shell, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.router == nil {
		return nil, errors.New("router required")
	}
	if b.location == nil {
		return nil, errors.New("location required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seenStates := make(map[string]struct{}, len(b.states))
	for _, s := range b.states {
		if s.Name == "" {
			return nil, ErrStateNameRequired
		}
		if _, ok := seenStates[s.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateState, s.Name)
		}
		seenStates[s.Name] = struct{}{}
	}

	seenDeps := make(map[string]struct{}, len(b.dependencies))
	for _, d := range b.dependencies {
		if d == "" {
			return nil, errors.New("dependency name required")
		}
		if _, ok := seenDeps[d]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDependency, d)
		}
		seenDeps[d] = struct{}{}
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := token.NewStore()
	metrics := NewMetrics(cfg.Metrics)
	audit := newAuditDispatcher(cfg.Audit, b.auditSink)

	shell := &Shell{
		config:       cfg,
		router:       b.router,
		location:     b.location,
		store:        store,
		annotator:    NewStateAnnotator(b.document),
		audit:        audit,
		metrics:      metrics,
		logger:       logger,
		dependencies: append([]string(nil), b.dependencies...),
		configFuncs:  append([]ConfigFunc(nil), b.configFuncs...),
		runFuncs:     append([]RunFunc(nil), b.runFuncs...),
		states:       append([]State(nil), b.states...),
		initialToken: b.initialToken,
	}

	shell.guard = newGuard(cfg.Guard, b.router, b.location, logger, audit, metrics)

	source := b.source
	if source == nil && cfg.Refresh.Enabled {
		client := b.httpClient
		if client == nil {
			client = &http.Client{Timeout: cfg.Refresh.RequestTimeout}
		}
		source = token.NewHTTPSource(client, cfg.Refresh.Endpoint)
	}
	shell.refresher = token.NewRefresher(token.RefresherConfig{
		Interval: cfg.Refresh.Interval,
		OnUpdate: shell.onTokenUpdate,
		OnError:  shell.onRefreshError,
	}, source, store, logger)

	b.built = true

	return shell, nil
}
