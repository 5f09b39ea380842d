package token

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefresherConfig controls refresh scheduling and change callbacks.
type RefresherConfig struct {
	// Interval is the fixed refresh cadence. Defaults to one minute.
	// There is no jitter and no backoff; a failed refresh simply waits
	// for the next tick.
	Interval time.Duration

	// OnUpdate, when set, is invoked after the store is updated with a
	// changed token.
	OnUpdate func(Token)

	// OnError, when set, is invoked with every refresh failure.
	OnError func(error)
}

// Refresher periodically obtains a candidate token from a [Source] and
// updates the [Store] only when the candidate differs from the stored token.
type Refresher struct {
	cfg    RefresherConfig
	source Source
	store  *Store
	logger *zap.Logger
}

// NewRefresher describes the newrefresher operation and its observable behavior.
//
// NewRefresher may return an error when input validation, dependency calls, or security checks fail.
// NewRefresher does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRefresher(cfg RefresherConfig, source Source, store *Store, logger *zap.Logger) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Refresher{
		cfg:    cfg,
		source: source,
		store:  store,
		logger: logger,
	}
}

// Check applies change detection to a candidate token and reports whether
// the store was updated. Both absent is a no-op; both present with equal
// expiry markers (compared by value, claims never inspected) is a no-op;
// every other combination stores the candidate, normalizing an absent
// candidate to an empty-claims token.
func (r *Refresher) Check(candidate *Token) bool {
	current, ok := r.store.Current()

	if candidate == nil && !ok {
		return false
	}
	if candidate != nil && ok && current.ExpiresAt.Equal(candidate.ExpiresAt) {
		return false
	}

	next := Token{Claims: []Claim{}}
	if candidate != nil {
		next = candidate.Clone()
		if next.Claims == nil {
			next.Claims = []Claim{}
		}
	}
	r.store.Set(next)

	r.logger.Debug("token updated",
		zap.Time("expires_at", next.ExpiresAt),
		zap.Int("claims", len(next.Claims)),
	)
	if r.cfg.OnUpdate != nil {
		r.cfg.OnUpdate(next)
	}
	return true
}

// Refresh fetches a candidate token from the source and applies [Check].
// The fetch error, if any, is reported through OnError and returned.
func (r *Refresher) Refresh(ctx context.Context) error {
	candidate, err := r.source.Fetch(ctx)
	if err != nil {
		if r.cfg.OnError != nil {
			r.cfg.OnError(err)
		}
		return err
	}

	r.Check(candidate)
	return nil
}

// Run refreshes immediately, then on the fixed interval until ctx is done.
// Failures are logged and otherwise ignored.
func (r *Refresher) Run(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("token refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Warn("token refresh failed", zap.Error(err))
			}
		}
	}
}
