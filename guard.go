package navguard

import (
	"context"
	"fmt"

	"github.com/RedRiverSoftware/navguard/token"
	"go.uber.org/zap"
)

// Guard evaluates a target state's authentication requirement and ordered
// claim requirements against the current token on every navigation start,
// and allows, blocks, or redirects the transition.
type Guard struct {
	cfg      GuardConfig
	router   Router
	location Location
	logger   *zap.Logger
	audit    *auditDispatcher
	metrics  *Metrics
}

func newGuard(cfg GuardConfig, router Router, location Location, logger *zap.Logger, audit *auditDispatcher, metrics *Metrics) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		cfg:      cfg,
		router:   router,
		location: location,
		logger:   logger,
		audit:    audit,
		metrics:  metrics,
	}
}

// Evaluate runs the gate for a single navigation-start notification. It is
// synchronous: any cancellation or redirect happens before it returns.
//
// States without the Authenticate flag are always allowed; their claim
// requirements are never evaluated. An authenticated state without a current
// token cancels the event and bounces to the login URL with the intended
// destination as a query parameter. Otherwise the claim requirements are
// walked in declaration order; an unmet requirement cancels the event and
// fires its Redirect or State fallback. A requirement with neither fallback
// returns [ErrClaimFallbackMissing], aborting the navigation pipeline.
//
// Unless StopAtFirstFailure is set, evaluation keeps walking after the first
// failure: later requirements are no longer matched against the token, so
// each of them also fails and fires its own fallback. The last redirect wins.
func (g *Guard) Evaluate(ctx context.Context, tok *token.Token, to State, ev NavigationEvent) (Decision, error) {
	if !to.Data.Authenticate {
		g.logger.Debug("navigation allowed, state does not authenticate",
			zap.String("state", to.Name),
		)
		emitAudit(ctx, g.audit, AuditEvent{
			EventType: auditEventNavAnonymous,
			State:     to.Name,
			Allowed:   true,
		})
		g.metrics.Inc(MetricNavAllowed)
		return DecisionAllowed, nil
	}

	if tok == nil {
		ev.PreventDefault()
		// the login endpoint receives the raw destination URL, not a
		// query-escaped one (/login?redirect=/secret)
		destination := g.router.URL(to.Name)
		target := g.cfg.LoginURL + "?" + g.cfg.RedirectParam + "=" + destination
		g.location.Assign(target)

		g.logger.Info("navigation blocked, authentication required",
			zap.String("state", to.Name),
			zap.String("redirect", target),
		)
		emitAudit(ctx, g.audit, AuditEvent{
			EventType: auditEventNavLoginRedirect,
			State:     to.Name,
			Redirect:  target,
		})
		g.metrics.Inc(MetricNavLoginRedirect)
		return DecisionLoginRedirect, nil
	}

	failed := false
	for i, req := range to.Data.Claims {
		found := false
		if !failed {
			found = tok.HasClaim(req.Type, req.Value)
		}
		if found {
			g.logger.Debug("claim requirement satisfied",
				zap.String("state", to.Name),
				zap.String("claim_type", req.Type),
				zap.String("claim_value", req.Value),
			)
			continue
		}

		failed = true
		ev.PreventDefault()

		switch {
		case req.Redirect != "":
			g.location.Assign(req.Redirect)
			g.logger.Info("navigation blocked, claim unmet, redirecting",
				zap.String("state", to.Name),
				zap.String("claim_type", req.Type),
				zap.String("claim_value", req.Value),
				zap.String("redirect", req.Redirect),
			)
			emitAudit(ctx, g.audit, AuditEvent{
				EventType:  auditEventClaimRedirect,
				State:      to.Name,
				ClaimType:  req.Type,
				ClaimValue: req.Value,
				Redirect:   req.Redirect,
			})
			g.metrics.Inc(MetricClaimRedirect)

		case req.State != "":
			if err := g.router.Go(req.State); err != nil {
				return DecisionClaimDenied, fmt.Errorf("redirect to state %q: %w", req.State, err)
			}
			g.logger.Info("navigation blocked, claim unmet, going to state",
				zap.String("state", to.Name),
				zap.String("claim_type", req.Type),
				zap.String("claim_value", req.Value),
				zap.String("fallback_state", req.State),
			)
			emitAudit(ctx, g.audit, AuditEvent{
				EventType:  auditEventClaimStateRedirect,
				State:      to.Name,
				ClaimType:  req.Type,
				ClaimValue: req.Value,
				Redirect:   req.State,
			})
			g.metrics.Inc(MetricClaimStateRedirect)

		default:
			err := fmt.Errorf("state %q claim requirement %d (%s=%s): %w",
				to.Name, i, req.Type, req.Value, ErrClaimFallbackMissing)
			g.logger.Error("claim requirement misconfigured", zap.Error(err))
			emitAudit(ctx, g.audit, AuditEvent{
				EventType:  auditEventClaimFallbackMissed,
				State:      to.Name,
				ClaimType:  req.Type,
				ClaimValue: req.Value,
				Error:      err.Error(),
			})
			g.metrics.Inc(MetricClaimFallbackMissing)
			return DecisionClaimDenied, err
		}

		if g.cfg.StopAtFirstFailure {
			break
		}
	}

	if failed {
		return DecisionClaimDenied, nil
	}

	g.logger.Debug("navigation allowed, all claim requirements met",
		zap.String("state", to.Name),
		zap.Int("claims", len(to.Data.Claims)),
	)
	emitAudit(ctx, g.audit, AuditEvent{
		EventType: auditEventNavAllowed,
		State:     to.Name,
		Allowed:   true,
	})
	g.metrics.Inc(MetricNavAllowed)
	return DecisionAllowed, nil
}
