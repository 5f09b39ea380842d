package navguard

import "context"

type navigationIDContextKey struct{}

// WithNavigationID attaches a navigation correlation identifier to ctx. The
// shell generates one per navigation-start event; audit events and guard
// logs carry it so the decisions of a single transition can be grouped.
func WithNavigationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, navigationIDContextKey{}, id)
}

func navigationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(navigationIDContextKey{}).(string)
	return id
}
