package httpx

import (
	"context"
	"strconv"
	"time"

	"github.com/aussiebroadwan/trustgate/pkg/rolex"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	SubjectID int64
	Role      rolex.Role
	ExpiresAt time.Time
	Extra     map[string]any
}

// Key returns a stable string for rate limiting and logging.
func (p Principal) Key() string { return "sub:" + strconv.FormatInt(p.SubjectID, 10) }

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFrom returns the principal set by AuthnMiddleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}
