package session

import "context"

// Oracle answers whether the current actor is an authenticated administrator.
type Oracle interface {
	IsAdmin(ctx context.Context) (bool, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(ctx context.Context) (bool, error)

func (f OracleFunc) IsAdmin(ctx context.Context) (bool, error) {
	return f(ctx)
}

// ContextOracle reads the session that Middleware attached to the request
// context. A request without a valid session is a visitor.
type ContextOracle struct{}

func (ContextOracle) IsAdmin(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	claims, _ := ClaimsFromContext(ctx)
	return claims.IsAdmin(), nil
}

type contextKey string

const claimsContextKey contextKey = "session"

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves the session claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}
