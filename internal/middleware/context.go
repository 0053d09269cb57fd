package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const ctxKeyLocale ctxKey = "locale"

// WithLocale stores the routed locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

// LocaleFrom returns the routed locale, or "" when the request did not pass
// through LocalePrefix.
func LocaleFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyLocale).(string)
	return v
}
