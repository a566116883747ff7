// Package actorctx carries the verified caller and the request id on a
// context.Context so that code below the HTTP layer can log who asked for an
// operation.
package actorctx

import "context"

type ctxKey int

const (
	emailKey ctxKey = iota
	requestIDKey
)

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func EmailFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(emailKey).(string)

	return v, ok && v != ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey).(string)

	return v, ok && v != ""
}
