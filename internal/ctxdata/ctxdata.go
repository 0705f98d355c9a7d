package ctxdata

import (
	"context"
)

type traceIDKey struct{}
type commandKey struct{}

var (
	traceIDKeyInstance = traceIDKey{}
	commandKeyInstance = commandKey{}
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKeyInstance, traceID)
}

func GetTraceID(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKeyInstance)
	traceID, ok := v.(string)
	return traceID, ok
}

func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKeyInstance, command)
}

func GetCommand(ctx context.Context) (string, bool) {
	v := ctx.Value(commandKeyInstance)
	command, ok := v.(string)
	return command, ok
}
