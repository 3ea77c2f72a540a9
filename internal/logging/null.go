package logging

import "context"

// NullLogger discards everything. Useful in tests and as a default when a
// component is constructed without a logger.
type NullLogger struct{}

func NewNullLogger() *NullLogger { return &NullLogger{} }

func (NullLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (NullLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (NullLogger) Error(ctx context.Context, msg string, args ...any) {}

func (n NullLogger) With(args ...any) Logger { return n }
