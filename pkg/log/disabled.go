package log

import (
	"context"
)

// disabled is returned for LevelDisabled, it drops every record without formatting it.
type disabled struct{}

func (d disabled) With(Fields) Logger {
	return d
}

func (d disabled) WithField(string, any) Logger {
	return d
}

func (d disabled) WithError(error) Logger {
	return d
}

func (d disabled) WithContext(ctx context.Context, _ Fields) context.Context {
	return ctx
}

func (d disabled) Log(context.Context, Level, string) {}

func (d disabled) Debug(context.Context, string) {}

func (d disabled) Info(context.Context, string) {}

func (d disabled) Warn(context.Context, string) {}

func (d disabled) Error(context.Context, string) {}
