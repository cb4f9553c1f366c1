// Package logger sets up the structured logger used across the application.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
)

// New is going to setup a *slog.Logger writing to w and return it. A CLI
// prints its results on stdout, so w is expected to be stderr or a file.
func New(w io.Writer, level slog.Level, isProd bool, attrs ...slog.Attr) *slog.Logger {
	replacer := func(groups []string, a slog.Attr) slog.Attr {
		//we do not want that long file path, just the file name and line number
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				filename := filepath.Base(source.File)
				line := source.Line
				return slog.Attr{
					Key:   slog.SourceKey,
					Value: slog.StringValue(fmt.Sprintf("file:%s:%d", filename, line)),
				}
			}
			return a
		}

		return a
	}

	opts := &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: replacer,
	}
	textHandler := slog.NewTextHandler(w, opts).WithAttrs(attrs)
	jsonHandler := slog.NewJSONHandler(w, opts).WithAttrs(attrs)

	return slog.New(newSwitchHandler(jsonHandler, textHandler, isProd))
}

// switchHandler picks between the json and text handlers based on the
// environment.
type switchHandler struct {
	jsonHandler slog.Handler
	textHandler slog.Handler
	isProd      bool
}

func newSwitchHandler(jsonHandler, textHandler slog.Handler, isProd bool) *switchHandler {
	return &switchHandler{
		jsonHandler: jsonHandler,
		textHandler: textHandler,
		isProd:      isProd,
	}
}

func (sh *switchHandler) Handle(ctx context.Context, record slog.Record) error {
	if sh.isProd {
		return sh.jsonHandler.Handle(ctx, record)
	}
	return sh.textHandler.Handle(ctx, record)
}

func (sh *switchHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if sh.isProd {
		return sh.jsonHandler.Enabled(ctx, level)
	}
	return sh.textHandler.Enabled(ctx, level)
}

func (sh *switchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if sh.isProd {
		return sh.jsonHandler.WithAttrs(attrs)
	}
	return sh.textHandler.WithAttrs(attrs)
}

func (sh *switchHandler) WithGroup(name string) slog.Handler {
	if sh.isProd {
		return sh.jsonHandler.WithGroup(name)
	}
	return sh.textHandler.WithGroup(name)
}
