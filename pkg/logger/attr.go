package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr, which
// handlers drop.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Failures records each failure as "target: code" under "failures".
func Failures(fs core.Failures) slog.Attr {
	if len(fs) == 0 {
		return slog.Attr{}
	}
	as := make([]slog.Attr, 0, len(fs))
	for i, f := range fs {
		as = append(as, Group(strconv.Itoa(i),
			slog.String("target", f.Target),
			slog.String("code", f.Code.String()),
			slog.String("message", f.Message),
		))
	}
	return slog.Attr{Key: "failures", Value: slog.GroupValue(as...)}
}

func UseCase(name string) slog.Attr {
	return slog.String("use_case", name)
}

// EntityID records an entity identifier under "entity_id"; nil is dropped.
func EntityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("entity_id", id)
}

// Transition records a status change as a "transition" group.
func Transition(from, to string) slog.Attr {
	return Group("transition", slog.String("from", from), slog.String("to", to))
}

// Outcome records how a use case ended: "success", "invalid_parameter", ...
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}
