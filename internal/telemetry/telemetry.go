// Package telemetry wraps zerolog with the handful of event shapes the
// EDF demo kernel emits on every tick: release, dispatch, preempt, and
// deadline miss. A kernel that logs every tick needs leveled,
// low-allocation structured logging rather than fmt.Println calls
// scattered through the scheduler, so events are typed methods on a
// single zerolog-backed Logger instead.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin, event-shaped facade over zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New builds a console-formatted Logger writing to w (os.Stdout if nil).
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// LogSwitch records a dispatch/context-switch event.
func (l *Logger) LogSwitch(tick int64, from, to uint32) {
	l.zl.Info().
		Int64("tick", tick).
		Uint32("from", from).
		Uint32("to", to).
		Msg("switch")
}

// LogRelease records a job release, noting whether it won preemption.
func (l *Logger) LogRelease(tick int64, task uint32, deadline int64, preempt bool) {
	l.zl.Info().
		Int64("tick", tick).
		Uint32("task", task).
		Int64("deadline", deadline).
		Bool("preempt", preempt).
		Msg("release")
}

// LogMiss records a deadline miss.
func (l *Logger) LogMiss(tick int64, task uint32, deadline int64, missCount uint32) {
	l.zl.Warn().
		Int64("tick", tick).
		Uint32("task", task).
		Int64("deadline", deadline).
		Uint32("miss_count", missCount).
		Msg("deadline miss")
}

// LogAdmission records an admission decision.
func (l *Logger) LogAdmission(task string, accepted bool, method string, err error) {
	ev := l.zl.Info()
	if !accepted {
		ev = l.zl.Warn()
	}
	ev = ev.Str("task", task).Bool("accepted", accepted).Str("method", method)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("admission")
}
