package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerSlot boxes the handler so a nil interface can be told apart from
// "never set".
type handlerSlot struct {
	h ErrorHandler
}

var current atomic.Pointer[handlerSlot]

// SetHandler installs the process-wide error handler and returns the one it
// replaced. Pass nil to restore a LogHandler writing through slog.Default().
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	prev := current.Swap(&handlerSlot{h: h})
	if prev == nil {
		return &LogHandler{}
	}
	return prev.h
}

// CurrentHandler returns the process-wide error handler.
func CurrentHandler() ErrorHandler {
	if s := current.Load(); s != nil {
		return s.h
	}
	return &LogHandler{}
}

// Report stamps err and hands it to the current handler.
func Report(err *ModelError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandleError(err)
}

// ReportPanic hands a recovered panic to the current handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandlePanic(err)
}

// Recover reports a panic in progress. It must be deferred directly:
//
//	defer errors.Recover("model.Cell.Refresh")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
	}
}

// Guard runs fn, reporting a panic from it instead of letting it unwind.
// It reports whether fn panicked.
func Guard(op string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
		}
	}()
	fn()
	return false
}

// CaptureStack formats the caller's stack, one "function file:line" frame
// per line, leaving out the runtime and this package's reporting frames.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !skipFrame(f.Function) {
			fmt.Fprintf(&sb, "%s %s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

const pkgPath = "github.com/go-drift/listkit/pkg/errors."

func skipFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	name, ok := strings.CutPrefix(fn, pkgPath)
	if !ok {
		return false
	}
	for _, helper := range []string{"CaptureStack", "Assert", "Recover", "Guard"} {
		if strings.HasPrefix(name, helper) {
			return true
		}
	}
	return false
}
