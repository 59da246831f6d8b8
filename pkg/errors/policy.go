package errors

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Policy selects how Assert behaves once an error has been reported.
type Policy int32

const (
	// PolicyFailFast panics with the reported *ModelError. Use during development.
	PolicyFailFast Policy = iota
	// PolicyLogAndContinue reports the error and returns, leaving the operation a no-op.
	PolicyLogAndContinue
)

func (p Policy) String() string {
	switch p {
	case PolicyFailFast:
		return "fail-fast"
	case PolicyLogAndContinue:
		return "log"
	default:
		return fmt.Sprintf("Policy(%d)", int32(p))
	}
}

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fail-fast", "failfast", "debug":
		return PolicyFailFast, nil
	case "log", "log-and-continue", "release":
		return PolicyLogAndContinue, nil
	default:
		return PolicyFailFast, fmt.Errorf("unknown assertion policy %q", s)
	}
}

var policy atomic.Int32 // zero value is PolicyFailFast

// SetPolicy installs the process-wide assertion policy.
func SetPolicy(p Policy) {
	policy.Store(int32(p))
}

// CurrentPolicy returns the process-wide assertion policy.
func CurrentPolicy() Policy {
	return Policy(policy.Load())
}

// Assert reports err and, under PolicyFailFast, panics with it.
// A nil err is a no-op. The stack trace and timestamp are filled in when missing.
func Assert(err *ModelError) {
	if err == nil {
		return
	}
	if err.StackTrace == "" {
		err.StackTrace = CaptureStack()
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Report(err)
	if CurrentPolicy() == PolicyFailFast {
		panic(err)
	}
}
