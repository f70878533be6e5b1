package platform

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pomodungeon/internal/core/session"
)

// NewIdleChecker returns the idle source for this OS. Where none exists the
// checker reports session.ErrIdleUnsupported and the session stops asking.
func NewIdleChecker() session.IdleChecker {
	return newIdleChecker()
}

type noIdle struct{}

func (noIdle) IdleDuration() (time.Duration, error) {
	return 0, session.ErrIdleUnsupported
}

// parseIdleMillis reads xprintidle output.
func parseIdleMillis(output []byte) (time.Duration, error) {
	value := strings.TrimSpace(string(output))
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds %q: %w", value, err)
	}
	if millis < 0 {
		millis = 0
	}
	return time.Duration(millis) * time.Millisecond, nil
}

var hidIdleTime = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// parseHIDIdleTime reads the first HIDIdleTime entry, in nanoseconds, from
// ioreg output.
func parseHIDIdleTime(output []byte) (time.Duration, error) {
	match := hidIdleTime.FindSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("parse ioreg: no HIDIdleTime in %d bytes", len(bytes.TrimSpace(output)))
	}
	nanos, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}
