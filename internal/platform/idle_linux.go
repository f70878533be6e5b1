//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"pomodungeon/internal/core/session"
)

// xprintidle asks the X server; under Wayland it only sees XWayland input.
type xprintidle struct {
	path string
}

func newIdleChecker() session.IdleChecker {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return noIdle{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return noIdle{}
	}
	return xprintidle{path: path}
}

func (checker xprintidle) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(checker.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(output)
}
