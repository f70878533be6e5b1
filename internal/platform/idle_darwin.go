//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"time"

	"pomodungeon/internal/core/session"
)

type ioreg struct{}

func newIdleChecker() session.IdleChecker {
	if _, err := exec.LookPath("ioreg"); err != nil {
		return noIdle{}
	}
	return ioreg{}
}

func (ioreg) IdleDuration() (time.Duration, error) {
	output, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}
