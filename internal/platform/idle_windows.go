//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"pomodungeon/internal/core/session"
)

var (
	procGetLastInputInfo = syscall.NewLazyDLL("user32.dll").NewProc("GetLastInputInfo")
	procGetTickCount     = syscall.NewLazyDLL("kernel32.dll").NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type lastInput struct{}

func newIdleChecker() session.IdleChecker {
	if procGetLastInputInfo.Find() != nil || procGetTickCount.Find() != nil {
		return noIdle{}
	}
	return lastInput{}
}

// IdleDuration compares 32-bit tick counts so the difference survives the
// 49.7 day wraparound.
func (lastInput) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}
	now, _, _ := procGetTickCount.Call()
	return time.Duration(uint32(now)-info.dwTime) * time.Millisecond, nil
}
