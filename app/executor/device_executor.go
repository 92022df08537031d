package executor

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// Mode selects how Android shell tools are reached
type Mode string

const (
	// ModeShell runs the tools directly (on-device, e.g. Termux with privileges)
	ModeShell Mode = "shell"
	// ModeADB runs the tools through adb
	ModeADB Mode = "adb"
	// ModeNone disables device interaction
	ModeNone Mode = "none"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeShell, ModeADB, ModeNone:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown automation mode %q", s)
	}
}

// Runner executes a program and returns its stdout
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// DeviceExecutor drives the device with input/screencap/settings
type DeviceExecutor struct {
	mode    Mode
	adbPath string
	serial  string
	runner  Runner
}

// NewDeviceExecutor creates an executor using os/exec
func NewDeviceExecutor(mode Mode, adbPath, serial string) *DeviceExecutor {
	return NewDeviceExecutorWithRunner(mode, adbPath, serial, execRunner{})
}

// NewDeviceExecutorWithRunner creates an executor with a custom runner
func NewDeviceExecutorWithRunner(mode Mode, adbPath, serial string, runner Runner) *DeviceExecutor {
	if adbPath == "" {
		adbPath = "adb"
	}
	return &DeviceExecutor{mode: mode, adbPath: adbPath, serial: serial, runner: runner}
}

// IsAccessibilityEnabled reports whether accessibility services are switched on
func (e *DeviceExecutor) IsAccessibilityEnabled(ctx context.Context) bool {
	out, err := e.shell(ctx, "settings", "get", "secure", "accessibility_enabled")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "1"
}

// TakeScreenshotBase64 captures a PNG screenshot and returns it base64 encoded
func (e *DeviceExecutor) TakeScreenshotBase64(ctx context.Context) (string, bool) {
	if e.mode == ModeNone {
		return "", false
	}

	var out []byte
	var err error
	if e.mode == ModeADB {
		// exec-out keeps the binary stream intact
		out, err = e.runner.Run(ctx, e.adbPath, e.adbArgs("exec-out", "screencap", "-p")...)
	} else {
		out, err = e.runner.Run(ctx, "screencap", "-p")
	}
	if err != nil {
		log.Printf("[automation] screencap failed: %v", err)
		return "", false
	}
	if len(out) == 0 {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(out), true
}

// PerformTap taps at (x, y)
func (e *DeviceExecutor) PerformTap(ctx context.Context, x, y int) bool {
	_, err := e.shell(ctx, "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	return err == nil
}

// PerformSwipe swipes from (x1, y1) to (x2, y2) over durationMs
func (e *DeviceExecutor) PerformSwipe(ctx context.Context, x1, y1, x2, y2, durationMs int) bool {
	_, err := e.shell(ctx, "input", "swipe",
		strconv.Itoa(x1), strconv.Itoa(y1), strconv.Itoa(x2), strconv.Itoa(y2), strconv.Itoa(durationMs))
	return err == nil
}

// PerformInput types text into the focused field
func (e *DeviceExecutor) PerformInput(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}
	arg := EscapeInputText(text)
	if e.mode == ModeADB {
		arg = quoteShellArg(arg)
	}
	_, err := e.shell(ctx, "input", "text", arg)
	return err == nil
}

// shell runs an Android shell tool in the configured mode
func (e *DeviceExecutor) shell(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out []byte
	var err error
	switch e.mode {
	case ModeShell:
		out, err = e.runner.Run(ctx, name, args...)
	case ModeADB:
		out, err = e.runner.Run(ctx, e.adbPath, e.adbArgs(append([]string{"shell", name}, args...)...)...)
	default:
		return nil, fmt.Errorf("automation disabled")
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			err = fmt.Errorf("%s exited with %d: %s", name, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		log.Printf("[automation] %s failed: %v", name, err)
		return nil, err
	}
	return out, nil
}

func (e *DeviceExecutor) adbArgs(args ...string) []string {
	if e.serial == "" {
		return args
	}
	return append([]string{"-s", e.serial}, args...)
}

// EscapeInputText encodes spaces the way `input text` expects them
func EscapeInputText(text string) string {
	return strings.ReplaceAll(text, " ", "%s")
}

// quoteShellArg single-quotes s for the device shell that adb hands it to
func quoteShellArg(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
