// Package clipboard copies rendered schedules to whatever clipboard the
// environment offers: a tmux buffer, a system clipboard tool, or the
// terminal itself via OSC 52.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard tries its enabled targets in order and stops at the first
// one that takes the text.
type Clipboard struct {
	Tmux   bool
	System bool
	OSC52  bool
	Out    io.Writer // OSC 52 destination, the controlling terminal
}

// New returns a clipboard with every target enabled and OSC 52 going to
// stderr, which stays attached to the terminal when stdout is piped.
func New() *Clipboard {
	return &Clipboard{Tmux: true, System: true, OSC52: true, Out: os.Stderr}
}

// Copy places text on the first target that accepts it.
func (c *Clipboard) Copy(text string) error {
	var lastErr error

	if c.Tmux && inTmux() {
		err := copyToTmux(text)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if c.System {
		err := copyToSystem(text)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if c.OSC52 {
		err := c.copyOSC52(text)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("no clipboard target enabled")
	}
	return fmt.Errorf("copying to clipboard: %w", lastErr)
}

func copyToTmux(text string) error {
	cmd := exec.Command("tmux", "load-buffer", "-")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func copyToSystem(text string) error {
	tool := systemTool()
	if tool == "" {
		return errors.New("no system clipboard tool found")
	}
	cmd := exec.Command(tool)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// copyOSC52 emits the escape sequence terminals interpret as "set the
// clipboard", wrapped in a DCS passthrough when tmux sits in between.
func (c *Clipboard) copyOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	seq := fmt.Sprintf("\x1b]52;c;%s\a", encoded)
	if inTmux() {
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\a\x1b\\", encoded)
	}
	_, err := io.WriteString(c.Out, seq)
	return err
}

func inTmux() bool {
	return os.Getenv("TMUX") != ""
}

func systemTool() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"pbcopy"}
	case "linux":
		candidates = []string{"wl-copy", "xclip", "xsel"}
	case "windows":
		candidates = []string{"clip"}
	}
	for _, tool := range candidates {
		if _, err := exec.LookPath(tool); err == nil {
			return tool
		}
	}
	return ""
}
