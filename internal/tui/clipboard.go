package tui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard copies text to the system clipboard. Tests replace it.
var copyToClipboard = systemCopy

func systemCopy(text string) error {
	name, args, err := clipboardCommand()
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard %s: %w", name, err)
	}

	return nil
}

type clipTool struct {
	name string
	args []string
}

// clipboardCommand picks a copy tool for the current platform. Wayland
// sessions prefer wl-copy over the X11 tools.
func clipboardCommand() (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy", nil, nil
	case "windows":
		return "clip", nil, nil
	case "linux", "freebsd", "openbsd":
		candidates := []clipTool{
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		}
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			candidates = append([]clipTool{{"wl-copy", nil}}, candidates...)
		}

		for _, c := range candidates {
			if _, err := exec.LookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, fmt.Errorf("no clipboard tool: install wl-copy, xclip or xsel")
	}

	return "", nil, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
}
