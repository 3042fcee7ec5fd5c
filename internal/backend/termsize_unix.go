//go:build unix

package backend

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminalWidth returns stdout's column count, or 0 if it cannot be
// determined (not a TTY, or the ioctl fails).
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0
	}
	return int(ws.Col)
}
