//go:build !unix

package backend

// terminalWidth has no portable ioctl on this platform; callers fall
// back to an unbounded line.
func terminalWidth() int { return 0 }
