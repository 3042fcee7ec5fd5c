// Package backend is the opaque capability bundle the runtime reaches for
// trace output and Sys-class operations.
package backend

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"
)

// FileKind is &ftype's result: what, if anything, exists at a path.
type FileKind int

const (
	Absent FileKind = iota
	RegularFile
	Directory
)

// Backend is the capability surface the runtime's Sys-class primitives
// and diagnostic primitives (Trace/Dump/Stack) reach through. Never
// implemented directly by internal/dispatch — only called through it.
type Backend interface {
	// PrintStrTrace writes one line of bordered debug/trace output.
	PrintStrTrace(line string)

	// Print writes a plain value line (&p).
	Print(line string)

	ReadFileAll(path string) ([]byte, error)
	WriteFileAll(path string, data []byte) error
	FileType(path string) FileKind

	TCPListen(addr string) (net.Listener, error)
	TCPAccept(l net.Listener) (net.Conn, error)
	TCPSend(c net.Conn, data []byte) error

	WSListen(addr string) (*websocket.Upgrader, error)
	WSSend(conn *websocket.Conn, msg string) error

	HTTPGet(url string) ([]byte, error)
}

// LocalBackend is the default, real-OS-backed Backend.
type LocalBackend struct {
	Out   io.Writer
	isTTY bool
}

// NewLocalBackend returns a Backend writing trace/print output to os.Stdout.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		Out:   bufio.NewWriter(os.Stdout),
		isTTY: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// PrintStrTrace writes one bordered line using box-drawing glyphs
// (┌ ├ │ └ ╴ ╶), truncated to the terminal width when one can be
// determined (shorter lines are not padded); falls back to plain ASCII
// when stdout is not a TTY.
func (b *LocalBackend) PrintStrTrace(line string) {
	if b.isTTY {
		if w := terminalWidth(); w > 0 {
			line = fitWidth(line, w)
		}
		fmt.Fprintln(b.Out, line)
	} else {
		fmt.Fprintln(b.Out, plainASCII(line))
	}
	if f, ok := b.Out.(*bufio.Writer); ok {
		f.Flush()
	}
}

// fitWidth truncates s to w runes, leaving shorter lines untouched.
func fitWidth(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w])
}

func plainASCII(s string) string {
	replacer := map[rune]rune{'┌': '+', '├': '+', '│': '|', '└': '+', '╴': '-', '╶': '-'}
	out := []rune(s)
	for i, r := range out {
		if a, ok := replacer[r]; ok {
			out[i] = a
		}
	}
	return string(out)
}

// Print writes a plain value line via &p.
func (b *LocalBackend) Print(line string) {
	fmt.Fprintln(b.Out, line)
	if f, ok := b.Out.(*bufio.Writer); ok {
		f.Flush()
	}
}

// NowString formats the current time for trace frames.
func NowString() string {
	s, _ := strftime.Format("%Y-%m-%d %H:%M:%S", time.Now())
	return s
}

func (b *LocalBackend) ReadFileAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (b *LocalBackend) WriteFileAll(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func (b *LocalBackend) FileType(path string) FileKind {
	info, err := os.Stat(path)
	if err != nil {
		return Absent
	}
	if info.IsDir() {
		return Directory
	}
	return RegularFile
}

func (b *LocalBackend) TCPListen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

func (b *LocalBackend) TCPAccept(l net.Listener) (net.Conn, error) {
	return l.Accept()
}

func (b *LocalBackend) TCPSend(c net.Conn, data []byte) error {
	_, err := c.Write(data)
	return err
}

// WSListen returns a websocket upgrader with 1 KiB read and write
// buffers; addr is not used and nothing is listened on. Experimental.
func (b *LocalBackend) WSListen(addr string) (*websocket.Upgrader, error) {
	return &websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}, nil
}

// WSSend sends a text message over conn.
func (b *LocalBackend) WSSend(conn *websocket.Conn, msg string) error {
	return conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

func (b *LocalBackend) HTTPGet(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http get %s: status %s (%s body)", url, resp.Status, humanize.Bytes(uint64(len(body))))
	}
	return body, nil
}
