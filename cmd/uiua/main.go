// cmd/uiua/main.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kr/pretty"

	"github.com/sputnick1124/uiua"
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/resolver"
	"github.com/sputnick1124/uiua/internal/value"
)

const VERSION = "0.1.0"

var commandAliases = map[string]string{
	"r": "run",
	"i": "repl",
	"c": "check",
	"d": "debug",
	"p": "primitives",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		showVersion()
	case "run":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: uiua run <file>")
			os.Exit(1)
		}
		runFile(args[1])
	case "check":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: uiua check <file>")
			os.Exit(1)
		}
		checkFile(args[1])
	case "debug":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: uiua debug <file>")
			os.Exit(1)
		}
		debugFile(args[1])
	case "repl":
		runRepl()
	case "primitives":
		listPrimitives()
	default:
		suggestCommand(cmd)
	}
}

func readSource(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read file: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

func runFile(path string) {
	src := readSource(path)
	stack, err := uiua.RunStr(src)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	printStack(stack)
}

func checkFile(path string) {
	src := readSource(path)
	if _, err := uiua.Compile(src); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("%s: assembles cleanly\n", path)
}

// debugFile compiles path and pretty-prints the assembled chunk instead
// of running it.
func debugFile(path string) {
	src := readSource(path)
	prog, err := uiua.Compile(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("%# v\n", pretty.Formatter(prog))
}

func runRepl() {
	fmt.Println("uiua repl - Ctrl-D to exit")
	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
		stack, err := uiua.RunStr(buf.String())
		if err != nil {
			reportError(err)
			continue
		}
		printStack(stack)
	}
}

func printStack(stack []value.Value) {
	if len(stack) == 0 {
		fmt.Println("(empty stack)")
		return
	}
	for i, v := range stack {
		fmt.Printf("%d: %s\n", i, v.String())
	}
}

func reportError(err error) {
	if ue, ok := err.(*errorsx.Error); ok {
		fmt.Fprintln(os.Stderr, ue.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func listPrimitives() {
	names := catalogue.Names()
	sort.Strings(names)
	for _, n := range names {
		p, ok := catalogue.FromName(n)
		if !ok {
			continue
		}
		line := p.Name()
		if g, ok := p.Glyph(); ok {
			line += fmt.Sprintf(" (%c)", g)
		}
		if a, ok := p.ASCII(); ok {
			line += fmt.Sprintf(" [%s]", a)
		}
		fmt.Println(line)
	}
	aliases := resolver.HardAliasNames()
	if len(aliases) > 0 {
		fmt.Println()
		fmt.Println("short aliases:", strings.Join(aliases, ", "))
	}
}

func showUsage() {
	fmt.Println("uiua - a minimal stack-oriented array language runtime")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  uiua run <file>         Run a source file              (alias: r)")
	fmt.Println("  uiua check <file>       Assemble without running       (alias: c)")
	fmt.Println("  uiua debug <file>       Assemble and dump the chunk    (alias: d)")
	fmt.Println("  uiua repl               Start an interactive session   (alias: i)")
	fmt.Println("  uiua primitives         List known primitives          (alias: p)")
	fmt.Println()
	fmt.Println("  uiua --version          Show version")
	fmt.Println("  uiua --help             Show this message")
}

func showVersion() {
	fmt.Printf("uiua %s\n", VERSION)
}

// suggestCommand prints the unknown-command error along with the
// closest known commands by edit distance.
func suggestCommand(cmd string) {
	known := []string{"run", "check", "debug", "repl", "primitives", "help", "version"}
	fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)

	var suggestions []string
	for _, k := range known {
		if levenshtein(cmd, k) <= 2 {
			suggestions = append(suggestions, k)
		}
	}
	if len(suggestions) > 0 {
		fmt.Fprintln(os.Stderr, "\ndid you mean:")
		for _, s := range suggestions {
			fmt.Fprintf(os.Stderr, "  uiua %s\n", s)
		}
	}
	os.Exit(1)
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}
	return row[len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
