// Package interact is the thin presentation layer for interactive
// runs. Orchestration code never reads the terminal itself; it
// receives validated selections and confirmations from here, so
// headless and test execution bypass this package entirely.
package interact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter asks questions on a terminal. When Interactive is false
// every question resolves to its fallback without touching In or Out.
type Prompter struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
}

// NewPrompter detects whether stdin is a terminal.
func NewPrompter() *Prompter {
	return &Prompter{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}
}

// Confirm asks a yes/no question. Empty input and non-interactive runs
// resolve to fallback.
func (p *Prompter) Confirm(question string, fallback bool) bool {
	if !p.Interactive {
		return fallback
	}

	hint := "y/N"
	if fallback {
		hint = "Y/n"
	}
	fmt.Fprintf(p.Out, "%s [%s]: ", question, hint)

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return fallback
	}
}

// Select presents a numbered menu and returns the chosen index. A
// non-interactive run cannot select, which is an error rather than a
// silent default: the caller must pass the choice as a flag instead.
func (p *Prompter) Select(question string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("nothing to select from")
	}
	if !p.Interactive {
		return 0, fmt.Errorf("cannot prompt for %q in a non-interactive run; pass the value as a flag", question)
	}

	fmt.Fprintln(p.Out, question)
	for i, item := range items {
		fmt.Fprintf(p.Out, "  %d. %s\n", i+1, item)
	}

	reader := bufio.NewReader(p.In)
	for {
		fmt.Fprintf(p.Out, "selection [1-%d]: ", len(items))
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("failed to read selection: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		fmt.Fprintln(p.Out, "invalid selection")
	}
}
