// Package console holds the prompt and output conventions shared by the
// gapfinder and exprfinder commands.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"numtools/internal/numlist"
)

// ErrNoInput is returned when stdin ends before a prompted value arrives.
var ErrNoInput = errors.New("no input")

// Prompter reads whitespace-delimited tokens, printing a prompt before each.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter returns a Prompter reading tokens from in and writing prompts
// to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Prompter{scanner: scanner, out: out}
}

// Token prints prompt and returns the next token.
func (p *Prompter) Token(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrNoInput
	}
	return p.scanner.Text(), nil
}

// Arg returns args[i] when present, otherwise prompts for it.
func (p *Prompter) Arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return p.Token(prompt)
}

// FoundNumbers prints every parsed number in input order.
func FoundNumbers(w io.Writer, nums []int) {
	for _, n := range nums {
		fmt.Fprintf(w, "Found number: %d\n", n)
	}
}

// NumberList prints the list on one line.
func NumberList(w io.Writer, nums []int) {
	fmt.Fprintf(w, "Number: %s\n", numlist.Join(nums))
}

// MissingNumbers prints one line per absent integer as missing yields it,
// stopping at the first write error.
func MissingNumbers(w io.Writer, missing iter.Seq[int]) error {
	for n := range missing {
		if _, err := fmt.Fprintf(w, "Missing number: %d\n", n); err != nil {
			return fmt.Errorf("write missing numbers: %w", err)
		}
	}
	return nil
}

// Expression prints the search outcome.
func Expression(w io.Writer, expr string, found bool) {
	if !found {
		fmt.Fprintln(w, "No expression found to reach target.")
		return
	}
	fmt.Fprintf(w, "Found Expression: %s\n", expr)
}
