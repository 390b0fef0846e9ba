package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers from the user. Passwords are read without echo
// when the input is a terminal.
type Prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter that asks on out and reads from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	answer, err := p.readLine()
	return strings.TrimSpace(answer), err
}

// AskPassword prints label and reads a password without echoing it.
func (p *Prompter) AskPassword(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	return p.readLine()
}

// Confirm asks a yes/no question; anything but y or yes is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLine returns the next line without its line ending. End of input
// reads as an empty answer.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
