package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user for input.
type Prompter interface {
	Confirm(question string) (bool, error)
	Line(label string) (string, error)
}

// StdioPrompter reads answers from In and writes questions to Out.
type StdioPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdioPrompter returns a prompter over in and out.
func NewStdioPrompter(in io.Reader, out io.Writer) *StdioPrompter {
	return &StdioPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a y/n question. Only "y" or "yes" count as yes; end of input
// is a no.
func (p *StdioPrompter) Confirm(question string) (bool, error) {
	answer, err := p.Line(question + " [y/n] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Line prints label and reads one trimmed line. End of input yields "".
func (p *StdioPrompter) Line(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) prompter() Prompter {
	return NewStdioPrompter(a.env.In, a.env.Out)
}
