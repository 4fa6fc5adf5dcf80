// Package console implements the line oriented prompts of the interactive
// session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

// Console reads answers from an input and writes prompts to an output.
type Console struct {
	in   *bufio.Reader
	out  io.Writer
	term *termenv.Output

	errorStyle lipgloss.Style
	hintStyle  lipgloss.Style
}

// New creates a Console. Styles are only applied when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		in:         bufio.NewReader(in),
		out:        out,
		term:       termenv.NewOutput(out),
		errorStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		hintStyle:  r.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
	}
}

// Writer returns the console output.
func (c *Console) Writer() io.Writer { return c.out }

// Print writes s as is.
func (c *Console) Print(s string) { fmt.Fprint(c.out, s) }

// Println writes s followed by a new line.
func (c *Console) Println(s string) { fmt.Fprintln(c.out, s) }

// ReadLine reads one line, without its trailing spaces. The error wraps
// io.EOF when the input is exhausted.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input from console: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask prints the question and returns the answer.
func (c *Console) Ask(question string) (string, error) {
	fmt.Fprint(c.out, question)
	return c.ReadLine()
}

// AskInt asks for an integer.
func (c *Console) AskInt(question string) (int, error) {
	answer, err := c.Ask(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("failed to parse answer '%s'", answer)
	}
	return n, nil
}

// AskDecimal asks for a decimal number. A comma is accepted as the decimal
// separator.
func (c *Console) AskDecimal(question string) (decimal.Decimal, error) {
	answer, err := c.Ask(question)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(answer, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse answer '%s'", answer)
	}
	return d, nil
}

// Confirm asks a yes/no question. An empty answer selects def.
func (c *Console) Confirm(question string, def bool) (bool, error) {
	choices := "[y/N]"
	if def {
		choices = "[Y/n]"
	}
	answer, err := c.Ask(fmt.Sprintf("%s %s ", question, choices))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("unsupported confirmation answer %s", answer)
	}
}

// WaitForEnter blocks until a line is entered.
func (c *Console) WaitForEnter() error {
	_, err := c.Ask(c.hintStyle.Render("Press Enter to continue..."))
	return err
}

// Clear clears the screen and moves the cursor to the top left corner.
func (c *Console) Clear() { c.term.ClearScreen() }

// Error prints err on its own line.
func (c *Console) Error(err error) {
	fmt.Fprintln(c.out, c.errorStyle.Render("ERROR: "+err.Error()))
}

// Hint prints a discreet help line.
func (c *Console) Hint(s string) {
	fmt.Fprintln(c.out, c.hintStyle.Render(s))
}
