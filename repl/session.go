// Package repl implements the interactive session of pos.
//
// The session shows a view, reads a command line, runs the command and
// redraws. It starts on the positions table (global mode) and switches to a
// single position and its orders in edit mode.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/etnz/positions"
	"github.com/etnz/positions/console"
	"github.com/etnz/positions/docs"
	"github.com/etnz/positions/renderer"
)

// result tells the session what to do once a command has run.
type result int

const (
	redraw  result = iota // the command ran, or failed with a recoverable error
	unknown               // the command does not exist in this mode
	quit                  // end the session
	enter                 // switch to the edit mode of a position
	leave                 // return to the positions table
)

// mode is a set of commands working on a view.
type mode interface {
	name() string
	view() string
	handle(cmd string, arg string) (result, error)
}

// Options are the display preferences of a session.
type Options struct {
	PositionsPerPage int
	OrdersPerPage    int
	HideClosed       bool
}

// Session is an interactive session on a book.
type Session struct {
	book    *positions.Book
	store   *positions.Store
	console *console.Console
	opts    Options

	// Render turns the markdown views into what is printed. It defaults to
	// renderer.Terminal.
	Render func(md string) string

	global *globalMode
	edit   *positionMode // nil in global mode
}

// New creates a session on a book loaded from store.
func New(b *positions.Book, store *positions.Store, c *console.Console, opts Options) *Session {
	s := &Session{
		book:    b,
		store:   store,
		console: c,
		opts:    opts,
		Render:  renderer.Terminal,
	}
	s.global = &globalMode{s: s, pager: positions.Pager{PerPage: opts.PositionsPerPage}}
	return s
}

// storageError is an error that ends the session: the book in memory may no
// longer match the storage file.
type storageError struct{ err error }

func (e *storageError) Error() string { return e.err.Error() }
func (e *storageError) Unwrap() error { return e.err }

// save writes the whole book.
func (s *Session) save() error {
	if err := s.store.Save(s.book); err != nil {
		return &storageError{err}
	}
	return nil
}

func (s *Session) current() mode {
	if s.edit != nil {
		return s.edit
	}
	return s.global
}

// Run reads and runs commands until the user quits or the input ends. It
// only returns an error when the storage could not be written or the input
// could not be read.
func (s *Session) Run(ctx context.Context) error {
	s.draw(nil)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.console.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg := parseLine(line)
		m := s.current()
		slog.Debug("run command", "mode", m.name(), "command", cmd, "arg", arg)
		res, err := m.handle(cmd, arg)

		var fatal *storageError
		switch {
		case errors.As(err, &fatal):
			s.console.Error(err)
			return err
		case errors.Is(err, io.EOF):
			return nil
		}

		switch res {
		case quit:
			return nil
		case leave:
			s.edit = nil
			s.global.pager.Clamp(len(s.global.list()))
		case unknown:
			slog.Debug("unknown command", "command", cmd)
		}
		s.draw(err)
	}
}

// draw clears the screen and shows the current view, followed by err if any.
func (s *Session) draw(err error) {
	s.console.Clear()
	s.console.Print(s.Render(s.current().view()))
	s.console.Hint("Type h for help.")
	if err != nil {
		s.console.Error(err)
	}
}

// help shows a documentation topic until Enter is pressed.
func (s *Session) help(topic string) error {
	doc, err := docs.GetTopic(topic)
	if err != nil {
		return err
	}
	s.console.Clear()
	s.console.Print(s.Render(doc))
	return s.console.WaitForEnter()
}

// parseLine splits a command line into the command and its optional argument.
func parseLine(line string) (cmd, arg string) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return strings.ToLower(fields[0]), ""
	default:
		return strings.ToLower(fields[0]), fields[1]
	}
}

// id parses arg as an id, or asks for it when arg is empty.
func (s *Session) id(arg, question string) (int, error) {
	if arg == "" {
		return s.console.AskInt(question)
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("failed to parse argument '%s'", arg)
	}
	return id, nil
}

// askQuantity asks for a decimal and converts it to a Quantity.
func (s *Session) askQuantity(question string) (positions.Quantity, error) {
	d, err := s.console.AskDecimal(question)
	if err != nil {
		return positions.Quantity{}, err
	}
	return positions.Q(d), nil
}

// askMoney asks for a decimal in the book currency.
func (s *Session) askMoney(question string) (positions.Money, error) {
	d, err := s.console.AskDecimal(question)
	if err != nil {
		return positions.Money{}, err
	}
	return positions.M(d, s.book.Currency), nil
}
