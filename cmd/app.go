// Package cmd implements the CLI application to manage trading positions.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/etnz/positions"
	"github.com/etnz/positions/config"
	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Commands are the subcommands of pos, in the order they are documented.
var Commands = []subcommands.Command{
	&replCmd{},
	&listCmd{},
	&showCmd{},
	&addCmd{},
	&orderCmd{},
	&unorderCmd{},
	&deleteCmd{},
	&sortCmd{},
	&queryCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultPath, "Path to the options file, created with default values if missing")

// loadOptions reads the options file and sets up logging accordingly.
func loadOptions() (*config.Options, error) {
	opts, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if err := setupLogging(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// setupLogging sends logs to the configured file, or stderr.
func setupLogging(opts *config.Options) error {
	level, err := opts.Level()
	if err != nil {
		return err
	}
	var w io.Writer = os.Stderr
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", opts.LogFile, err)
		}
		w = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// openBook loads the book from the configured storage, creating an empty
// storage file first if needed.
func openBook(opts *config.Options) (*positions.Store, *positions.Book, error) {
	store := opts.Store()
	if _, err := store.Init(); err != nil {
		return nil, nil, err
	}
	book, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, book, nil
}

// failure prints the error of a subcommand that failed while doing something.
func failure(doing string, err error) subcommands.ExitStatus {
	if doing == "" {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", doing, err)
	}
	return subcommands.ExitFailure
}

// printMarkdown styles markdown for a terminal, and prints it as is when the
// output is redirected.
func printMarkdown(md string) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		md = renderer.Terminal(md)
	}
	fmt.Print(md)
}

// updateBook loads the book, applies edit and saves the result. The message
// returned by edit is printed on success.
func updateBook(edit func(b *positions.Book) (string, error)) subcommands.ExitStatus {
	opts, err := loadOptions()
	if err != nil {
		return failure("loading options", err)
	}
	store, book, err := openBook(opts)
	if err != nil {
		return failure("loading positions", err)
	}
	msg, err := edit(book)
	if err != nil {
		return failure("", err)
	}
	if err := store.Save(book); err != nil {
		return failure("saving positions", err)
	}
	fmt.Println(msg)
	return subcommands.ExitSuccess
}
