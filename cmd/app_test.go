package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withStorage points the options to a fresh storage file in a temp folder.
func withStorage(t *testing.T) *positions.Store {
	t.Helper()
	dir := t.TempDir()
	storage := filepath.Join(dir, "storage.json")
	options := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(options, []byte("storage_file_path: "+storage+"\ncurrency: EUR\n"), 0644))

	previous := *configFile
	*configFile = options
	t.Cleanup(func() { *configFile = previous })
	return &positions.Store{Path: storage, Currency: "EUR", SortBy: positions.DefaultSortBy}
}

func execute(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("pos", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "pos")
	Register(commander)
	require.NoError(t, fs.Parse(args))
	return commander.Execute(context.Background())
}

func TestCommands(t *testing.T) {
	store := withStorage(t)

	require.Equal(t, subcommands.ExitSuccess, execute(t, "add", "-name", "BTC", "-action", "long", "-amount", "2", "-value", "100"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "add", "-name", "ETH", "-action", "short", "-amount", "1", "-value", "10"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "order", "-position", "0", "-action", "sell", "-amount", "1", "-value", "80"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "order", "-position", "1", "-action", "buy", "-value", "4"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "sort", "-by", "income", "-dir", "asc", "-closed-bottom", "true"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "list"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "show", "0"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "query", "$.positions[*].name"))

	book, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", book.Currency)
	assert.Equal(t, positions.SortBy{Field: positions.ByIncome, Direction: positions.Ascending}, book.SortBy)
	assert.True(t, book.MoveClosedToBottom)

	btc, err := book.Position(0)
	require.NoError(t, err)
	assert.True(t, btc.Income().Equal(positions.M(30, "EUR")), "income = %v", btc.Income())
	eth, err := book.Position(1)
	require.NoError(t, err)
	assert.True(t, eth.IsClosed())
	assert.True(t, eth.Income().Equal(positions.M(6, "EUR")), "income = %v", eth.Income())

	require.Equal(t, subcommands.ExitSuccess, execute(t, "unorder", "-position", "0", "-order", "1"))
	require.Equal(t, subcommands.ExitSuccess, execute(t, "delete", "1"))

	book, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, book.Len())
	btc, err = book.Position(0)
	require.NoError(t, err)
	assert.Len(t, btc.Orders(), 1)
}

func TestCommands_Errors(t *testing.T) {
	withStorage(t)
	require.Equal(t, subcommands.ExitSuccess, execute(t, "add", "-name", "BTC", "-amount", "1", "-value", "100"))

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"add without name", []string{"add", "-amount", "1", "-value", "1"}, subcommands.ExitUsageError},
		{"add bad action", []string{"add", "-name", "X", "-action", "up", "-amount", "1", "-value", "1"}, subcommands.ExitFailure},
		{"add bad value", []string{"add", "-name", "X", "-amount", "1", "-value", "ten"}, subcommands.ExitFailure},
		{"order unknown position", []string{"order", "-position", "4", "-action", "buy", "-amount", "1", "-value", "1"}, subcommands.ExitFailure},
		{"order over close", []string{"order", "-position", "0", "-action", "sell", "-amount", "3", "-value", "1"}, subcommands.ExitFailure},
		{"unorder first", []string{"unorder", "-position", "0", "-order", "0"}, subcommands.ExitFailure},
		{"unorder missing ids", []string{"unorder"}, subcommands.ExitUsageError},
		{"delete unknown", []string{"delete", "9"}, subcommands.ExitFailure},
		{"delete without id", []string{"delete"}, subcommands.ExitUsageError},
		{"show bad id", []string{"show", "abc"}, subcommands.ExitFailure},
		{"sort bad field", []string{"sort", "-by", "name"}, subcommands.ExitFailure},
		{"query bad path", []string{"query", "$.positions["}, subcommands.ExitFailure},
		{"topic unknown", []string{"topic", "nope"}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, execute(t, tt.args...))
		})
	}
}

func TestCompletion(t *testing.T) {
	root := Completion()
	for _, c := range Commands {
		assert.Contains(t, root.Sub, c.Name())
	}
	assert.Contains(t, root.Flags, "config")

	add := root.Sub["add"]
	for _, name := range []string{"name", "action", "amount", "value"} {
		assert.Contains(t, add.Flags, name)
	}
	assert.ElementsMatch(t, []string{"long", "short"}, add.Flags["action"].Predict(""))
	assert.ElementsMatch(t, []string{"buy", "sell"}, root.Sub["order"].Flags["action"].Predict(""))
	assert.Contains(t, root.Sub["list"].Flags, "closed")
	assert.Contains(t, root.Sub["topic"].Args.Predict(""), "storage")
}
