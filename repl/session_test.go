package repl

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/positions"
	"github.com/etnz/positions/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *positions.Store
	book  *positions.Book
	out   bytes.Buffer
	opts  Options
}

// newFixture returns a stored book with a BTC position, bought 1 for 100.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: &positions.Store{
			Path:     filepath.Join(t.TempDir(), "storage.json"),
			Currency: "USD",
			SortBy:   positions.DefaultSortBy,
		},
		book: positions.NewBook("USD"),
		opts: Options{PositionsPerPage: 10, OrdersPerPage: 10},
	}
	_, err := f.book.Open("BTC", positions.Long, positions.Q(1), positions.M(100, "USD"))
	require.NoError(t, err)
	require.NoError(t, f.store.Save(f.book))
	return f
}

// run runs a session on the scripted input.
func (f *fixture) run(t *testing.T, input string) error {
	t.Helper()
	s := New(f.book, f.store, console.New(strings.NewReader(input), &f.out), f.opts)
	s.Render = func(md string) string { return md }
	return s.Run(context.Background())
}

// stored reloads the book from the storage file.
func (f *fixture) stored(t *testing.T) *positions.Book {
	t.Helper()
	b, err := f.store.Load()
	require.NoError(t, err)
	return b
}

func TestSession_QuitAndEOF(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "q\nthis is never read\n"))
	assert.Contains(t, f.out.String(), "| 0 | BTC | 1 | $100 | $100 | $0 | Active |")

	f = newFixture(t)
	assert.NoError(t, f.run(t, ""), "end of input ends the session")
}

func TestSession_AddPosition(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "a\nETH\nshort\n2\n3000\nq\n"))

	b := f.stored(t)
	require.Equal(t, 2, b.Len())
	eth, err := b.Position(1)
	require.NoError(t, err)
	assert.Equal(t, "ETH", eth.Name)
	assert.Equal(t, positions.Short, eth.Action)
	assert.True(t, eth.AvgPrice().Equal(positions.M(1500, "USD")))
}

func TestSession_AddPositionErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"a\nETH\nsideways\n", "ERROR: 'sideways' is not valid position type (long/short)"},
		{"a\nETH\nlong\nlots\n", "ERROR: failed to parse answer 'lots'"},
		{"a\nETH\nlong\n0\n10\n", "invalid order: amount must be positive"},
	}
	for _, tt := range tests {
		f := newFixture(t)
		require.NoError(t, f.run(t, tt.input+"q\n"))
		assert.Contains(t, f.out.String(), tt.wantErr, "input %q", tt.input)
		assert.Equal(t, 1, f.stored(t).Len(), "input %q", tt.input)
	}
}

func TestSession_DeletePosition(t *testing.T) {
	f := newFixture(t)
	// default answer is no.
	require.NoError(t, f.run(t, "d 0\n\nq\n"))
	assert.Contains(t, f.out.String(), "Are you sure want to delete position 0? [y/N]")
	assert.Equal(t, 1, f.stored(t).Len())

	// the id is asked when missing.
	require.NoError(t, f.run(t, "d\n0\ny\nq\n"))
	assert.Contains(t, f.out.String(), "Enter position id: ")
	assert.Equal(t, 0, f.stored(t).Len())

	require.NoError(t, f.run(t, "d 7\nq\n"))
	assert.Contains(t, f.out.String(), "ERROR: position with id 7 not found")
}

func TestSession_EditPosition(t *testing.T) {
	f := newFixture(t)
	input := strings.Join([]string{
		"e 0",
		"a", "buy", "1", "300", // avg price 200
		"a", "sell", "0", "500", // closes 2 at 250
		"q",
		"q",
	}, "\n") + "\n"
	require.NoError(t, f.run(t, input))

	out := f.out.String()
	assert.Contains(t, out, "# Position 0 Long BTC")
	assert.Contains(t, out, "| 2 | Sell | 2 | $500 | $250 | +$100 |")

	p, err := f.stored(t).Position(0)
	require.NoError(t, err)
	assert.True(t, p.IsClosed())
	assert.True(t, p.Income().Equal(positions.M(100, "USD")), "income = %v", p.Income())
	assert.Len(t, p.Orders(), 3)
}

func TestSession_DeleteOrder(t *testing.T) {
	f := newFixture(t)
	input := strings.Join([]string{
		"e 0",
		"a", "buy", "1", "300",
		"d 1", "", // default answer is yes
		"d 0", "y",
		"d 9",
		"q",
		"q",
	}, "\n") + "\n"
	require.NoError(t, f.run(t, input))

	out := f.out.String()
	assert.Contains(t, out, "Are you sure want to delete order 1? [Y/n]")
	assert.Contains(t, out, "ERROR: cannot remove first order")
	assert.Contains(t, out, "ERROR: order with id 9 not found in position 0")

	p, err := f.stored(t).Position(0)
	require.NoError(t, err)
	assert.Len(t, p.Orders(), 1)
	assert.True(t, p.AvgPrice().Equal(positions.M(100, "USD")))
}

func TestSession_OverClose(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "e 0\na\nsell\n2\n100\nq\nq\n"))
	assert.Contains(t, f.out.String(), "ERROR: order amount exceeds position amount")

	p, err := f.stored(t).Position(0)
	require.NoError(t, err)
	assert.Len(t, p.Orders(), 1)
}

func TestSession_Pages(t *testing.T) {
	f := newFixture(t)
	f.opts.PositionsPerPage = 1
	_, err := f.book.Open("ETH", positions.Long, positions.Q(1), positions.M(10, "USD"))
	require.NoError(t, err)

	require.NoError(t, f.run(t, "p\nn\nn\nq\n"))
	out := f.out.String()
	assert.Contains(t, out, "ERROR: already at first page")
	assert.Contains(t, out, "Page 2 of 2")
	assert.Contains(t, out, "ERROR: already at last page")
}

func TestSession_ChangeSorting(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "cs\n3\nasc\ncs\ncb\ncs\nq\ncs\n9\nq\n"))

	out := f.out.String()
	assert.Contains(t, out, "Current sorting method: last change (desc)")
	assert.Contains(t, out, "Current sorting method: avg price (asc)")
	assert.Contains(t, out, "cb - Move closed positions to bottom (enabled)")
	assert.Contains(t, out, "ERROR: failed to parse sorting method '9'")

	b := f.stored(t)
	assert.Equal(t, positions.SortBy{Field: positions.ByAvgPrice, Direction: positions.Ascending}, b.SortBy)
	assert.True(t, b.MoveClosedToBottom)
}

func TestSession_HideClosed(t *testing.T) {
	f := newFixture(t)
	f.opts.HideClosed = true
	eth, err := f.book.Open("ETH", positions.Long, positions.Q(1), positions.M(10, "USD"))
	require.NoError(t, err)
	require.NoError(t, eth.AddOrder(eth.CloseOrder(positions.M(20, "USD"))))

	require.NoError(t, f.run(t, "q\n"))
	out := f.out.String()
	assert.Contains(t, out, "| BTC |")
	assert.NotContains(t, out, "| ETH |")
	// totals still include the hidden positions.
	assert.Contains(t, out, "**+$10**")
}

func TestSession_Help(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "h\n\ne 0\nh\n\nq\nq\n"))
	out := f.out.String()
	assert.Contains(t, out, "# Positions table")
	assert.Contains(t, out, "# Position edit mode")
	assert.Contains(t, out, "Press Enter to continue...")
}

func TestSession_StorageFailure(t *testing.T) {
	f := newFixture(t)
	// a directory cannot be written as a file.
	f.store.Path = t.TempDir()

	err := f.run(t, "a\nETH\nlong\n1\n10\nq\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save positions to storage file")
	assert.Contains(t, f.out.String(), "ERROR: failed to save positions")
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line, cmd, arg string
	}{
		{"", "", ""},
		{"q", "q", ""},
		{"  D   12 ", "d", "12"},
		{"e 3 extra", "e", "3"},
	}
	for _, tt := range tests {
		cmd, arg := parseLine(tt.line)
		assert.Equal(t, tt.cmd, cmd, "parseLine(%q)", tt.line)
		assert.Equal(t, tt.arg, arg, "parseLine(%q)", tt.line)
	}
}
