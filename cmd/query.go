package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "extract data from the storage file with JSONPath" }
func (*queryCmd) Usage() string {
	return `pos query <jsonpath>

  Evaluates a JSONPath expression against the storage file and prints the
  result as JSON. For instance, the names of short positions:

    pos query '$.positions[?(@.action=="S")].name'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	opts, err := loadOptions()
	if err != nil {
		return failure("loading options", err)
	}
	store, _, err := openBook(opts)
	if err != nil {
		return failure("loading positions", err)
	}
	v, err := store.Query(f.Arg(0))
	if err != nil {
		return failure("querying positions", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return failure("encoding result", err)
	}
	fmt.Println(string(data))
	return subcommands.ExitSuccess
}
