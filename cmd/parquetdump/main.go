// Command parquetdump reads a Parquet file's footer and prints its
// FileMetaData, either as an indented token tree or as summary tables.
//
// Grounded on _examples/hangxie-parquet-browser/main.go's kong dispatch
// shape and original_source/src/parquet.main.c's parquet_main control flow
// (open, parse, allocate a bounded output buffer, drain tokens through the
// formatter, report a single %r line on fatal failure). Unlike the
// teacher's browser, this CLI has one command and no shell-completion
// machinery (kongplete/posener/complete), since there is nothing here for a
// completer to predict beyond the file argument kong already validates.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Inspect InspectCmd `cmd:"" default:"1" help:"Print a Parquet file's footer metadata."`
}

func main() {
	parser := kong.Must(
		&cli,
		kong.Name("parquetdump"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Description("Inspects a Parquet file's footer metadata without reading any row data."),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, fatalLine(err))
		os.Exit(1)
	}
}
