package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/pmallet/tally/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A .env file in the working directory can set TALLY_DIR.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and exits when one is
// being served.
func completion() {
	sub := map[string]*complete.Command{
		"session":  {},
		"register": {},
		"send":     {Flags: map[string]complete.Predictor{"from": predict.Something}},
		"balance":  {},
		"history":  {},
		"fmt":      {},
		"topic":    {Args: predict.Set{"readme", "fees", "files", "*"}},
	}
	tly := &complete.Command{
		Sub:   sub,
		Flags: map[string]complete.Predictor{"data-dir": predict.Dirs("*")},
	}
	tly.Complete("tly")
}
