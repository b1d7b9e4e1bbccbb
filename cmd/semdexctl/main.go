// Command semdexctl prepares and checks the SEMDEX store outside the API process.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "semdexctl")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&migrateCmd{}, "store")
	commander.Register(&seedCmd{}, "store")
	commander.Register(&verifyCmd{}, "store")
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
