package main

import (
	"os"

	"github.com/dl/linefilter/internal/cli"
)

func main() {
	os.Exit(cli.CatMain(os.Args[1:], cli.StdStreams()))
}
