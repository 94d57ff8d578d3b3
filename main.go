package main

import (
	"os"

	"atsconv/cli"
)

func main() {
	os.Exit(cli.Start())
}
