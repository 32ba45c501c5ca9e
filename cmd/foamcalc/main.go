package main

import (
	"os"

	"github.com/Simplici0/foamquote/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
