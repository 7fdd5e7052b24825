package main

import (
	"fmt"
	"os"

	"bokloftet/cmd/bokctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
