package main

import (
	"fmt"
	"os"

	"wager-settlement/cmd/wagerd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
