package main

import (
	"fmt"
	"os"

	"github.com/HabanaAI/HCL-sub006/cmd/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
