package main

import (
	"os"

	"github.com/abcall/clients/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
