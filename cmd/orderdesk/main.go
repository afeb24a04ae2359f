package main

import (
	"os"

	"github.com/Tomiris95/orderdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
