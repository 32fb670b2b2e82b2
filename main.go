package main

import (
	"os"

	"kc-house-sales/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
