// Package main is the querybench entrypoint.
package main

import (
	"os"

	"github.com/querybench-labs/querybench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
