package main

import (
	"os"

	"github.com/cloud-ru/mcp-amortization-go/cmd/amortization/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
