package main

import (
	"os"

	"github.com/arloliu/kvsml/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
