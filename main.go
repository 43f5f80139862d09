package main

import (
	"os"

	"github.com/calahan-dev/dailyctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
